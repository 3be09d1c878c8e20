package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/trainclock/internal/schedule"
	"github.com/sadopc/trainclock/internal/store"
)

// ToCSV writes a board snapshot evaluated at now.
func ToCSV(trains []store.Train, now time.Time, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Key", "Name", "Destination", "First", "Frequency (min)", "Next Arrival", "Minutes Away", "Added"}); err != nil {
		return err
	}

	for _, t := range trains {
		st := schedule.Evaluate(t.Recurrence(), now)
		row := []string{
			t.Key,
			t.Name,
			t.Dest,
			t.Recurrence().FirstTime(),
			strconv.Itoa(t.Freq),
			st.Next.Format(time.RFC3339),
			st.Countdown.String(),
			formatAdded(t.DateAdded),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatAdded(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
