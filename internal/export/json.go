package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/trainclock/internal/schedule"
	"github.com/sadopc/trainclock/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Trains     []jsonTrain `json:"trains"`
}

type jsonTrain struct {
	Key         string   `json:"key"`
	Name        string   `json:"name"`
	Dest        string   `json:"dest"`
	Hours       int      `json:"hours"`
	Mins        int      `json:"mins"`
	Freq        int      `json:"freq"`
	DateAdded   string   `json:"date_added,omitempty"`
	NextArrival string   `json:"next_arrival"`
	MinutesAway string   `json:"minutes_away"`
	SecondsAway int      `json:"seconds_away"`
	Upcoming    []string `json:"upcoming,omitempty"`
}

// ToJSON writes a board snapshot evaluated at now. upcoming is the number of
// future departures listed per train; zero omits the list.
func ToJSON(trains []store.Train, now time.Time, upcoming int, path string) error {
	export := jsonExport{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Count:      len(trains),
	}

	for _, t := range trains {
		rec := t.Recurrence()
		st := schedule.Evaluate(rec, now)

		next, err := schedule.Upcoming(rec, now, upcoming)
		if err != nil {
			return fmt.Errorf("upcoming for %s: %w", t.Key, err)
		}
		var list []string
		for _, d := range next {
			list = append(list, d.Format(time.RFC3339))
		}

		export.Trains = append(export.Trains, jsonTrain{
			Key:         t.Key,
			Name:        t.Name,
			Dest:        t.Dest,
			Hours:       t.Hours,
			Mins:        t.Mins,
			Freq:        t.Freq,
			DateAdded:   formatAdded(t.DateAdded),
			NextArrival: st.Next.Format(time.RFC3339),
			MinutesAway: st.Countdown.String(),
			SecondsAway: st.Countdown.Total,
			Upcoming:    list,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
