package export

import (
	"fmt"
	"os"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/sadopc/trainclock/internal/schedule"
	"github.com/sadopc/trainclock/internal/store"
)

const productID = "-//trainclock//departures//EN"

// departureLength is the DTEND offset of each exported departure.
const departureLength = time.Minute

// ToICS writes one recurring VEVENT per train, starting at its next departure
// after now and repeating every Freq minutes.
func ToICS(trains []store.Train, now time.Time, path string) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, t := range trains {
		rec := t.Recurrence()
		next := schedule.ComputeNext(rec, now).Next

		ev := cal.AddEvent(t.Key + "@trainclock")
		ev.SetDtStampTime(now.UTC())
		if !t.DateAdded.IsZero() {
			ev.SetCreatedTime(t.DateAdded.UTC())
		}
		ev.SetStartAt(next.UTC())
		ev.SetEndAt(next.Add(departureLength).UTC())
		ev.SetSummary(fmt.Sprintf("%s to %s", t.Name, t.Dest))
		ev.SetLocation(t.Dest)
		ev.SetDescription(fmt.Sprintf("First departure %s, every %d min", rec.FirstTime(), rec.Interval))
		ev.AddRrule(rec.RRule())
	}

	if err := os.WriteFile(path, []byte(cal.Serialize()), 0o644); err != nil {
		return fmt.Errorf("write ics file: %w", err)
	}
	return nil
}
