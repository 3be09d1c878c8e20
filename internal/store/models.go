package store

import (
	"time"

	"github.com/sadopc/trainclock/internal/schedule"
)

// Train is a stored recurrence. Key is assigned on push and orders records by
// insertion; DateAdded is set by the database.
type Train struct {
	Key       string
	Name      string
	Dest      string
	Hours     int
	Mins      int
	Freq      int // minutes
	DateAdded time.Time
}

// Recurrence returns the schedule definition of t.
func (t Train) Recurrence() schedule.Recurrence {
	return schedule.Recurrence{
		Name:     t.Name,
		Dest:     t.Dest,
		Hour:     t.Hours,
		Minute:   t.Mins,
		Interval: t.Freq,
	}
}

type EventType string

const (
	ChildAdded   EventType = "child_added"
	ChildRemoved EventType = "child_removed"
)

// Event is a change notification for a single train.
type Event struct {
	Type  EventType
	Train Train
	Time  time.Time
}

type Setting struct {
	Key   string
	Value string
}
