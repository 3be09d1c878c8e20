// Package schedule computes departures of trains that recur at a fixed
// interval from a first time of day.
package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

var (
	ErrEmptyName       = errors.New("name is required")
	ErrEmptyDest       = errors.New("destination is required")
	ErrInvalidTime     = errors.New("first time must be HH:MM between 00:00 and 23:59")
	ErrInvalidInterval = errors.New("frequency must be a whole number of minutes greater than 0")
)

// Recurrence defines a train: first departure of the day and the number of
// minutes between departures.
type Recurrence struct {
	Name     string
	Dest     string
	Hour     int
	Minute   int
	Interval int // minutes
}

// New validates its arguments and returns a Recurrence.
func New(name, dest string, hour, minute, interval int) (Recurrence, error) {
	r := Recurrence{
		Name:     name,
		Dest:     dest,
		Hour:     hour,
		Minute:   minute,
		Interval: interval,
	}
	if err := r.Validate(); err != nil {
		return Recurrence{}, err
	}
	return r, nil
}

// Validate reports the first violated constraint.
func (r Recurrence) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(r.Dest) == "" {
		return ErrEmptyDest
	}
	if r.Hour < 0 || r.Hour > 23 || r.Minute < 0 || r.Minute > 59 {
		return ErrInvalidTime
	}
	if r.Interval < 1 {
		return ErrInvalidInterval
	}
	return nil
}

// FirstTime formats the first departure as HH:MM.
func (r Recurrence) FirstTime() string {
	return fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)
}

// Occurrence is the next departure of a Recurrence relative to some moment.
type Occurrence struct {
	Next      time.Time
	Remaining time.Duration
	Minutes   int // whole minutes from the current minute until Next, in [1, Interval]
}

// Anchor returns the first departure on now's calendar day pushed back one
// year, so it always lies in the past. Feb 29 clamps to Feb 28 rather than
// rolling over into March.
func Anchor(r Recurrence, now time.Time) time.Time {
	d := now.Day()
	if now.Month() == time.February && d == 29 {
		d = 28
	}
	return time.Date(now.Year()-1, now.Month(), d, r.Hour, r.Minute, 0, 0, now.Location())
}

// ComputeNext returns the next departure strictly after the departure now
// falls in. When now is exactly on a departure the full interval is reported.
func ComputeNext(r Recurrence, now time.Time) Occurrence {
	elapsed := int64(now.Sub(Anchor(r, now)) / time.Minute)
	remainder := int(elapsed % int64(r.Interval))
	minutes := r.Interval - remainder

	base := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), 0, 0, now.Location())
	next := base.Add(time.Duration(minutes) * time.Minute)
	return Occurrence{
		Next:      next,
		Remaining: next.Sub(now),
		Minutes:   minutes,
	}
}

// Upcoming lists the next n departures, starting with ComputeNext.
func Upcoming(r Recurrence, now time.Time, n int) ([]time.Time, error) {
	if n <= 0 {
		return nil, nil
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:     rrule.MINUTELY,
		Interval: r.Interval,
		Count:    n,
		Dtstart:  ComputeNext(r, now).Next,
	})
	if err != nil {
		return nil, fmt.Errorf("departure rule: %w", err)
	}
	return rule.All(), nil
}

// RRule renders the recurrence as an iCalendar RRULE value.
func (r Recurrence) RRule() string {
	return fmt.Sprintf("FREQ=MINUTELY;INTERVAL=%d", r.Interval)
}

// Countdown is the time left until a departure, split for display.
type Countdown struct {
	Total    int // seconds
	Hours    int
	Minutes  int
	Seconds  int
	Imminent bool
}

// CountdownTo returns the whole seconds between now and next.
func CountdownTo(next, now time.Time) Countdown {
	total := int(next.Sub(now) / time.Second)
	if total < 0 {
		total = -total
	}
	c := Countdown{Total: total}
	c.Hours = total / 3600
	total -= c.Hours * 3600
	c.Minutes = total / 60
	c.Seconds = total - c.Minutes*60
	c.Imminent = c.Hours == 0 && c.Minutes == 0
	return c
}

// String formats the countdown as HH:MM:SS.
func (c Countdown) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hours, c.Minutes, c.Seconds)
}

// State bundles the next departure with its countdown.
type State struct {
	Occurrence
	Countdown Countdown
}

// Evaluate recomputes the departure and countdown for now.
func Evaluate(r Recurrence, now time.Time) State {
	occ := ComputeNext(r, now)
	return State{
		Occurrence: occ,
		Countdown:  CountdownTo(occ.Next, now),
	}
}

// ParseFirstTime parses "HH:MM" in 24 hour form.
func ParseFirstTime(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidTime
	}
	hour, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, ErrInvalidTime
	}
	minute, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, ErrInvalidTime
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, ErrInvalidTime
	}
	return hour, minute, nil
}

// ParseInterval parses a positive number of minutes.
func ParseInterval(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, ErrInvalidInterval
	}
	return n, nil
}

// Form field names used as FieldErrors keys.
const (
	FieldName  = "name"
	FieldDest  = "dest"
	FieldFirst = "first"
	FieldFreq  = "freq"
)

// FieldErrors maps a form field to its validation error.
type FieldErrors map[string]error

func (fe FieldErrors) Error() string {
	var parts []string
	for _, f := range []string{FieldName, FieldDest, FieldFirst, FieldFreq} {
		if err, ok := fe[f]; ok {
			parts = append(parts, f+": "+err.Error())
		}
	}
	return strings.Join(parts, "; ")
}

// ParseForm validates the four free-text form fields independently. The
// returned FieldErrors is nil when every field is valid.
func ParseForm(name, dest, first, freq string) (Recurrence, FieldErrors) {
	fe := FieldErrors{}
	r := Recurrence{
		Name: strings.TrimSpace(name),
		Dest: strings.TrimSpace(dest),
	}

	if r.Name == "" {
		fe[FieldName] = ErrEmptyName
	}
	if r.Dest == "" {
		fe[FieldDest] = ErrEmptyDest
	}

	var err error
	if r.Hour, r.Minute, err = ParseFirstTime(first); err != nil {
		fe[FieldFirst] = err
	}
	if r.Interval, err = ParseInterval(freq); err != nil {
		fe[FieldFreq] = err
	}

	if len(fe) > 0 {
		return Recurrence{}, fe
	}
	return r, nil
}
