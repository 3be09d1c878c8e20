// Package board keeps the live departure rows, one per stored train.
package board

import (
	"sync"
	"time"

	"github.com/sadopc/trainclock/internal/schedule"
	"github.com/sadopc/trainclock/internal/store"
)

// Row is a train together with its most recent evaluation.
type Row struct {
	Train store.Train
	schedule.State
	UpdatedAt time.Time
}

// Board is safe for concurrent use.
type Board struct {
	mu   sync.RWMutex
	rows map[string]*Row
	// order holds keys newest first.
	order []string
}

func New() *Board {
	return &Board{rows: map[string]*Row{}}
}

// Add inserts t at the top of the board and evaluates it at now. Adding a key
// that is already present does nothing and returns false.
func (b *Board) Add(t store.Train, now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.rows[t.Key]; ok {
		return false
	}
	b.rows[t.Key] = &Row{
		Train:     t,
		State:     schedule.Evaluate(t.Recurrence(), now),
		UpdatedAt: now,
	}
	b.order = append([]string{t.Key}, b.order...)
	return true
}

// Remove drops the row for key. It reports whether the row existed.
func (b *Board) Remove(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.rows[key]; !ok {
		return false
	}
	delete(b.rows, key)
	for i, k := range b.order {
		if k == key {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

func (b *Board) Has(key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.rows[key]
	return ok
}

func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}

// Get returns a copy of the row for key.
func (b *Board) Get(key string) (Row, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r, ok := b.rows[key]
	if !ok {
		return Row{}, false
	}
	return *r, true
}

// Rows returns copies of all rows, newest first.
func (b *Board) Rows() []Row {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Row, 0, len(b.order))
	for _, k := range b.order {
		out = append(out, *b.rows[k])
	}
	return out
}

// Refresh recomputes the departure and countdown of one row.
func (b *Board) Refresh(key string, now time.Time) (Row, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.rows[key]
	if !ok {
		return Row{}, false
	}
	r.State = schedule.Evaluate(r.Train.Recurrence(), now)
	r.UpdatedAt = now
	return *r, true
}

func (b *Board) RefreshAll(now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.rows {
		r.State = schedule.Evaluate(r.Train.Recurrence(), now)
		r.UpdatedAt = now
	}
}

// Imminent returns the rows departing within the next minute, newest first.
func (b *Board) Imminent() []Row {
	var out []Row
	for _, r := range b.Rows() {
		if r.Countdown.Imminent {
			out = append(out, r)
		}
	}
	return out
}

// DeparturesPerHour counts departures of every train in each of the next
// hours one-hour windows starting at now.
func (b *Board) DeparturesPerHour(now time.Time, hours int) []int {
	if hours <= 0 {
		return nil
	}
	counts := make([]int, hours)
	end := now.Add(time.Duration(hours) * time.Hour)

	for _, r := range b.Rows() {
		rec := r.Train.Recurrence()
		if rec.Interval < 1 {
			continue
		}
		step := time.Duration(rec.Interval) * time.Minute
		for t := schedule.ComputeNext(rec, now).Next; t.Before(end); t = t.Add(step) {
			counts[int(t.Sub(now)/time.Hour)]++
		}
	}
	return counts
}
