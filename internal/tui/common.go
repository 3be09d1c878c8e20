package tui

import (
	"time"

	"github.com/sadopc/trainclock/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewBoard viewState = iota
	viewAdd
	viewStats
)

var viewNames = []string{"Board", "Add", "Stats"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type clockTickMsg time.Time

// countdownTickMsg drives the countdown of a single train. A chain stops as
// soon as its key is no longer on the board.
type countdownTickMsg struct {
	key string
	at  time.Time
}

type storeEventMsg store.Event

type trainsLoadedMsg struct {
	trains []store.Train
}

type trainAddedMsg struct {
	train *store.Train
}

type trainRemovedMsg struct {
	key string
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// formatClock renders the digital time under the clock face.
func formatClock(t time.Time) string {
	return t.Format("03:04:05 PM")
}

// formatArrival renders a departure time in the table.
func formatArrival(t time.Time) string {
	return t.Format("03:04 PM")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
