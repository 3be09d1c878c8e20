// Package announce logs upcoming departures on a cron schedule.
package announce

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/sadopc/trainclock/internal/board"
	"github.com/sadopc/trainclock/internal/logger"
	"github.com/sadopc/trainclock/internal/store"
)

type Announcer struct {
	cron  *cron.Cron
	store *store.Store
	board *board.Board
	spec  string
	now   func() time.Time
	log   *logrus.Entry

	mu     sync.Mutex
	unsubs []func()
}

// New returns an announcer that keeps b in sync with s and logs the board
// every time spec fires.
func New(s *store.Store, b *board.Board, spec string) *Announcer {
	return &Announcer{
		cron:  cron.New(cron.WithLocation(time.Local)),
		store: s,
		board: b,
		spec:  spec,
		now:   time.Now,
		log:   logger.Log.WithField("component", "announce"),
	}
}

// Start loads the stored trains, follows additions and removals, and starts
// the cron engine.
func (a *Announcer) Start() error {
	unsubAdd, err := a.store.OnChildAdded(func(t store.Train) {
		if a.board.Add(t, a.now()) {
			a.log.WithFields(logrus.Fields{"key": t.Key, "train": t.Name, "dest": t.Dest}).Info("train added")
		}
	})
	if err != nil {
		return fmt.Errorf("follow additions: %w", err)
	}
	unsubRemove, err := a.store.OnChildRemoved(func(t store.Train) {
		if a.board.Remove(t.Key) {
			a.log.WithField("key", t.Key).Info("train removed")
		}
	})
	if err != nil {
		unsubAdd()
		return fmt.Errorf("follow removals: %w", err)
	}

	a.mu.Lock()
	a.unsubs = append(a.unsubs, unsubAdd, unsubRemove)
	a.mu.Unlock()

	if _, err := a.cron.AddFunc(a.spec, func() { a.Announce() }); err != nil {
		a.Stop()
		return fmt.Errorf("add announce job %q: %w", a.spec, err)
	}
	a.cron.Start()
	a.log.WithField("spec", a.spec).Info("announcer started")
	return nil
}

// Stop halts the cron engine, waiting for a running job, and stops following
// the store.
func (a *Announcer) Stop() {
	<-a.cron.Stop().Done()

	a.mu.Lock()
	unsubs := a.unsubs
	a.unsubs = nil
	a.mu.Unlock()
	for _, u := range unsubs {
		u()
	}
}

// Announce refreshes every row and logs it. Trains leaving within the minute
// are logged at warn level.
func (a *Announcer) Announce() []board.Row {
	now := a.now()
	a.board.RefreshAll(now)
	rows := a.board.Rows()

	for _, r := range rows {
		entry := a.log.WithFields(logrus.Fields{
			"key":     r.Train.Key,
			"train":   r.Train.Name,
			"dest":    r.Train.Dest,
			"next":    r.Next.Format("03:04 PM"),
			"in":      r.Countdown.String(),
			"minutes": r.Minutes,
		})
		if r.Countdown.Imminent {
			entry.Warn("departing now")
		} else {
			entry.Info("next departure")
		}
	}
	return rows
}
