package store

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/sadopc/trainclock/internal/logger"
)

// ErrNotWatchable is returned by Watch for in-memory stores.
var ErrNotWatchable = errors.New("in-memory store cannot be watched")

const (
	watchDebounce      = 250 * time.Millisecond
	restartBackoffBase = 250 * time.Millisecond
	restartBackoffMax  = 5 * time.Second
)

// Watch follows writes to the database file made by other processes and
// re-syncs subscribers. It blocks until ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == memoryPath {
		return ErrNotWatchable
	}

	dir := filepath.Dir(s.path)
	base := filepath.Base(s.path)
	log := logger.Log.WithField("db", s.path)

	// At most one resync per second however noisy the WAL gets.
	limiter := rate.NewLimiter(rate.Every(time.Second), 1)

	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	debounce := func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(watchDebounce, func() {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			added, removed, err := s.Sync()
			if err != nil {
				log.WithError(err).Warn("store resync failed")
				return
			}
			if added > 0 || removed > 0 {
				log.WithFields(logrus.Fields{"added": added, "removed": removed}).Debug("store resynced")
			}
		})
	}
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	backoff := restartBackoffBase
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	wait := func() bool {
		d := backoff + time.Duration(rng.Int63n(int64(backoff/2)+1))
		if backoff < restartBackoffMax {
			backoff = min(backoff*2, restartBackoffMax)
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(d):
			return true
		}
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		w, err := fsnotify.NewWatcher()
		if err != nil {
			log.WithError(err).Warn("store watch init failed")
			if !wait() {
				return nil
			}
			continue
		}
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			log.WithError(err).Warn("store watch add failed")
			if !wait() {
				return nil
			}
			continue
		}

		backoff = restartBackoffBase
		log.Debug("store watcher started")

		broken := false
		for !broken {
			select {
			case <-ctx.Done():
				_ = w.Close()
				return nil
			case ev, ok := <-w.Events:
				if !ok {
					broken = true
					break
				}
				// The main file, its -wal and its -shm all signal a commit.
				if strings.HasPrefix(filepath.Base(ev.Name), base) &&
					ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					debounce()
				}
			case err, ok := <-w.Errors:
				if !ok {
					broken = true
					break
				}
				if err == nil {
					continue
				}
				log.WithError(err).Warn("store watch error")
				if errors.Is(err, fsnotify.ErrEventOverflow) {
					debounce()
				}
			}
		}

		_ = w.Close()
		log.Warn("store watcher stopped; restarting")
		if !wait() {
			return nil
		}
	}
}
