package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/trainclock/internal/schedule"
)

const trainColumns = `key, name, dest, hours, mins, freq, date_added`

// Push stores a new train under a freshly generated, time ordered key and
// notifies ChildAdded subscribers.
func (s *Store) Push(r schedule.Recurrence) (*Train, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("push train: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	key := id.String()

	_, err = s.db.Exec(
		`INSERT INTO trains (key, name, dest, hours, mins, freq) VALUES (?, ?, ?, ?, ?, ?)`,
		key, r.Name, r.Dest, r.Hour, r.Minute, r.Interval,
	)
	if err != nil {
		return nil, fmt.Errorf("insert train: %w", err)
	}

	t, err := s.Get(key)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.known[key] = struct{}{}
	s.mu.Unlock()
	s.bus.publish(Event{Type: ChildAdded, Train: *t})
	return t, nil
}

func (s *Store) Get(key string) (*Train, error) {
	t, err := scanTrain(s.db.QueryRow(`SELECT `+trainColumns+` FROM trains WHERE key = ?`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get train %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get train %s: %w", key, err)
	}
	return t, nil
}

// List returns all trains in key (insertion) order.
func (s *Store) List() ([]Train, error) {
	rows, err := s.db.Query(`SELECT ` + trainColumns + ` FROM trains ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list trains: %w", err)
	}
	defer rows.Close()

	var trains []Train
	for rows.Next() {
		t, err := scanTrain(rows)
		if err != nil {
			return nil, err
		}
		trains = append(trains, *t)
	}
	return trains, rows.Err()
}

// Remove deletes the train at key and notifies ChildRemoved subscribers.
func (s *Store) Remove(key string) error {
	t, err := s.Get(key)
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}

	res, err := s.db.Exec(`DELETE FROM trains WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete train %s: %w", key, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete train %s: %w", key, ErrNotFound)
	}

	s.mu.Lock()
	delete(s.known, key)
	s.mu.Unlock()
	s.bus.publish(Event{Type: ChildRemoved, Train: *t})
	return nil
}

// Sync reconciles the published key set with the database and publishes an
// event for every train added or removed by someone else.
func (s *Store) Sync() (added, removed int, err error) {
	trains, err := s.List()
	if err != nil {
		return 0, 0, err
	}

	s.mu.Lock()
	current := make(map[string]struct{}, len(trains))
	var events []Event
	for _, t := range trains {
		current[t.Key] = struct{}{}
		if _, ok := s.known[t.Key]; !ok {
			events = append(events, Event{Type: ChildAdded, Train: t})
			added++
		}
	}
	for key := range s.known {
		if _, ok := current[key]; !ok {
			events = append(events, Event{Type: ChildRemoved, Train: Train{Key: key}})
			removed++
		}
	}
	s.known = current
	s.mu.Unlock()

	for _, e := range events {
		s.bus.publish(e)
	}
	return added, removed, nil
}

func (s *Store) keys() (map[string]struct{}, error) {
	rows, err := s.db.Query(`SELECT key FROM trains`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	keys := map[string]struct{}{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys[k] = struct{}{}
	}
	return keys, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrain(row rowScanner) (*Train, error) {
	t := &Train{}
	var dateAdded string
	if err := row.Scan(&t.Key, &t.Name, &t.Dest, &t.Hours, &t.Mins, &t.Freq, &dateAdded); err != nil {
		return nil, err
	}
	t.DateAdded, _ = time.Parse(time.RFC3339, dateAdded)
	return t, nil
}
