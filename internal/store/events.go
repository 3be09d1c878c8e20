package store

import (
	"sync"
	"sync/atomic"
	"time"
)

// bus is an in-memory fan-out of store events.
//
// Publish never blocks; a subscriber whose buffer is full misses the event.
type bus struct {
	mu   sync.RWMutex
	subs map[uint64]chan Event
	seq  atomic.Uint64
}

func newBus() *bus {
	return &bus{subs: map[uint64]chan Event{}}
}

func (b *bus) publish(e Event) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

func (b *bus) subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)
	id := b.seq.Add(1)

	b.mu.Lock()
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	unsub := func() {
		once.Do(func() {
			b.mu.Lock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(ch)
			}
			b.mu.Unlock()
		})
	}
	return ch, unsub
}

func (b *bus) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// Subscribe returns a channel receiving every ChildAdded and ChildRemoved
// event. The channel is closed by unsubscribe or by Close.
func (s *Store) Subscribe(buffer int) (<-chan Event, func()) {
	return s.bus.subscribe(buffer)
}

// OnChildAdded calls fn once for every stored train in key order and then
// for each train pushed afterwards, from a single goroutine. fn is never
// called twice for the same key.
func (s *Store) OnChildAdded(fn func(Train)) (func(), error) {
	return s.onChild(ChildAdded, fn, true)
}

// OnChildRemoved calls fn for each train removed after registration.
func (s *Store) OnChildRemoved(fn func(Train)) (func(), error) {
	return s.onChild(ChildRemoved, fn, false)
}

func (s *Store) onChild(typ EventType, fn func(Train), replay bool) (func(), error) {
	ch, unsub := s.Subscribe(64)

	seen := map[string]struct{}{}
	if replay {
		existing, err := s.List()
		if err != nil {
			unsub()
			return nil, err
		}
		for _, t := range existing {
			seen[t.Key] = struct{}{}
			fn(t)
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range ch {
			if e.Type != typ {
				continue
			}
			if _, dup := seen[e.Train.Key]; dup && typ == ChildAdded {
				continue
			}
			seen[e.Train.Key] = struct{}{}
			fn(e.Train)
		}
	}()

	return func() {
		unsub()
		<-done
	}, nil
}
