package board

import (
	"sync"
	"testing"
	"time"

	"github.com/sadopc/trainclock/internal/store"
)

func at(h, m, s int) time.Time {
	return time.Date(2025, 6, 14, h, m, s, 0, time.UTC)
}

func train(key string, hour, minute, freq int) store.Train {
	return store.Train{Key: key, Name: "T" + key, Dest: "Boston", Hours: hour, Mins: minute, Freq: freq}
}

func TestAddEvaluatesImmediately(t *testing.T) {
	b := New()
	if !b.Add(train("a", 8, 0, 15), at(8, 7, 0)) {
		t.Fatal("add should succeed")
	}
	r, ok := b.Get("a")
	if !ok {
		t.Fatal("row missing")
	}
	if r.Minutes != 8 || !r.Next.Equal(at(8, 15, 0)) {
		t.Fatalf("row = %+v", r.State)
	}
	if r.Countdown.String() != "00:08:00" {
		t.Fatalf("countdown = %s", r.Countdown)
	}
}

func TestAddIsIdempotent(t *testing.T) {
	b := New()
	b.Add(train("a", 8, 0, 15), at(8, 0, 0))
	if b.Add(train("a", 9, 0, 30), at(8, 0, 0)) {
		t.Fatal("second add of same key should be ignored")
	}
	if b.Len() != 1 {
		t.Fatalf("len = %d", b.Len())
	}
	r, _ := b.Get("a")
	if r.Train.Freq != 15 {
		t.Fatal("original row should be kept")
	}
}

func TestRowsNewestFirst(t *testing.T) {
	b := New()
	for _, k := range []string{"a", "b", "c"} {
		b.Add(train(k, 8, 0, 10), at(8, 0, 0))
	}
	rows := b.Rows()
	got := []string{rows[0].Train.Key, rows[1].Train.Key, rows[2].Train.Key}
	want := []string{"c", "b", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestRemove(t *testing.T) {
	b := New()
	b.Add(train("a", 8, 0, 10), at(8, 0, 0))
	b.Add(train("b", 8, 0, 10), at(8, 0, 0))

	if !b.Remove("a") {
		t.Fatal("remove should report existing row")
	}
	if b.Remove("a") {
		t.Fatal("second remove should report missing row")
	}
	if b.Has("a") || !b.Has("b") || b.Len() != 1 {
		t.Fatal("unexpected board contents")
	}
	if _, ok := b.Refresh("a", at(8, 1, 0)); ok {
		t.Fatal("refresh of removed row should fail")
	}
}

func TestRefresh(t *testing.T) {
	b := New()
	b.Add(train("a", 8, 0, 15), at(8, 0, 0))

	r, ok := b.Refresh("a", at(8, 14, 30))
	if !ok {
		t.Fatal("refresh failed")
	}
	if !r.Countdown.Imminent || r.Countdown.String() != "00:00:30" {
		t.Fatalf("countdown = %+v", r.Countdown)
	}
	if !r.UpdatedAt.Equal(at(8, 14, 30)) {
		t.Fatalf("updated at = %v", r.UpdatedAt)
	}
	if imm := b.Imminent(); len(imm) != 1 {
		t.Fatalf("imminent = %d rows", len(imm))
	}
}

func TestRefreshAll(t *testing.T) {
	b := New()
	b.Add(train("a", 8, 0, 15), at(8, 0, 0))
	b.Add(train("b", 8, 0, 60), at(8, 0, 0))

	b.RefreshAll(at(8, 50, 0))
	a, _ := b.Get("a")
	c, _ := b.Get("b")
	if a.Minutes != 10 || c.Minutes != 10 {
		t.Fatalf("minutes = %d, %d; want 10, 10", a.Minutes, c.Minutes)
	}
}

func TestDeparturesPerHour(t *testing.T) {
	b := New()
	b.Add(train("a", 8, 0, 15), at(8, 0, 0))
	b.Add(train("b", 8, 0, 60), at(8, 0, 0))

	counts := b.DeparturesPerHour(at(8, 0, 0), 3)
	// At a boundary the next departure is a full interval away, so the
	// hourly train first runs at 09:00.
	want := []int{3, 5, 5}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("counts = %v, want %v", counts, want)
		}
	}
	if b.DeparturesPerHour(at(8, 0, 0), 0) != nil {
		t.Fatal("zero hours should be nil")
	}
}

func TestConcurrentAccess(t *testing.T) {
	b := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			b.Add(train(key, 8, 0, 5), at(8, 0, 0))
			b.RefreshAll(at(8, 1, 0))
			_ = b.Rows()
			b.Remove(key)
		}(i)
	}
	wg.Wait()
	if b.Len() != 0 {
		t.Fatalf("len = %d", b.Len())
	}
}
