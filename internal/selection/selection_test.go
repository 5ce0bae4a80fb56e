package selection

import (
	"reflect"
	"sync"
	"testing"
)

func TestToggle_DoubleToggleRestoresState(t *testing.T) {
	s := New()
	s.Track("gin", "laravel")
	s.Toggle("laravel")

	before := s.Snapshot()
	for _, id := range []string{"gin", "laravel", "unknown"} {
		s.Toggle(id)
		s.Toggle(id)
	}
	after := s.Snapshot()
	delete(after, "unknown")
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("expected %v, got %v", before, after)
	}
}

func TestTrack_KeepsExistingFlags(t *testing.T) {
	s := New()
	s.Toggle("gin")
	s.Track("gin", "actix")
	want := map[string]bool{"gin": true, "actix": false}
	if got := s.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := New()
	s.Toggle("gin")
	snap := s.Snapshot()
	snap["gin"] = false
	if !s.Snapshot()["gin"] {
		t.Fatalf("mutating a snapshot changed the state")
	}
}

func TestSelectedAndClear(t *testing.T) {
	s := New()
	s.Track("b", "a", "c")
	s.Toggle("c")
	s.Toggle("a")
	if got := s.Selected(); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("expected [a c], got %v", got)
	}
	s.Clear()
	if got := s.Snapshot(); len(got) != 0 {
		t.Fatalf("expected empty state after Clear, got %v", got)
	}
}

func TestToggle_Concurrent(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Toggle("gin")
		}()
	}
	wg.Wait()
	// an even number of flips leaves the id unselected
	if s.Snapshot()["gin"] {
		t.Fatalf("expected gin unselected after 100 toggles")
	}
}
