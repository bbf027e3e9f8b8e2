package router

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLocation_SetHashQueuesEvent(t *testing.T) {
	loc := NewMemoryLocation("")

	calls := 0
	loc.OnChange(func() { calls++ })

	loc.SetHash("#/a")
	if calls != 0 {
		t.Fatal("listener ran inside SetHash")
	}
	if loc.Pending() != 1 {
		t.Errorf("expected 1 pending event, got %d", loc.Pending())
	}

	if n := loc.Flush(); n != 1 {
		t.Errorf("expected 1 delivered event, got %d", n)
	}
	if calls != 1 {
		t.Errorf("expected listener once, got %d", calls)
	}
}

func TestMemoryLocation_SameHashIsIgnored(t *testing.T) {
	loc := NewMemoryLocation("#/a")

	loc.SetHash("#/a")

	if loc.Pending() != 0 {
		t.Errorf("expected no event for unchanged hash, got %d", loc.Pending())
	}
	if loc.Len() != 1 {
		t.Errorf("expected no new history entry, got %d", loc.Len())
	}
}

func TestMemoryLocation_ReplaceHash(t *testing.T) {
	loc := NewMemoryLocation("#/a")
	loc.SetHash("#/b")
	loc.Flush()

	loc.ReplaceHash("#/c")

	if loc.Hash() != "#/c" {
		t.Errorf("expected #/c, got %q", loc.Hash())
	}
	if loc.Len() != 2 {
		t.Errorf("expected 2 history entries, got %d", loc.Len())
	}
	if loc.Pending() != 0 {
		t.Errorf("ReplaceHash should not queue events, got %d", loc.Pending())
	}
}

func TestMemoryLocation_Back(t *testing.T) {
	loc := NewMemoryLocation("#/a")

	if loc.Back() {
		t.Error("expected Back to fail on a single entry")
	}

	loc.SetHash("#/b")
	loc.Flush()

	if !loc.Back() {
		t.Fatal("expected Back to succeed")
	}
	if loc.Hash() != "#/a" {
		t.Errorf("expected #/a after Back, got %q", loc.Hash())
	}
	if loc.Pending() != 1 {
		t.Errorf("expected Back to queue an event, got %d", loc.Pending())
	}
}

func TestMemoryLocation_RemoveListener(t *testing.T) {
	loc := NewMemoryLocation("")

	first, second := 0, 0
	remove := loc.OnChange(func() { first++ })
	loc.OnChange(func() { second++ })

	remove()
	remove()
	loc.SetHash("#/x")
	loc.Flush()

	if first != 0 || second != 1 {
		t.Errorf("expected only the remaining listener, got first=%d second=%d", first, second)
	}
}

func TestMemoryLocation_ListenersRunInOrder(t *testing.T) {
	loc := NewMemoryLocation("")

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		loc.OnChange(func() { order = append(order, i) })
	}

	loc.SetHash("#/x")
	loc.Flush()

	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("expected listeners in registration order, got %v", order)
	}
}

func TestMemoryLocation_FlushDeliversNestedEvents(t *testing.T) {
	loc := NewMemoryLocation("")

	var seen []string
	loc.OnChange(func() {
		seen = append(seen, loc.Hash())
		if loc.Hash() == "#/login" {
			loc.SetHash("#/dashboard")
		}
	})

	loc.SetHash("#/login")
	if n := loc.Flush(); n != 2 {
		t.Errorf("expected 2 delivered events, got %d", n)
	}
	if len(seen) != 2 || seen[1] != "#/dashboard" {
		t.Errorf("expected redirect to be delivered, got %v", seen)
	}
}

func TestMemoryLocation_Run(t *testing.T) {
	loc := NewMemoryLocation("")
	r := New(loc)

	hit := make(chan Params, 1)
	r.Register("/projects/:id", func(p Params) { hit <- p })
	r.Init()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loc.Run(ctx) }()

	r.Navigate("/projects/42")

	select {
	case p := <-hit:
		if p["id"] != "42" {
			t.Errorf("expected id=42, got %q", p["id"])
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for dispatch")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}
