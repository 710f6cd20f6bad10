package service

import (
	"testing"
	"time"

	"grinder_relay/internal/models"
)

// fixedClock lets tests move the cache's notion of "now".
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time { return c.t }

func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache() (*StateCacheService, *fixedClock) {
	clock := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewStateCacheService()
	cache.now = clock.now
	return cache, clock
}

func TestStateCache_ReadBeforeFirstPush(t *testing.T) {
	t.Parallel()

	cache, _ := newTestCache()
	snap := cache.Read()

	if snap.Connected {
		t.Fatalf("expected disconnected before first push")
	}
	if snap.ReceivedAt != nil {
		t.Fatalf("expected nil ReceivedAt, got %v", snap.ReceivedAt)
	}
	if len(snap.Fields) != 0 {
		t.Fatalf("expected empty fields, got %v", snap.Fields)
	}
}

func TestStateCache_LivenessWindow(t *testing.T) {
	t.Parallel()

	cache, clock := newTestCache()
	cache.Push(models.SnapshotFields{"forward": true})

	if snap := cache.Read(); !snap.Connected {
		t.Fatalf("expected connected immediately after push")
	}

	clock.advance(livenessWindow - time.Millisecond)
	if snap := cache.Read(); !snap.Connected {
		t.Fatalf("expected connected just inside the window")
	}

	clock.advance(time.Millisecond)
	snap := cache.Read()
	if snap.Connected {
		t.Fatalf("expected disconnected at exactly the window boundary")
	}
	// the snapshot itself survives, only liveness degrades
	if got := snap.Fields["forward"]; got != true {
		t.Fatalf("expected forward=true to survive staleness, got %v", got)
	}
}

func TestStateCache_PushReplacesWholesale(t *testing.T) {
	t.Parallel()

	cache, _ := newTestCache()
	cache.Push(models.SnapshotFields{"forward": true, "jam": false})
	cache.Push(models.SnapshotFields{"reverse": true})

	snap := cache.Read()
	if _, ok := snap.Fields["forward"]; ok {
		t.Fatalf("field from prior snapshot leaked through: %v", snap.Fields)
	}
	if _, ok := snap.Fields["jam"]; ok {
		t.Fatalf("field from prior snapshot leaked through: %v", snap.Fields)
	}
	if got := snap.Fields["reverse"]; got != true {
		t.Fatalf("expected reverse=true, got %v", got)
	}
}

func TestStateCache_StripsReservedKeys(t *testing.T) {
	t.Parallel()

	cache, _ := newTestCache()
	cache.Push(models.SnapshotFields{
		"jam":                       true,
		models.SnapshotKeyConnected: true,
		models.SnapshotKeyTimestamp: "1970-01-01T00:00:00Z",
	})

	snap := cache.Read()
	if _, ok := snap.Fields[models.SnapshotKeyConnected]; ok {
		t.Fatalf("gateway-supplied connected flag was not stripped")
	}
	if _, ok := snap.Fields[models.SnapshotKeyTimestamp]; ok {
		t.Fatalf("gateway-supplied timestamp was not stripped")
	}
	if got := snap.Fields["jam"]; got != true {
		t.Fatalf("expected jam=true, got %v", got)
	}
}

func TestStateCache_ReadReturnsCopy(t *testing.T) {
	t.Parallel()

	cache, _ := newTestCache()
	cache.Push(models.SnapshotFields{"forward": true})

	snap := cache.Read()
	snap.Fields["forward"] = false

	if got := cache.Read().Fields["forward"]; got != true {
		t.Fatalf("mutating a read snapshot leaked into the cache")
	}
}
