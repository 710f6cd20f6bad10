package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestReset(repo *stubAlarmRepo) (*ResetService, *fixedClock) {
	clock := &fixedClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := NewResetService(repo)
	svc.now = clock.now
	return svc, clock
}

func TestResetService_RequestArmsSlotAndLogsAudit(t *testing.T) {
	t.Parallel()

	repo := &stubAlarmRepo{}
	svc, clock := newTestReset(repo)

	pending, err := svc.Request(context.Background())
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if !pending.Active {
		t.Fatalf("expected active slot")
	}
	if pending.Timestamp == nil || !pending.Timestamp.Equal(clock.t) {
		t.Fatalf("unexpected timestamp %v", pending.Timestamp)
	}

	if len(repo.appended) != 1 {
		t.Fatalf("expected one audit alarm, got %d", len(repo.appended))
	}
	audit := repo.appended[0]
	if audit.Type != resetAlarmType || audit.Message != resetAlarmMessage || audit.Severity != resetAlarmSeverity {
		t.Fatalf("unexpected audit alarm: %+v", audit)
	}
	if audit.Acknowledged {
		t.Fatalf("audit alarm must start unacknowledged")
	}
}

func TestResetService_LastRequestWins(t *testing.T) {
	t.Parallel()

	repo := &stubAlarmRepo{}
	svc, clock := newTestReset(repo)

	if _, err := svc.Request(context.Background()); err != nil {
		t.Fatalf("first Request: %v", err)
	}
	clock.advance(30 * time.Second)
	second := clock.t
	if _, err := svc.Request(context.Background()); err != nil {
		t.Fatalf("second Request: %v", err)
	}

	pending := svc.Peek()
	if pending.Timestamp == nil || !pending.Timestamp.Equal(second) {
		t.Fatalf("expected the second request's timestamp, got %v", pending.Timestamp)
	}
}

func TestResetService_AuditFailureKeepsSlotArmed(t *testing.T) {
	t.Parallel()

	repo := &stubAlarmRepo{appendErr: errors.New("store down")}
	svc, _ := newTestReset(repo)

	pending, err := svc.Request(context.Background())
	if err == nil {
		t.Fatalf("expected audit append failure to surface")
	}
	if !pending.Active {
		t.Fatalf("slot must be armed even when the audit append fails")
	}
	if got := svc.Peek(); !got.Active {
		t.Fatalf("slot lost after failed audit append")
	}
}

func TestResetService_PeekDoesNotClear(t *testing.T) {
	t.Parallel()

	svc, _ := newTestReset(&stubAlarmRepo{})
	if _, err := svc.Request(context.Background()); err != nil {
		t.Fatalf("Request: %v", err)
	}

	for i := 0; i < 3; i++ {
		if got := svc.Peek(); !got.Active {
			t.Fatalf("peek %d cleared the slot", i)
		}
	}
}

func TestResetService_ConsumeReturnsAndClears(t *testing.T) {
	t.Parallel()

	svc, _ := newTestReset(&stubAlarmRepo{})
	if _, err := svc.Request(context.Background()); err != nil {
		t.Fatalf("Request: %v", err)
	}

	got := svc.Consume()
	if !got.Active || got.Timestamp == nil {
		t.Fatalf("consume should return the armed record, got %+v", got)
	}

	after := svc.Peek()
	if after.Active || after.Timestamp != nil {
		t.Fatalf("slot not cleared after consume: %+v", after)
	}

	// consuming an empty slot is harmless
	if again := svc.Consume(); again.Active {
		t.Fatalf("second consume returned an armed record")
	}
}
