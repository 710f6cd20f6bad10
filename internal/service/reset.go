package service

import (
	"context"
	"sync"
	"time"

	"grinder_relay/internal/models"
	"grinder_relay/internal/repository"
)

// Audit alarm recorded on every reset request.
const (
	resetAlarmType     = "System Reset"
	resetAlarmMessage  = "Grinder system reset requested"
	resetAlarmSeverity = "low"
)

// ResetService owns the single-slot reset handshake between users and the
// gateway. At-most-one in-flight reset is enforced by overwrite: a new
// request replaces any unconsumed prior one.
type ResetService struct {
	mu      sync.Mutex
	pending models.PendingReset

	alarmRepo repository.AlarmRepo

	now func() time.Time // injectable clock for tests
}

func NewResetService(alarmRepo repository.AlarmRepo) *ResetService {
	return &ResetService{alarmRepo: alarmRepo, now: time.Now}
}

// Request arms the slot and appends the audit alarm. The slot is set before
// the append: if the append fails the reset stays pending and the error is
// surfaced to the caller.
func (s *ResetService) Request(ctx context.Context) (models.PendingReset, error) {
	requestedAt := s.now().UTC()

	s.mu.Lock()
	s.pending = models.PendingReset{Active: true, Timestamp: &requestedAt}
	pending := s.pending
	s.mu.Unlock()

	_, err := s.alarmRepo.Append(ctx, models.Alarm{
		Type:       resetAlarmType,
		Message:    resetAlarmMessage,
		Severity:   resetAlarmSeverity,
		OccurredAt: requestedAt,
	})
	return pending, err
}

// Peek returns the current slot without mutating it (gateway read-only poll).
func (s *ResetService) Peek() models.PendingReset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Consume returns the current slot and clears it, acknowledging that the
// gateway has taken the request.
func (s *ResetService) Consume() models.PendingReset {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.pending
	s.pending = models.PendingReset{}
	return pending
}
