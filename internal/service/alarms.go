package service

import (
	"context"
	"errors"
	"strings"

	"grinder_relay/internal/models"
	"grinder_relay/internal/repository"
)

// Alarm list page size: default and hard cap, matching the dashboard's view.
const (
	defaultAlarmLimit = 50
	maxAlarmLimit     = 50
)

var (
	ErrAlarmNotFound = errors.New("alarm not found")
	errEmptyAlarm    = errors.New("alarm type and message are required")
)

// defaultSeverity is applied when the gateway omits the field.
const defaultSeverity = "low"

// AlarmService implements the fault-event lifecycle over the durable store.
// No retries: a failed store call surfaces immediately, re-issuing is the
// caller's responsibility.
type AlarmService struct {
	alarmRepo repository.AlarmRepo
}

func NewAlarmService(alarmRepo repository.AlarmRepo) *AlarmService {
	return &AlarmService{alarmRepo: alarmRepo}
}

// Ingest validates and durably appends a gateway fault event, unacknowledged.
func (s *AlarmService) Ingest(ctx context.Context, typ, message, severity string) (models.Alarm, error) {
	typ = strings.TrimSpace(typ)
	message = strings.TrimSpace(message)
	if typ == "" || message == "" {
		return models.Alarm{}, errEmptyAlarm
	}
	severity = strings.TrimSpace(severity)
	if severity == "" {
		severity = defaultSeverity
	}
	return s.alarmRepo.Append(ctx, models.Alarm{
		Type:     typ,
		Message:  message,
		Severity: severity,
	})
}

// List returns the most recent alarms, newest first. A non-positive or
// oversized limit falls back to the default page size.
func (s *AlarmService) List(ctx context.Context, limit int) ([]models.Alarm, error) {
	if limit <= 0 || limit > maxAlarmLimit {
		limit = defaultAlarmLimit
	}
	return s.alarmRepo.ListRecent(ctx, limit)
}

func (s *AlarmService) CountUnacknowledged(ctx context.Context) (int, error) {
	return s.alarmRepo.CountUnacknowledged(ctx)
}

// Acknowledge marks one alarm acknowledged; a missing id is an explicit
// ErrAlarmNotFound.
func (s *AlarmService) Acknowledge(ctx context.Context, id string) (models.Alarm, error) {
	a, err := s.alarmRepo.Acknowledge(ctx, id)
	if err != nil {
		return models.Alarm{}, err
	}
	if a == nil {
		return models.Alarm{}, ErrAlarmNotFound
	}
	return *a, nil
}

// AcknowledgeAll flips every currently-unacknowledged alarm in one bulk
// update; no snapshot isolation is guaranteed against concurrent ingestion.
func (s *AlarmService) AcknowledgeAll(ctx context.Context) error {
	return s.alarmRepo.AcknowledgeAll(ctx)
}

// Delete removes one alarm; deleting a nonexistent id succeeds.
func (s *AlarmService) Delete(ctx context.Context, id string) error {
	return s.alarmRepo.Delete(ctx, id)
}
