package service

import (
	"context"
	"time"

	"grinder_relay/internal/logger"
	"grinder_relay/internal/models"
	"grinder_relay/internal/repository"
)

// Authorization covers both trust domains: dashboard users (signed bearer
// token) and the single gateway (static shared secret).
type Authorization interface {
	Login(username, password string) (string, models.UserIdentity, error)
	ParseToken(accessToken string) (models.UserIdentity, error)
	VerifyGatewayToken(token string) error
}

// StateCache holds the most recent device snapshot; liveness is derived
// against the reader's clock.
type StateCache interface {
	Push(fields models.SnapshotFields)
	Read() models.DeviceSnapshot
}

// ResetCoordinator manages the single outstanding reset request.
type ResetCoordinator interface {
	Request(ctx context.Context) (models.PendingReset, error)
	Peek() models.PendingReset
	Consume() models.PendingReset
}

// Alarms exposes the fault-event lifecycle: ingest, list, count, ack, delete.
type Alarms interface {
	Ingest(ctx context.Context, typ, message, severity string) (models.Alarm, error)
	List(ctx context.Context, limit int) ([]models.Alarm, error)
	CountUnacknowledged(ctx context.Context) (int, error)
	Acknowledge(ctx context.Context, id string) (models.Alarm, error)
	AcknowledgeAll(ctx context.Context) error
	Delete(ctx context.Context, id string) error
}

// Watchdog runs the background loop that records gateway liveness
// transitions as alarms. Stop via context cancellation in main().
type Watchdog interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Authorization
	StateCache
	ResetCoordinator
	Alarms
	Watchdog
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, authCfg AuthConfig, log *logger.Logger) *Service {
	cache := NewStateCacheService()
	return &Service{
		Authorization:    NewAuthService(authCfg),
		StateCache:       cache,
		ResetCoordinator: NewResetService(repos.Alarms),
		Alarms:           NewAlarmService(repos.Alarms),
		Watchdog:         NewWatchdogService(cache, repos.Alarms, log),
	}
}
