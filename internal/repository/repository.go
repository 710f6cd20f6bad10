package repository

import (
	"context"
	"database/sql"

	"grinder_relay/internal/models"
	"grinder_relay/internal/repository/db"
)

// InitDB opens the SQLite file and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}

// AlarmRepo is the durable alarm store: ordered append plus lookup by id.
type AlarmRepo interface {
	Append(ctx context.Context, a models.Alarm) (models.Alarm, error)
	ListRecent(ctx context.Context, limit int) ([]models.Alarm, error)
	CountUnacknowledged(ctx context.Context) (int, error)
	// Acknowledge returns (nil, nil) when no alarm has the given id.
	Acknowledge(ctx context.Context, id string) (*models.Alarm, error)
	AcknowledgeAll(ctx context.Context) error
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	Alarms AlarmRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Alarms: NewAlarmSQLite(db),
	}
}
