package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"grinder_relay/internal/models"

	"github.com/google/uuid"
)

type AlarmSQLite struct {
	db *sql.DB
}

func NewAlarmSQLite(db *sql.DB) *AlarmSQLite { return &AlarmSQLite{db: db} }

// Ensure implementation of AlarmRepo at compile time.
var _ AlarmRepo = (*AlarmSQLite)(nil)

const (
	insertAlarmSQL = `
		INSERT INTO alarms (id, type, message, severity, occurred_at, acknowledged)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	selectRecentAlarmsSQL = `
		SELECT id, type, message, severity, occurred_at, acknowledged
		FROM alarms ORDER BY occurred_at DESC LIMIT ?
	`

	countUnackedSQL = `SELECT COUNT(*) FROM alarms WHERE acknowledged = 0`

	acknowledgeAlarmSQL = `UPDATE alarms SET acknowledged = 1 WHERE id = ?`

	selectAlarmByIDSQL = `
		SELECT id, type, message, severity, occurred_at, acknowledged
		FROM alarms WHERE id = ?
	`

	acknowledgeAllSQL = `UPDATE alarms SET acknowledged = 1 WHERE acknowledged = 0`

	deleteAlarmSQL = `DELETE FROM alarms WHERE id = ?`
)

// Append inserts a new alarm. Missing ID and OccurredAt are filled in; the
// populated record is returned to the caller.
func (r *AlarmSQLite) Append(ctx context.Context, a models.Alarm) (models.Alarm, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.OccurredAt.IsZero() {
		a.OccurredAt = time.Now().UTC()
	} else {
		a.OccurredAt = a.OccurredAt.UTC()
	}
	a.Type = strings.TrimSpace(a.Type)
	a.Message = strings.TrimSpace(a.Message)

	_, err := r.db.ExecContext(ctx, insertAlarmSQL,
		a.ID,
		a.Type,
		a.Message,
		a.Severity,
		a.OccurredAt,
		a.Acknowledged,
	)
	if err != nil {
		return models.Alarm{}, fmt.Errorf("insert alarm: %w", err)
	}
	return a, nil
}

// ListRecent returns at most limit alarms ordered by occurred_at descending.
func (r *AlarmSQLite) ListRecent(ctx context.Context, limit int) ([]models.Alarm, error) {
	rows, err := r.db.QueryContext(ctx, selectRecentAlarmsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select alarms: %w", err)
	}
	defer rows.Close()

	out := make([]models.Alarm, 0, limit)
	for rows.Next() {
		var a models.Alarm
		if err := rows.Scan(&a.ID, &a.Type, &a.Message, &a.Severity, &a.OccurredAt, &a.Acknowledged); err != nil {
			return nil, err
		}
		a.OccurredAt = a.OccurredAt.UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AlarmSQLite) CountUnacknowledged(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countUnackedSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unacknowledged alarms: %w", err)
	}
	return n, nil
}

// Acknowledge sets acknowledged on one alarm and returns the updated record.
// Returns (nil, nil) when the id does not exist.
func (r *AlarmSQLite) Acknowledge(ctx context.Context, id string) (*models.Alarm, error) {
	res, err := r.db.ExecContext(ctx, acknowledgeAlarmSQL, id)
	if err != nil {
		return nil, fmt.Errorf("acknowledge alarm %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("acknowledge alarm %q rows affected: %w", id, err)
	}
	if affected == 0 {
		return nil, nil
	}

	var a models.Alarm
	err = r.db.QueryRowContext(ctx, selectAlarmByIDSQL, id).
		Scan(&a.ID, &a.Type, &a.Message, &a.Severity, &a.OccurredAt, &a.Acknowledged)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// deleted between update and select
			return nil, nil
		}
		return nil, fmt.Errorf("select alarm %q: %w", id, err)
	}
	a.OccurredAt = a.OccurredAt.UTC()
	return &a, nil
}

// AcknowledgeAll flips every unacknowledged alarm in a single statement.
// Best-effort bulk: alarms ingested concurrently may or may not be included.
func (r *AlarmSQLite) AcknowledgeAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, acknowledgeAllSQL); err != nil {
		return fmt.Errorf("acknowledge all alarms: %w", err)
	}
	return nil
}

// Delete removes one alarm. Deleting a nonexistent id is not an error.
func (r *AlarmSQLite) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, deleteAlarmSQL, id); err != nil {
		return fmt.Errorf("delete alarm %q: %w", id, err)
	}
	return nil
}
