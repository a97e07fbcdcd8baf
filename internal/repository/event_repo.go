package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"smokebin/internal/models"

	"github.com/google/uuid"
)

// SQLite TIMESTAMP format "YYYY-MM-DD HH:MM:SS"; lexicographic order matches
// chronological order, so range filters can compare formatted strings.
const timeLayout = "2006-01-02 15:04:05"

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

// Append inserts a new event. If ID or Timestamp are empty, they're set.
func (r *EventSQLite) Append(ctx context.Context, e models.Event) (models.Event, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	} else {
		e.Timestamp = e.Timestamp.UTC()
	}
	e.EventType = strings.ToLower(strings.TrimSpace(e.EventType))

	var dataPtr *string
	if e.Data != nil {
		if b, err := json.Marshal(e.Data); err == nil {
			s := string(b)
			dataPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO device_events (id, device_id, event_type, occurred_at, data)
		VALUES (?, ?, ?, ?, ?)
	`,
		e.ID,
		e.DeviceID,
		e.EventType,
		e.Timestamp.Format(timeLayout),
		dataPtr,
	)
	if err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// List returns a device's events within [from, to] inclusive, newest first.
func (r *EventSQLite) List(ctx context.Context, deviceID string, from, to time.Time) ([]models.Event, error) {
	conds := []string{"device_id = ?"}
	args := []any{deviceID}

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(timeLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC().Format(timeLayout))
	}

	q := `SELECT id, device_id, event_type, occurred_at, data FROM device_events WHERE ` +
		strings.Join(conds, " AND ") + ` ORDER BY occurred_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Event, 0, 64)
	for rows.Next() {
		var ev models.Event
		var dataStr sql.NullString
		if err := rows.Scan(&ev.ID, &ev.DeviceID, &ev.EventType, &ev.Timestamp, &dataStr); err != nil {
			return nil, err
		}
		ev.Timestamp = ev.Timestamp.UTC()

		if dataStr.Valid && dataStr.String != "" {
			var m map[string]any
			if err := json.Unmarshal([]byte(dataStr.String), &m); err == nil {
				ev.Data = m
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count counts one kind of event within [from, to] inclusive.
func (r *EventSQLite) Count(ctx context.Context, deviceID, kind string, from, to time.Time) (int, error) {
	conds := []string{"device_id = ?", "event_type = ?"}
	args := []any{deviceID, strings.ToLower(strings.TrimSpace(kind))}

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC().Format(timeLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC().Format(timeLayout))
	}

	q := `SELECT COUNT(*) FROM device_events WHERE ` + strings.Join(conds, " AND ")

	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
