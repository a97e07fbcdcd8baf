package repository

import (
	"context"
	"database/sql"
	"time"

	"smokebin/internal/models"
	"smokebin/internal/repository/db"
)

// DeviceRepo is the device collection, keyed by device_id.
type DeviceRepo interface {
	Save(ctx context.Context, d models.Device) error
	// Get returns the zero Device (empty DeviceID) when no record exists.
	Get(ctx context.Context, deviceID string) (models.Device, error)
	List(ctx context.Context) ([]models.Device, error)
}

// EventRepo is the append-only event log.
type EventRepo interface {
	// Append stores e, filling in ID and Timestamp when absent, and returns
	// the stored event. Events are immutable afterward.
	Append(ctx context.Context, e models.Event) (models.Event, error)
	// List returns events for a device within [from, to] inclusive, newest
	// first. A zero bound leaves that side unconstrained.
	List(ctx context.Context, deviceID string, from, to time.Time) ([]models.Event, error)
	// Count counts events of one kind within [from, to] inclusive.
	Count(ctx context.Context, deviceID, kind string, from, to time.Time) (int, error)
}

type Repository struct {
	Devices DeviceRepo
	Events  EventRepo
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Devices: NewDeviceSQLite(sqlDB),
		Events:  NewEventSQLite(sqlDB),
	}
}

// InitDB opens the SQLite backend and bootstraps the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
