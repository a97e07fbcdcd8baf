package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"smokebin/internal/models"
)

type DeviceSQLite struct {
	db *sql.DB
}

func NewDeviceSQLite(db *sql.DB) *DeviceSQLite { return &DeviceSQLite{db: db} }

const upsertDeviceSQL = `
	INSERT INTO devices (device_id, location, latitude, longitude, status, capacity, current_level, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(device_id) DO UPDATE SET
		location=excluded.location,
		latitude=excluded.latitude,
		longitude=excluded.longitude,
		status=excluded.status,
		capacity=excluded.capacity,
		current_level=excluded.current_level,
		updated_at=excluded.updated_at
`

const selectDeviceSQL = `
	SELECT device_id, location, latitude, longitude, status, capacity, current_level, created_at, updated_at
	FROM devices
`

// Save upserts a device row. Zero timestamps are filled with now; created_at
// is never overwritten on conflict.
func (r *DeviceSQLite) Save(ctx context.Context, d models.Device) error {
	now := time.Now().UTC()
	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	} else {
		createdAt = createdAt.UTC()
	}
	updatedAt := d.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	} else {
		updatedAt = updatedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, upsertDeviceSQL,
		d.DeviceID,
		d.Location,
		d.Latitude,
		d.Longitude,
		d.Status,
		d.Capacity,
		d.CurrentLevel,
		createdAt.Format(timeLayout),
		updatedAt.Format(timeLayout),
	)
	return err
}

// Get fetches one device. A missing row yields the zero Device, not an error.
func (r *DeviceSQLite) Get(ctx context.Context, deviceID string) (models.Device, error) {
	row := r.db.QueryRowContext(ctx, selectDeviceSQL+` WHERE device_id = ?`, deviceID)

	d, err := scanDevice(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Device{}, nil
		}
		return models.Device{}, err
	}
	return d, nil
}

// List returns the whole fleet ordered by device_id.
func (r *DeviceSQLite) List(ctx context.Context) ([]models.Device, error) {
	rows, err := r.db.QueryContext(ctx, selectDeviceSQL+` ORDER BY device_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Device, 0, 16)
	for rows.Next() {
		d, err := scanDevice(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// scanDevice scans one row, always recomputing the derived fill percentage.
func scanDevice(scan func(dest ...any) error) (models.Device, error) {
	var d models.Device
	if err := scan(
		&d.DeviceID,
		&d.Location,
		&d.Latitude,
		&d.Longitude,
		&d.Status,
		&d.Capacity,
		&d.CurrentLevel,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return models.Device{}, err
	}
	d.CreatedAt = d.CreatedAt.UTC()
	d.UpdatedAt = d.UpdatedAt.UTC()
	d.FillPercentage = d.FillPct()
	return d, nil
}
