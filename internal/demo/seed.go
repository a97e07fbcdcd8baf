// Package demo holds sample fleet data for local development and demos.
// Nothing here is derived from real aggregation; it only exists so a fresh
// database has something to show.
package demo

import (
	"context"
	"time"

	"smokebin/internal/models"
	"smokebin/internal/repository"
)

// SampleDevices returns the demo fleet. Levels and statuses are arbitrary
// but internally consistent (level never exceeds capacity).
func SampleDevices() []models.Device {
	return []models.Device{
		{DeviceID: "SB001", Location: "Gangnam Station Exit 1", Latitude: 37.4979, Longitude: 127.0276, Status: models.StatusActive, Capacity: 100, CurrentLevel: 45},
		{DeviceID: "SB002", Location: "Hongik Univ. Station Exit 2", Latitude: 37.5563, Longitude: 126.9226, Status: models.StatusActive, Capacity: 100, CurrentLevel: 78},
		{DeviceID: "SB003", Location: "Myeongdong Station Exit 3", Latitude: 37.5636, Longitude: 126.9826, Status: models.StatusFull, Capacity: 100, CurrentLevel: 100},
		{DeviceID: "SB004", Location: "Jamsil Station Exit 1", Latitude: 37.5133, Longitude: 127.1028, Status: models.StatusOffline, Capacity: 100, CurrentLevel: 0},
		{DeviceID: "SB005", Location: "Sinchon Station Exit 1", Latitude: 37.5551, Longitude: 126.9368, Status: models.StatusActive, Capacity: 100, CurrentLevel: 32},
	}
}

// SampleEvents spreads a handful of events over the hours before now so the
// usage views have a visible pattern.
func SampleEvents(now time.Time) []models.Event {
	now = now.UTC()
	specs := []struct {
		deviceID string
		kind     string
		data     map[string]any
	}{
		{"SB001", models.EventDrop, map[string]any{"sensor_data": "motion_detected", "weight_change": 0.5}},
		{"SB001", models.EventDrop, map[string]any{"sensor_data": "motion_detected", "weight_change": 0.3}},
		{"SB002", models.EventDrop, map[string]any{"sensor_data": "motion_detected", "weight_change": 0.4}},
		{"SB003", models.EventFull, map[string]any{"capacity_reached": true}},
		{"SB003", models.EventMaintenance, map[string]any{"maintenance_type": "scheduled"}},
		{"SB005", models.EventDrop, map[string]any{"sensor_data": "motion_detected", "weight_change": 0.6}},
		{"SB002", models.EventDrop, map[string]any{"sensor_data": "motion_detected", "weight_change": 0.4}},
		{"SB004", models.EventOffline, map[string]any{"reason": "network_disconnected"}},
	}

	events := make([]models.Event, 0, len(specs))
	for i, spec := range specs {
		events = append(events, models.Event{
			DeviceID:  spec.deviceID,
			EventType: spec.kind,
			Timestamp: now.Add(-time.Duration(i*2) * time.Hour),
			Data:      spec.data,
		})
	}
	return events
}

// Seed loads the sample fleet and events, skipping devices that already
// exist so restarts don't duplicate state.
func Seed(ctx context.Context, repos *repository.Repository) error {
	existing, err := repos.Devices.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, dev := range SampleDevices() {
		if err := repos.Devices.Save(ctx, dev); err != nil {
			return err
		}
	}
	for _, ev := range SampleEvents(time.Now()) {
		if _, err := repos.Events.Append(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}
