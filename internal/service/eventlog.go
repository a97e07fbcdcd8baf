package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smokebin/internal/models"
	"smokebin/internal/repository"
)

// EventLogService exposes the append-only log for querying.
type EventLogService struct {
	events repository.EventRepo
}

func NewEventLogService(events repository.EventRepo) *EventLogService {
	return &EventLogService{events: events}
}

// EventStats are per-kind totals over a device's whole log.
type EventStats struct {
	TotalEvents       int `json:"total_events"`
	DropEvents        int `json:"drop_events"`
	FullEvents        int `json:"full_events"`
	MaintenanceEvents int `json:"maintenance_events"`
	OfflineEvents     int `json:"offline_events"`
	OnlineEvents      int `json:"online_events"`
	ResetEvents       int `json:"reset_events"`
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeAndValidateFilter prepares query bounds and validates the range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from must be <= to", ErrInvalidArgument)
	}
	return from, to, nil
}

// Events lists a device's events within the filter, newest first.
func (s *EventLogService) Events(ctx context.Context, deviceID string, f LogFilter) ([]models.Event, error) {
	if strings.TrimSpace(deviceID) == "" {
		return nil, fmt.Errorf("%w: device_id", ErrMissingField)
	}
	from, to, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	events, err := s.events.List(ctx, strings.TrimSpace(deviceID), from, to)
	if err != nil {
		return nil, storeErr(err)
	}
	return events, nil
}

// Stats tallies a device's events by kind.
func (s *EventLogService) Stats(ctx context.Context, deviceID string) (EventStats, error) {
	events, err := s.Events(ctx, deviceID, LogFilter{})
	if err != nil {
		return EventStats{}, err
	}

	stats := EventStats{TotalEvents: len(events)}
	for _, ev := range events {
		switch ev.EventType {
		case models.EventDrop:
			stats.DropEvents++
		case models.EventFull:
			stats.FullEvents++
		case models.EventMaintenance:
			stats.MaintenanceEvents++
		case models.EventOffline:
			stats.OfflineEvents++
		case models.EventOnline:
			stats.OnlineEvents++
		case models.EventReset:
			stats.ResetEvents++
		}
	}
	return stats, nil
}
