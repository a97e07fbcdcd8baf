package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"smokebin/internal/models"
)

func TestEventLog_Events_FilterAndOrder(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 8, 27, 10, 0, 0, 0, time.UTC)
	repo := &fakeEventRepo{events: []models.Event{
		dropAt("SB001", base),
		dropAt("SB001", base.Add(time.Hour)),
		dropAt("SB001", base.Add(5*time.Hour)), // outside range
		dropAt("SB002", base),                  // other device
	}}
	svc := NewEventLogService(repo)

	events, err := svc.Events(context.Background(), "SB001", LogFilter{
		From: base,
		To:   base.Add(2 * time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("want 2 events, got %d: %+v", len(events), events)
	}
	if events[0].Timestamp.Before(events[1].Timestamp) {
		t.Fatalf("expected newest first: %+v", events)
	}
}

func TestEventLog_Events_InvalidRange(t *testing.T) {
	t.Parallel()

	svc := NewEventLogService(&fakeEventRepo{})
	_, err := svc.Events(context.Background(), "SB001", LogFilter{
		From: time.Date(2025, 8, 27, 12, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 8, 27, 10, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestEventLog_Events_MissingDeviceID(t *testing.T) {
	t.Parallel()

	svc := NewEventLogService(&fakeEventRepo{})
	_, err := svc.Events(context.Background(), "", LogFilter{})
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
}

func TestEventLog_Stats_TalliesByKind(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 8, 27, 10, 0, 0, 0, time.UTC)
	repo := &fakeEventRepo{events: []models.Event{
		dropAt("SB001", base),
		dropAt("SB001", base.Add(time.Minute)),
		fullAt("SB001", base.Add(2*time.Minute)),
		{DeviceID: "SB001", EventType: models.EventMaintenance, Timestamp: base.Add(3 * time.Minute)},
		{DeviceID: "SB001", EventType: models.EventOffline, Timestamp: base.Add(4 * time.Minute)},
		{DeviceID: "SB001", EventType: models.EventOnline, Timestamp: base.Add(5 * time.Minute)},
		{DeviceID: "SB001", EventType: models.EventReset, Timestamp: base.Add(6 * time.Minute)},
	}}
	svc := NewEventLogService(repo)

	stats, err := svc.Stats(context.Background(), "SB001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := EventStats{
		TotalEvents:       7,
		DropEvents:        2,
		FullEvents:        1,
		MaintenanceEvents: 1,
		OfflineEvents:     1,
		OnlineEvents:      1,
		ResetEvents:       1,
	}
	if stats != want {
		t.Fatalf("stats:\n got %+v\nwant %+v", stats, want)
	}
}

func TestEventLog_StoreErrorWrapped(t *testing.T) {
	t.Parallel()

	svc := NewEventLogService(&fakeEventRepo{listErr: errors.New("down")})
	_, err := svc.Events(context.Background(), "SB001", LogFilter{})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
