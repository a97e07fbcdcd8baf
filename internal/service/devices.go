package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smokebin/internal/models"
	"smokebin/internal/repository"
)

// Statuses an operator may set directly; full is only ever derived from
// events by the projector.
var settableStatuses = map[string]bool{
	models.StatusActive:      true,
	models.StatusMaintenance: true,
	models.StatusOffline:     true,
}

// DeviceService is the registry: listing, detail, status updates and the
// hardware simulation endpoints.
type DeviceService struct {
	devices repository.DeviceRepo
	events  repository.EventRepo
	rollups *RollupService
	ingest  *IngestService // shares its per-device locks for simulations
	now     func() time.Time
}

func NewDeviceService(devices repository.DeviceRepo, events repository.EventRepo, rollups *RollupService, ingest *IngestService) *DeviceService {
	return &DeviceService{
		devices: devices,
		events:  events,
		rollups: rollups,
		ingest:  ingest,
		now:     time.Now,
	}
}

// DeviceDetail is a device plus its headline usage numbers.
type DeviceDetail struct {
	models.Device
	TodayDrops  int            `json:"today_drops"`
	FullHistory []models.Event `json:"full_history"`
}

// DeviceStats is the compact per-device summary.
type DeviceStats struct {
	DeviceID         string  `json:"device_id"`
	TodayDrops       int     `json:"today_drops"`
	RecentFullEvents int     `json:"recent_full_events"`
	FillPercentage   float64 `json:"fill_percentage"`
	Status           string  `json:"status"`
}

// SimulationResult reports the before/after of one simulated action.
type SimulationResult struct {
	DeviceID       string  `json:"device_id"`
	PreviousLevel  int     `json:"previous_level"`
	CurrentLevel   int     `json:"current_level"`
	FillPercentage float64 `json:"fill_percentage"`
	IsFull         bool    `json:"is_full"`
	Status         string  `json:"status"`
	Simulated      bool    `json:"simulated"`
}

func (s *DeviceService) List(ctx context.Context) ([]models.Device, error) {
	devices, err := s.devices.List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return devices, nil
}

// load fetches a device or fails with ErrDeviceNotFound.
func (s *DeviceService) load(ctx context.Context, deviceID string) (models.Device, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return models.Device{}, fmt.Errorf("%w: device_id", ErrMissingField)
	}
	dev, err := s.devices.Get(ctx, deviceID)
	if err != nil {
		return models.Device{}, storeErr(err)
	}
	if dev.DeviceID == "" {
		return models.Device{}, fmt.Errorf("%w: %s", ErrDeviceNotFound, deviceID)
	}
	return dev, nil
}

func (s *DeviceService) Get(ctx context.Context, deviceID string) (DeviceDetail, error) {
	dev, err := s.load(ctx, deviceID)
	if err != nil {
		return DeviceDetail{}, err
	}
	todayDrops, err := s.rollups.TodayDropCount(ctx, dev.DeviceID)
	if err != nil {
		return DeviceDetail{}, err
	}
	fullHistory, err := s.rollups.FullHistory(ctx, dev.DeviceID, 0)
	if err != nil {
		return DeviceDetail{}, err
	}
	return DeviceDetail{Device: dev, TodayDrops: todayDrops, FullHistory: fullHistory}, nil
}

// UpdateStatus sets an operator-controlled status. full cannot be set here.
// The whole row is rewritten, so load and save hold the device lock to keep
// a concurrent ingest's level change from being clobbered.
func (s *DeviceService) UpdateStatus(ctx context.Context, deviceID, status string) (models.Device, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !settableStatuses[status] {
		return models.Device{}, fmt.Errorf("%w: status %q", ErrInvalidArgument, status)
	}

	unlock := s.ingest.lockDevice(strings.TrimSpace(deviceID))
	defer unlock()

	dev, err := s.load(ctx, deviceID)
	if err != nil {
		return models.Device{}, err
	}

	dev.Status = status
	dev.UpdatedAt = s.now().UTC()
	if err := s.devices.Save(ctx, dev); err != nil {
		return models.Device{}, storeErr(err)
	}
	dev.FillPercentage = dev.FillPct()
	return dev, nil
}

func (s *DeviceService) Stats(ctx context.Context, deviceID string) (DeviceStats, error) {
	detail, err := s.Get(ctx, deviceID)
	if err != nil {
		return DeviceStats{}, err
	}
	return DeviceStats{
		DeviceID:         detail.DeviceID,
		TodayDrops:       detail.TodayDrops,
		RecentFullEvents: len(detail.FullHistory),
		FillPercentage:   detail.FillPct(),
		Status:           detail.Status,
	}, nil
}

// SimulateDrop mimics one cigarette butt drop: the device level rises, and a
// saturation full event is recorded when capacity is reached, the same way
// the hardware reports it.
func (s *DeviceService) SimulateDrop(ctx context.Context, deviceID string) (SimulationResult, error) {
	// Lock before loading: a snapshot read outside the lock goes stale the
	// moment another mutation for the same device gets in first.
	unlock := s.ingest.lockDevice(strings.TrimSpace(deviceID))
	defer unlock()

	dev, err := s.load(ctx, deviceID)
	if err != nil {
		return SimulationResult{}, err
	}
	if dev.Status == models.StatusOffline {
		return SimulationResult{}, fmt.Errorf("%w: %s", ErrDeviceOffline, dev.DeviceID)
	}

	prev := dev.CurrentLevel
	now := s.now().UTC()

	stored, err := s.events.Append(ctx, models.Event{
		DeviceID:  dev.DeviceID,
		EventType: models.EventDrop,
		Timestamp: now,
		Data:      map[string]any{"simulated": true},
	})
	if err != nil {
		return SimulationResult{}, storeErr(err)
	}

	next := ApplyEvent(dev, stored)
	isFull := next.CurrentLevel >= next.Capacity
	if isFull {
		if _, err := s.events.Append(ctx, models.Event{
			DeviceID:  dev.DeviceID,
			EventType: models.EventFull,
			Timestamp: now,
			Data:      map[string]any{"simulated": true},
		}); err != nil {
			return SimulationResult{}, storeErr(err)
		}
	}

	if err := s.devices.Save(ctx, next); err != nil {
		return SimulationResult{}, storeErr(err)
	}

	return SimulationResult{
		DeviceID:       next.DeviceID,
		PreviousLevel:  prev,
		CurrentLevel:   next.CurrentLevel,
		FillPercentage: next.FillPct(),
		IsFull:         isFull,
		Status:         next.Status,
		Simulated:      true,
	}, nil
}

// SimulateReset empties the bin and reactivates it.
func (s *DeviceService) SimulateReset(ctx context.Context, deviceID string) (SimulationResult, error) {
	return s.simulateEvent(ctx, deviceID, models.EventReset)
}

// SimulateFull forces the bin to saturation.
func (s *DeviceService) SimulateFull(ctx context.Context, deviceID string) (SimulationResult, error) {
	return s.simulateEvent(ctx, deviceID, models.EventFull)
}

func (s *DeviceService) simulateEvent(ctx context.Context, deviceID, kind string) (SimulationResult, error) {
	unlock := s.ingest.lockDevice(strings.TrimSpace(deviceID))
	defer unlock()

	dev, err := s.load(ctx, deviceID)
	if err != nil {
		return SimulationResult{}, err
	}

	prev := dev.CurrentLevel

	stored, err := s.events.Append(ctx, models.Event{
		DeviceID:  dev.DeviceID,
		EventType: kind,
		Timestamp: s.now().UTC(),
		Data:      map[string]any{"simulated": true},
	})
	if err != nil {
		return SimulationResult{}, storeErr(err)
	}

	next := ApplyEvent(dev, stored)
	if err := s.devices.Save(ctx, next); err != nil {
		return SimulationResult{}, storeErr(err)
	}

	return SimulationResult{
		DeviceID:       next.DeviceID,
		PreviousLevel:  prev,
		CurrentLevel:   next.CurrentLevel,
		FillPercentage: next.FillPct(),
		IsFull:         next.Status == models.StatusFull,
		Status:         next.Status,
		Simulated:      true,
	}, nil
}
