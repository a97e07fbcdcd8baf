package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"smokebin/internal/models"
	"smokebin/internal/repository"
)

// IngestService validates and stores hardware events, then projects the
// owning device's state. Append+project for one device never interleaves
// with another in-flight event for the same device; different devices
// proceed concurrently.
type IngestService struct {
	devices repository.DeviceRepo
	events  repository.EventRepo

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewIngestService(devices repository.DeviceRepo, events repository.EventRepo) *IngestService {
	return &IngestService{
		devices: devices,
		events:  events,
		locks:   make(map[string]*sync.Mutex),
	}
}

// lockDevice acquires the per-device mutex and returns its release func.
func (s *IngestService) lockDevice(deviceID string) func() {
	s.mu.Lock()
	l, ok := s.locks[deviceID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[deviceID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Ingest appends one event and applies it to the device snapshot.
// Validation happens before any write; a validation failure leaves both the
// log and the device untouched.
func (s *IngestService) Ingest(ctx context.Context, p IngestParams) (models.Event, error) {
	deviceID := strings.TrimSpace(p.DeviceID)
	kind := strings.ToLower(strings.TrimSpace(p.EventType))

	if deviceID == "" {
		return models.Event{}, fmt.Errorf("%w: device_id", ErrMissingField)
	}
	if kind == "" {
		return models.Event{}, fmt.Errorf("%w: event_type", ErrMissingField)
	}
	if !models.IsValidEventKind(kind) {
		return models.Event{}, fmt.Errorf("%w: %q", ErrInvalidEventKind, kind)
	}

	unlock := s.lockDevice(deviceID)
	defer unlock()

	stored, err := s.events.Append(ctx, models.Event{
		DeviceID:  deviceID,
		EventType: kind,
		Timestamp: p.Timestamp,
		Data:      p.Data,
	})
	if err != nil {
		return models.Event{}, storeErr(err)
	}

	dev, err := s.devices.Get(ctx, deviceID)
	if err != nil {
		return models.Event{}, storeErr(err)
	}
	if dev.DeviceID == "" {
		// Events reference devices weakly: an event for an unregistered
		// device is kept in the log but projects nothing.
		return stored, nil
	}

	if err := s.devices.Save(ctx, ApplyEvent(dev, stored)); err != nil {
		return models.Event{}, storeErr(err)
	}
	return stored, nil
}
