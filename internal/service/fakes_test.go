package service

import (
	"context"
	"sort"
	"time"

	"smokebin/internal/models"

	"github.com/google/uuid"
)

// ---- Test doubles ----

// fakeDeviceRepo is an in-memory stand-in for repository.DeviceRepo.
type fakeDeviceRepo struct {
	devices map[string]models.Device
	saves   []models.Device

	saveErr error
	getErr  error
	listErr error
}

func newFakeDeviceRepo(devices ...models.Device) *fakeDeviceRepo {
	f := &fakeDeviceRepo{devices: make(map[string]models.Device)}
	for _, d := range devices {
		f.devices[d.DeviceID] = d
	}
	return f
}

func (f *fakeDeviceRepo) Save(ctx context.Context, d models.Device) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves = append(f.saves, d)
	f.devices[d.DeviceID] = d
	return nil
}

func (f *fakeDeviceRepo) Get(ctx context.Context, deviceID string) (models.Device, error) {
	if f.getErr != nil {
		return models.Device{}, f.getErr
	}
	return f.devices[deviceID], nil
}

func (f *fakeDeviceRepo) List(ctx context.Context) ([]models.Device, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Device, 0, len(f.devices))
	for _, d := range f.devices {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeviceID < out[j].DeviceID })
	return out, nil
}

// fakeEventRepo mimics repository.EventRepo semantics: Append fills defaults,
// List is newest first with inclusive bounds, zero bounds unconstrained.
type fakeEventRepo struct {
	events []models.Event

	appendErr error
	listErr   error
	countErr  error
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.Event) (models.Event, error) {
	if f.appendErr != nil {
		return models.Event{}, f.appendErr
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	} else {
		e.Timestamp = e.Timestamp.UTC()
	}
	f.events = append(f.events, e)
	return e, nil
}

func (f *fakeEventRepo) inRange(ev models.Event, deviceID string, from, to time.Time) bool {
	if ev.DeviceID != deviceID {
		return false
	}
	if !from.IsZero() && ev.Timestamp.Before(from) {
		return false
	}
	if !to.IsZero() && ev.Timestamp.After(to) {
		return false
	}
	return true
}

func (f *fakeEventRepo) List(ctx context.Context, deviceID string, from, to time.Time) ([]models.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Event, 0, len(f.events))
	for _, ev := range f.events {
		if f.inRange(ev, deviceID, from, to) {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (f *fakeEventRepo) Count(ctx context.Context, deviceID, kind string, from, to time.Time) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	n := 0
	for _, ev := range f.events {
		if ev.EventType == kind && f.inRange(ev, deviceID, from, to) {
			n++
		}
	}
	return n, nil
}

// ---- Shared helpers ----

func dropAt(deviceID string, ts time.Time) models.Event {
	return models.Event{ID: uuid.NewString(), DeviceID: deviceID, EventType: models.EventDrop, Timestamp: ts}
}

func fullAt(deviceID string, ts time.Time) models.Event {
	return models.Event{ID: uuid.NewString(), DeviceID: deviceID, EventType: models.EventFull, Timestamp: ts}
}
