package service

import "smokebin/internal/models"

// ApplyEvent derives the next device snapshot from a single event. It is a
// pure function: the input device is copied, never mutated.
//
// Unrecognized kinds are a deliberate no-op so that replaying a log that
// contains retired kinds never fails; ingestion is where strict validation
// happens.
func ApplyEvent(d models.Device, e models.Event) models.Device {
	switch e.EventType {
	case models.EventDrop:
		if d.CurrentLevel < d.Capacity {
			d.CurrentLevel++
		}
		if d.CurrentLevel >= d.Capacity {
			d.Status = models.StatusFull
		}
	case models.EventFull:
		d.CurrentLevel = d.Capacity
		d.Status = models.StatusFull
	case models.EventMaintenance:
		d.Status = models.StatusMaintenance
	case models.EventOffline:
		d.Status = models.StatusOffline
	case models.EventOnline:
		d.Status = models.StatusActive
	case models.EventReset:
		d.CurrentLevel = 0
		d.Status = models.StatusActive
	default:
		return d
	}
	if !e.Timestamp.IsZero() {
		d.UpdatedAt = e.Timestamp.UTC()
	}
	d.FillPercentage = d.FillPct()
	return d
}
