package models

import "time"

// Recognized hardware event kinds.
const (
	EventDrop        = "drop"
	EventFull        = "full"
	EventMaintenance = "maintenance"
	EventOnline      = "online"
	EventOffline     = "offline"
	EventReset       = "reset"
)

// Event is a single immutable log entry reported by (or simulated for) a device.
type Event struct {
	ID        string         `json:"id"`
	DeviceID  string         `json:"device_id"`
	EventType string         `json:"event_type"` // drop | full | maintenance | online | offline | reset
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"` // opaque sensor payload
}

// IsValidEventKind reports whether kind belongs to the recognized set.
func IsValidEventKind(kind string) bool {
	switch kind {
	case EventDrop, EventFull, EventMaintenance, EventOnline, EventOffline, EventReset:
		return true
	}
	return false
}
