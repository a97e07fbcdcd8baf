package models

import "time"

// UsageLogBucket is a fixed-width aggregation period for one device.
// PeriodEnd is inclusive: start + width - 1s.
type UsageLogBucket struct {
	DeviceID    string    `json:"device_id"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	DropCount   int       `json:"drop_count"`
	FullEvents  int       `json:"full_events"`
}

// TimeSlotStat is one entry of the fixed 3-hour pattern axis
// (slots 0, 3, 6, 9, 12, 15, 18, 21 — always all eight).
type TimeSlotStat struct {
	TimeSlot   int    `json:"time_slot"`
	Label      string `json:"label"` // e.g. "12:00-15:00"
	DropCount  int    `json:"drop_count"`
	FullEvents int    `json:"full_events"`
}
