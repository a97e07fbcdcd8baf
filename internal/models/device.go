package models

import (
	"math"
	"time"
)

// Device status values.
const (
	StatusActive      = "active"
	StatusFull        = "full"
	StatusMaintenance = "maintenance"
	StatusOffline     = "offline"
)

// Device is a registered smoke bin.
type Device struct {
	DeviceID       string    `json:"device_id"`
	Location       string    `json:"location"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Status         string    `json:"status"` // active | full | maintenance | offline
	Capacity       int       `json:"capacity"`
	CurrentLevel   int       `json:"current_level"`
	FillPercentage float64   `json:"fill_percentage"` // derived, see FillPct
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// FillPct recomputes the fill percentage from level and capacity, one decimal.
// It is never read back from storage; FillPercentage must always be set from here.
func (d Device) FillPct() float64 {
	if d.Capacity <= 0 {
		return 0
	}
	return Round1(float64(d.CurrentLevel) * 100.0 / float64(d.Capacity))
}

// Round1 rounds half-up to one decimal place. Every percentage and average in
// the system goes through this helper so rounding stays consistent.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// IsValidStatus reports whether s is a recognized device status.
func IsValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusFull, StatusMaintenance, StatusOffline:
		return true
	}
	return false
}
