package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"smokebin/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// Request DTO for hardware event ingestion.
type eventRequest struct {
	DeviceID  string         `json:"device_id" binding:"required"`
	EventType string         `json:"event_type" binding:"required"` // drop | full | maintenance | online | offline | reset
	Timestamp string         `json:"timestamp,omitempty"`           // RFC3339; defaults to ingestion time
	Data      map[string]any `json:"data,omitempty"`
}

// @Summary      Ingest a hardware event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        body  body  eventRequest  true  "Event payload"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/events [post]
func (h *Handler) createEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}

	var ts time.Time
	if req.Timestamp != "" {
		var err error
		if ts, err = parseQueryTime(req.Timestamp); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timestamp: " + err.Error()})
			return
		}
	}

	event, err := h.services.Ingest.Ingest(c.Request.Context(), service.IngestParams{
		DeviceID:  req.DeviceID,
		EventType: req.EventType,
		Timestamp: ts,
		Data:      req.Data,
	})
	if err != nil {
		h.respondError(c, "event_ingest_failed", err, "device_id", req.DeviceID, "event_type", req.EventType)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// @Summary      List device events
// @Description  Filter by time range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). A date-only 'to' is treated as end-of-day inclusive.
// @Tags         events
// @Produce      json
// @Param        device_id  path   string  true   "Device ID"
// @Param        from       query  string  false  "Start of range"  example(2025-08-01)
// @Param        to         query  string  false  "End of range"    example(2025-08-31)
// @Success      200  {object}  map[string]interface{}  "count, events"
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/devices/{device_id}/events [get]
func (h *Handler) getDeviceEvents(c *gin.Context) {
	var (
		from time.Time
		to   time.Time
		err  error
	)
	if qs := c.Query("from"); qs != "" {
		if from, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		if to, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		// If the user didn't include a time component, treat "to" as the end of that day.
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}

	events, err := h.services.EventLog.Events(c.Request.Context(), c.Param("device_id"), service.LogFilter{
		From: from,
		To:   to,
	})
	if err != nil {
		h.respondError(c, "events_list_failed", err, "device_id", c.Param("device_id"), "from", from, "to", to)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// @Summary      Event stats
// @Description  Per-kind totals over a device's whole event log
// @Tags         events
// @Produce      json
// @Param        device_id  path  string  true  "Device ID"
// @Success      200  {object}  service.EventStats
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/devices/{device_id}/event-stats [get]
func (h *Handler) getEventStats(c *gin.Context) {
	stats, err := h.services.EventLog.Stats(c.Request.Context(), c.Param("device_id"))
	if err != nil {
		h.respondError(c, "event_stats_failed", err, "device_id", c.Param("device_id"))
		return
	}
	c.JSON(http.StatusOK, stats)
}

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

func parseQueryTime(s string) (time.Time, error) {
	// Try multiple accepted formats, normalizing to UTC.
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
