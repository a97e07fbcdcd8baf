package handlers

import (
	"context"
	"net/http"

	"smokebin/internal/service"

	"github.com/gin-gonic/gin"
)

// Request DTO for the status update.
type statusRequest struct {
	Status string `json:"status" binding:"required"` // active | maintenance | offline
}

// @Summary      List devices
// @Tags         devices
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, devices"
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/devices [get]
func (h *Handler) getDevices(c *gin.Context) {
	devices, err := h.services.Devices.List(c.Request.Context())
	if err != nil {
		h.respondError(c, "devices_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(devices),
		"devices": devices,
	})
}

// @Summary      Device detail
// @Description  Device snapshot plus today's drops and recent full history
// @Tags         devices
// @Produce      json
// @Param        device_id  path  string  true  "Device ID"  example(SB001)
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/devices/{device_id} [get]
func (h *Handler) getDevice(c *gin.Context) {
	detail, err := h.services.Devices.Get(c.Request.Context(), c.Param("device_id"))
	if err != nil {
		h.respondError(c, "device_get_failed", err, "device_id", c.Param("device_id"))
		return
	}
	c.JSON(http.StatusOK, detail)
}

// @Summary      Update device status
// @Description  Allowed statuses: active, maintenance, offline. full is derived from events only.
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        device_id  path  string         true  "Device ID"
// @Param        body       body  statusRequest  true  "Status payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/devices/{device_id}/status [put]
func (h *Handler) updateDeviceStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	dev, err := h.services.Devices.UpdateStatus(c.Request.Context(), c.Param("device_id"), req.Status)
	if err != nil {
		h.respondError(c, "device_status_update_failed", err, "device_id", c.Param("device_id"), "status", req.Status)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"device_id":  dev.DeviceID,
		"status":     dev.Status,
		"updated_at": dev.UpdatedAt,
	})
}

// @Summary      Device stats
// @Tags         devices
// @Produce      json
// @Param        device_id  path  string  true  "Device ID"
// @Success      200  {object}  service.DeviceStats
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/devices/{device_id}/stats [get]
func (h *Handler) getDeviceStats(c *gin.Context) {
	stats, err := h.services.Devices.Stats(c.Request.Context(), c.Param("device_id"))
	if err != nil {
		h.respondError(c, "device_stats_failed", err, "device_id", c.Param("device_id"))
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary      Simulate a drop
// @Tags         simulation
// @Produce      json
// @Param        device_id  path  string  true  "Device ID"
// @Success      200  {object}  service.SimulationResult
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string  "device offline"
// @Router       /api/v1/devices/{device_id}/simulate/drop [post]
func (h *Handler) simulateDrop(c *gin.Context) {
	h.respondSimulation(c, h.services.Devices.SimulateDrop)
}

// @Summary      Simulate a reset (collection)
// @Tags         simulation
// @Produce      json
// @Param        device_id  path  string  true  "Device ID"
// @Success      200  {object}  service.SimulationResult
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/devices/{device_id}/simulate/reset [post]
func (h *Handler) simulateReset(c *gin.Context) {
	h.respondSimulation(c, h.services.Devices.SimulateReset)
}

// @Summary      Simulate saturation
// @Tags         simulation
// @Produce      json
// @Param        device_id  path  string  true  "Device ID"
// @Success      200  {object}  service.SimulationResult
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/devices/{device_id}/simulate/full [post]
func (h *Handler) simulateFull(c *gin.Context) {
	h.respondSimulation(c, h.services.Devices.SimulateFull)
}

func (h *Handler) respondSimulation(c *gin.Context, sim func(ctx context.Context, deviceID string) (service.SimulationResult, error)) {
	result, err := sim(c.Request.Context(), c.Param("device_id"))
	if err != nil {
		h.respondError(c, "simulation_failed", err, "device_id", c.Param("device_id"))
		return
	}
	c.JSON(http.StatusOK, result)
}
