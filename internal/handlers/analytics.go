package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Usage logs
// @Description  30-minute usage buckets for the period (today, 24h, 7d, 30d)
// @Tags         analytics
// @Produce      json
// @Param        device_id  path   string  true   "Device ID"
// @Param        period     query  string  false  "Period"  Enums(today,24h,7d,30d)  default(today)
// @Success      200  {object}  service.UsageReport
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/devices/{device_id}/usage-logs [get]
func (h *Handler) getUsageLogs(c *gin.Context) {
	report, err := h.services.Analytics.UsageLogs(c.Request.Context(), c.Param("device_id"), c.DefaultQuery("period", "today"))
	if err != nil {
		h.respondError(c, "usage_logs_failed", err, "device_id", c.Param("device_id"))
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary      Usage pattern
// @Description  Fixed 3-hour slot pattern (always eight slots) with peak slot
// @Tags         analytics
// @Produce      json
// @Param        device_id  path   string  true   "Device ID"
// @Param        period     query  string  false  "Period"  Enums(today,24h,7d,30d)  default(7d)
// @Success      200  {object}  service.PatternReport
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/devices/{device_id}/usage-pattern [get]
func (h *Handler) getUsagePattern(c *gin.Context) {
	report, err := h.services.Analytics.UsagePattern(c.Request.Context(), c.Param("device_id"), c.DefaultQuery("period", "7d"))
	if err != nil {
		h.respondError(c, "usage_pattern_failed", err, "device_id", c.Param("device_id"))
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary      Weekly usage
// @Description  Week-over-week drop totals and growth rate
// @Tags         analytics
// @Produce      json
// @Param        device_id  path  string  true  "Device ID"
// @Success      200  {object}  service.WeeklyUsage
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/devices/{device_id}/weekly-usage [get]
func (h *Handler) getWeeklyUsage(c *gin.Context) {
	usage, err := h.services.Analytics.WeeklyUsage(c.Request.Context(), c.Param("device_id"))
	if err != nil {
		h.respondError(c, "weekly_usage_failed", err, "device_id", c.Param("device_id"))
		return
	}
	c.JSON(http.StatusOK, usage)
}

// @Summary      Daily average
// @Tags         analytics
// @Produce      json
// @Param        device_id  path   string  true   "Device ID"
// @Param        period     query  string  false  "Period"  Enums(today,24h,7d,30d)  default(7d)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/devices/{device_id}/daily-average [get]
func (h *Handler) getDailyAverage(c *gin.Context) {
	period := c.DefaultQuery("period", "7d")
	avg, err := h.services.Analytics.DailyAverage(c.Request.Context(), c.Param("device_id"), period)
	if err != nil {
		h.respondError(c, "daily_average_failed", err, "device_id", c.Param("device_id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"device_id":     c.Param("device_id"),
		"period":        period,
		"daily_average": avg,
	})
}

// @Summary      Rollup metrics
// @Description  Today's drops, full history, peak slot, daily average and growth rate in one payload
// @Tags         analytics
// @Produce      json
// @Param        device_id  path   string  true   "Device ID"
// @Param        period     query  string  false  "Period"  Enums(today,24h,7d,30d)  default(7d)
// @Success      200  {object}  service.RollupReport
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/devices/{device_id}/rollup [get]
func (h *Handler) getRollup(c *gin.Context) {
	report, err := h.services.Analytics.Rollup(c.Request.Context(), c.Param("device_id"), c.DefaultQuery("period", "7d"))
	if err != nil {
		h.respondError(c, "rollup_failed", err, "device_id", c.Param("device_id"))
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary      Dashboard overview
// @Description  Fleet-wide status counts, utilization and the 3-hour time pattern
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  service.DashboardOverview
// @Failure      503  {object}  map[string]string
// @Router       /api/v1/dashboard/overview [get]
func (h *Handler) getOverview(c *gin.Context) {
	overview, err := h.services.Analytics.Overview(c.Request.Context())
	if err != nil {
		h.respondError(c, "overview_failed", err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
