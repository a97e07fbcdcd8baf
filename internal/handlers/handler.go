package handlers

import (
	"errors"
	"net/http"

	"smokebin/internal/logger"
	"smokebin/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires the HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)

	// Live fleet snapshot (HTTP upgrade) — same port
	router.GET("/ws", h.wsConnect)

	api := router.Group("/api/v1")
	{
		h.registerDeviceRoutes(api)
		h.registerEventRoutes(api)
		h.registerAnalyticsRoutes(api)
	}

	return router
}

func (h *Handler) registerDeviceRoutes(api *gin.RouterGroup) {
	devices := api.Group("/devices")
	{
		devices.GET("", h.getDevices)
		devices.GET("/:device_id", h.getDevice)
		devices.PUT("/:device_id/status", h.updateDeviceStatus)
		devices.GET("/:device_id/stats", h.getDeviceStats)

		devices.POST("/:device_id/simulate/drop", h.simulateDrop)
		devices.POST("/:device_id/simulate/reset", h.simulateReset)
		devices.POST("/:device_id/simulate/full", h.simulateFull)
	}
}

func (h *Handler) registerEventRoutes(api *gin.RouterGroup) {
	api.POST("/events", h.createEvent)
	api.GET("/devices/:device_id/events", h.getDeviceEvents)
	api.GET("/devices/:device_id/event-stats", h.getEventStats)
}

func (h *Handler) registerAnalyticsRoutes(api *gin.RouterGroup) {
	api.GET("/devices/:device_id/usage-logs", h.getUsageLogs)
	api.GET("/devices/:device_id/usage-pattern", h.getUsagePattern)
	api.GET("/devices/:device_id/weekly-usage", h.getWeeklyUsage)
	api.GET("/devices/:device_id/daily-average", h.getDailyAverage)
	api.GET("/devices/:device_id/rollup", h.getRollup)
	api.GET("/dashboard/overview", h.getOverview)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respondError maps the service error taxonomy to HTTP statuses. Server-side
// failures are logged; client mistakes are not.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrInvalidEventKind),
		errors.Is(err, service.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrDeviceNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrDeviceOffline):
		status = http.StatusConflict
	case errors.Is(err, service.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	}
	if h.log != nil && status >= http.StatusInternalServerError {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
