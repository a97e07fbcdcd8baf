package service

import (
	"context"
	"time"

	"smokebin/internal/models"
	"smokebin/internal/repository"
)

// IngestParams carries one hardware event into the store.
type IngestParams struct {
	DeviceID  string
	EventType string
	Timestamp time.Time // zero means "now" at the store
	Data      map[string]any
}

// LogFilter bounds an event-log query. Zero bounds are unconstrained.
type LogFilter struct {
	From time.Time // inclusive
	To   time.Time // inclusive
}

// Ingest accepts hardware events: validate, append, project device state.
type Ingest interface {
	Ingest(ctx context.Context, p IngestParams) (models.Event, error)
}

// Devices exposes the registry plus the simulation endpoints.
type Devices interface {
	List(ctx context.Context) ([]models.Device, error)
	Get(ctx context.Context, deviceID string) (DeviceDetail, error)
	UpdateStatus(ctx context.Context, deviceID, status string) (models.Device, error)
	Stats(ctx context.Context, deviceID string) (DeviceStats, error)
	SimulateDrop(ctx context.Context, deviceID string) (SimulationResult, error)
	SimulateReset(ctx context.Context, deviceID string) (SimulationResult, error)
	SimulateFull(ctx context.Context, deviceID string) (SimulationResult, error)
}

// EventLog exposes the append-only log with range filtering.
type EventLog interface {
	Events(ctx context.Context, deviceID string, f LogFilter) ([]models.Event, error)
	Stats(ctx context.Context, deviceID string) (EventStats, error)
}

// Analytics derives usage logs, patterns and rollup metrics from the log.
type Analytics interface {
	UsageLogs(ctx context.Context, deviceID, period string) (UsageReport, error)
	UsagePattern(ctx context.Context, deviceID, period string) (PatternReport, error)
	WeeklyUsage(ctx context.Context, deviceID string) (WeeklyUsage, error)
	DailyAverage(ctx context.Context, deviceID, period string) (float64, error)
	Rollup(ctx context.Context, deviceID, period string) (RollupReport, error)
	Overview(ctx context.Context) (DashboardOverview, error)
}

// Simulator runs the background demo-traffic loop.
// Stop via context cancellation in main() for graceful shutdown.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	Ingest
	Devices
	EventLog
	Analytics
	Simulator
}

// NewService wires the repository layer into the concrete services.
func NewService(repos *repository.Repository) *Service {
	ingest := NewIngestService(repos.Devices, repos.Events)
	rollups := NewRollupService(repos.Events, time.Now)
	return &Service{
		Ingest:    ingest,
		Devices:   NewDeviceService(repos.Devices, repos.Events, rollups, ingest),
		EventLog:  NewEventLogService(repos.Events),
		Analytics: NewAnalyticsService(repos.Devices, repos.Events, rollups),
		Simulator: NewSimulatorService(repos.Devices, ingest),
	}
}
