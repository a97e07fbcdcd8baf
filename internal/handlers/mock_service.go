package handlers

import (
	"context"
	"time"

	"smokebin/internal/models"
	"smokebin/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockIngest struct {
	resp models.Event
	err  error

	calls      int
	lastParams service.IngestParams
}

func (m *mockIngest) Ingest(ctx context.Context, p service.IngestParams) (models.Event, error) {
	m.calls++
	m.lastParams = p
	return m.resp, m.err
}

type mockDevices struct {
	listResp []models.Device
	listErr  error

	getResp service.DeviceDetail
	getErr  error

	updateResp models.Device
	updateErr  error
	lastStatus string

	statsResp service.DeviceStats
	statsErr  error

	simResp     service.SimulationResult
	simErr      error
	lastSimKind string
	lastID      string
}

func (m *mockDevices) List(ctx context.Context) ([]models.Device, error) {
	return m.listResp, m.listErr
}
func (m *mockDevices) Get(ctx context.Context, deviceID string) (service.DeviceDetail, error) {
	m.lastID = deviceID
	return m.getResp, m.getErr
}
func (m *mockDevices) UpdateStatus(ctx context.Context, deviceID, status string) (models.Device, error) {
	m.lastID = deviceID
	m.lastStatus = status
	return m.updateResp, m.updateErr
}
func (m *mockDevices) Stats(ctx context.Context, deviceID string) (service.DeviceStats, error) {
	m.lastID = deviceID
	return m.statsResp, m.statsErr
}
func (m *mockDevices) SimulateDrop(ctx context.Context, deviceID string) (service.SimulationResult, error) {
	m.lastID = deviceID
	m.lastSimKind = "drop"
	return m.simResp, m.simErr
}
func (m *mockDevices) SimulateReset(ctx context.Context, deviceID string) (service.SimulationResult, error) {
	m.lastID = deviceID
	m.lastSimKind = "reset"
	return m.simResp, m.simErr
}
func (m *mockDevices) SimulateFull(ctx context.Context, deviceID string) (service.SimulationResult, error) {
	m.lastID = deviceID
	m.lastSimKind = "full"
	return m.simResp, m.simErr
}

type mockEventLog struct {
	eventsResp []models.Event
	eventsErr  error
	statsResp  service.EventStats
	statsErr   error

	lastID     string
	lastFilter service.LogFilter
}

func (m *mockEventLog) Events(ctx context.Context, deviceID string, f service.LogFilter) ([]models.Event, error) {
	m.lastID = deviceID
	m.lastFilter = f
	return m.eventsResp, m.eventsErr
}
func (m *mockEventLog) Stats(ctx context.Context, deviceID string) (service.EventStats, error) {
	m.lastID = deviceID
	return m.statsResp, m.statsErr
}

type mockAnalytics struct {
	usageResp    service.UsageReport
	patternResp  service.PatternReport
	weeklyResp   service.WeeklyUsage
	dailyResp    float64
	rollupResp   service.RollupReport
	overviewResp service.DashboardOverview
	err          error

	lastID     string
	lastPeriod string
}

func (m *mockAnalytics) UsageLogs(ctx context.Context, deviceID, period string) (service.UsageReport, error) {
	m.lastID, m.lastPeriod = deviceID, period
	return m.usageResp, m.err
}
func (m *mockAnalytics) UsagePattern(ctx context.Context, deviceID, period string) (service.PatternReport, error) {
	m.lastID, m.lastPeriod = deviceID, period
	return m.patternResp, m.err
}
func (m *mockAnalytics) WeeklyUsage(ctx context.Context, deviceID string) (service.WeeklyUsage, error) {
	m.lastID = deviceID
	return m.weeklyResp, m.err
}
func (m *mockAnalytics) DailyAverage(ctx context.Context, deviceID, period string) (float64, error) {
	m.lastID, m.lastPeriod = deviceID, period
	return m.dailyResp, m.err
}
func (m *mockAnalytics) Rollup(ctx context.Context, deviceID, period string) (service.RollupReport, error) {
	m.lastID, m.lastPeriod = deviceID, period
	return m.rollupResp, m.err
}
func (m *mockAnalytics) Overview(ctx context.Context) (service.DashboardOverview, error) {
	return m.overviewResp, m.err
}

type mockSimulator struct{}

func (m *mockSimulator) Run(ctx context.Context, tick time.Duration) {}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
