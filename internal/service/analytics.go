package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smokebin/internal/models"
	"smokebin/internal/repository"
)

// Symbolic reporting periods.
const (
	PeriodToday = "today"
	Period24h   = "24h"
	Period7d    = "7d"
	Period30d   = "30d"
)

// AnalyticsService derives usage views and rollups from the event log. All
// aggregation is recomputed from raw events on every call; no bucket is
// persisted as ground truth.
type AnalyticsService struct {
	devices repository.DeviceRepo
	events  repository.EventRepo
	rollups *RollupService
}

func NewAnalyticsService(devices repository.DeviceRepo, events repository.EventRepo, rollups *RollupService) *AnalyticsService {
	return &AnalyticsService{devices: devices, events: events, rollups: rollups}
}

// UsageReport is the 30-minute usage log for one device and period.
type UsageReport struct {
	DeviceID string                  `json:"device_id"`
	Period   string                  `json:"period"`
	Logs     []models.UsageLogBucket `json:"logs"`
	Summary  UsageSummary            `json:"summary"`
}

type UsageSummary struct {
	TotalDrops   int     `json:"total_drops"`
	FullEvents   int     `json:"full_events"`
	DailyAverage float64 `json:"daily_average"`
}

// PatternReport is the fixed 3-hour slot view for one device and period.
type PatternReport struct {
	DeviceID     string                `json:"device_id"`
	Period       string                `json:"period"`
	TimePattern  []models.TimeSlotStat `json:"time_pattern"`
	PeakTimeSlot int                   `json:"peak_time_slot"`
	PeakLabel    string                `json:"peak_time_label"`
	TotalDrops   int                   `json:"total_drops"`
}

// WeeklyUsage compares this week's drops with the previous week's.
type WeeklyUsage struct {
	DeviceID          string  `json:"device_id"`
	CurrentWeekDrops  int     `json:"current_week_drops"`
	PreviousWeekDrops int     `json:"previous_week_drops"`
	GrowthRate        float64 `json:"growth_rate"`
	Trend             string  `json:"trend"` // increasing | decreasing | stable
}

// RollupReport bundles the headline metrics for one device and period.
type RollupReport struct {
	DeviceID     string                  `json:"device_id"`
	Period       string                  `json:"period"`
	TodayDrops   int                     `json:"today_drops"`
	FullHistory  []models.Event          `json:"full_history"`
	PeakSlot     *models.UsageLogBucket  `json:"peak_slot,omitempty"`
	DailyAverage float64                 `json:"daily_average"`
	GrowthRate   float64                 `json:"growth_rate"`
}

// DashboardOverview is the fleet-wide landing page payload.
type DashboardOverview struct {
	TimePattern []models.TimeSlotStat `json:"time_pattern"`
	Summary     OverviewSummary       `json:"summary"`
}

type OverviewSummary struct {
	TotalDrops      int     `json:"total_drops"`
	TotalDevices    int     `json:"total_devices"`
	ActiveDevices   int     `json:"active_devices"`
	FullDevices     int     `json:"full_devices"`
	OfflineDevices  int     `json:"offline_devices"`
	UtilizationRate float64 `json:"device_utilization_rate"`
}

// periodRange resolves a symbolic period against ref. Unknown symbols fall
// back to today, matching how dashboards call these endpoints.
func periodRange(period string, ref time.Time) (from, to time.Time, days int) {
	ref = ref.UTC()
	switch strings.ToLower(strings.TrimSpace(period)) {
	case Period24h:
		return ref.Add(-24 * time.Hour), ref, 1
	case Period7d:
		return ref.AddDate(0, 0, -7), ref, 7
	case Period30d:
		return ref.AddDate(0, 0, -30), ref, 30
	default: // today
		start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
		return start, ref, 1
	}
}

// rangeEvents pulls a device's raw events for the period.
func (s *AnalyticsService) rangeEvents(ctx context.Context, deviceID, period string) ([]models.Event, int, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, 0, fmt.Errorf("%w: device_id", ErrMissingField)
	}
	from, to, days := periodRange(period, s.rollups.now())
	events, err := s.events.List(ctx, deviceID, from, to)
	if err != nil {
		return nil, 0, storeErr(err)
	}
	return events, days, nil
}

func (s *AnalyticsService) UsageLogs(ctx context.Context, deviceID, period string) (UsageReport, error) {
	events, days, err := s.rangeEvents(ctx, deviceID, period)
	if err != nil {
		return UsageReport{}, err
	}

	logs := Bucketize(events, UsageBucketMinutes)
	var drops, fulls int
	for _, b := range logs {
		drops += b.DropCount
		fulls += b.FullEvents
	}
	return UsageReport{
		DeviceID: deviceID,
		Period:   period,
		Logs:     logs,
		Summary: UsageSummary{
			TotalDrops:   drops,
			FullEvents:   fulls,
			DailyAverage: DailyAverage(drops, days),
		},
	}, nil
}

func (s *AnalyticsService) UsagePattern(ctx context.Context, deviceID, period string) (PatternReport, error) {
	events, _, err := s.rangeEvents(ctx, deviceID, period)
	if err != nil {
		return PatternReport{}, err
	}

	pattern := TimeSlotPattern(Bucketize(events, PatternBucketMinutes))
	peak := PeakTimeSlot(pattern)

	total := 0
	for _, st := range pattern {
		total += st.DropCount
	}
	return PatternReport{
		DeviceID:     deviceID,
		Period:       period,
		TimePattern:  pattern,
		PeakTimeSlot: peak.TimeSlot,
		PeakLabel:    peak.Label,
		TotalDrops:   total,
	}, nil
}

// weeklyDropCounts returns (current week, previous week) drop totals.
func (s *AnalyticsService) weeklyDropCounts(ctx context.Context, deviceID string) (int, int, error) {
	now := s.rollups.now().UTC()
	weekAgo := now.AddDate(0, 0, -7)

	current, err := s.events.Count(ctx, deviceID, models.EventDrop, weekAgo, now)
	if err != nil {
		return 0, 0, storeErr(err)
	}
	previous, err := s.events.Count(ctx, deviceID, models.EventDrop, now.AddDate(0, 0, -14), weekAgo.Add(-time.Second))
	if err != nil {
		return 0, 0, storeErr(err)
	}
	return current, previous, nil
}

func (s *AnalyticsService) WeeklyUsage(ctx context.Context, deviceID string) (WeeklyUsage, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return WeeklyUsage{}, fmt.Errorf("%w: device_id", ErrMissingField)
	}
	current, previous, err := s.weeklyDropCounts(ctx, deviceID)
	if err != nil {
		return WeeklyUsage{}, err
	}

	rate := WeeklyGrowthRate(current, previous)
	trend := "stable"
	switch {
	case rate > 0:
		trend = "increasing"
	case rate < 0:
		trend = "decreasing"
	}
	return WeeklyUsage{
		DeviceID:          deviceID,
		CurrentWeekDrops:  current,
		PreviousWeekDrops: previous,
		GrowthRate:        rate,
		Trend:             trend,
	}, nil
}

func (s *AnalyticsService) DailyAverage(ctx context.Context, deviceID, period string) (float64, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return 0, fmt.Errorf("%w: device_id", ErrMissingField)
	}
	from, to, days := periodRange(period, s.rollups.now())
	total, err := s.events.Count(ctx, deviceID, models.EventDrop, from, to)
	if err != nil {
		return 0, storeErr(err)
	}
	return DailyAverage(total, days), nil
}

func (s *AnalyticsService) Rollup(ctx context.Context, deviceID, period string) (RollupReport, error) {
	events, days, err := s.rangeEvents(ctx, deviceID, period)
	if err != nil {
		return RollupReport{}, err
	}

	todayDrops, err := s.rollups.TodayDropCount(ctx, deviceID)
	if err != nil {
		return RollupReport{}, err
	}
	fullHistory, err := s.rollups.FullHistory(ctx, deviceID, 0)
	if err != nil {
		return RollupReport{}, err
	}
	current, previous, err := s.weeklyDropCounts(ctx, deviceID)
	if err != nil {
		return RollupReport{}, err
	}

	buckets := Bucketize(events, PatternBucketMinutes)
	totalDrops := 0
	for _, b := range buckets {
		totalDrops += b.DropCount
	}

	report := RollupReport{
		DeviceID:     deviceID,
		Period:       period,
		TodayDrops:   todayDrops,
		FullHistory:  fullHistory,
		DailyAverage: DailyAverage(totalDrops, days),
		GrowthRate:   WeeklyGrowthRate(current, previous),
	}
	if peak, ok := PeakSlot(buckets); ok {
		report.PeakSlot = &peak
	}
	return report, nil
}

// Overview aggregates the whole fleet for the dashboard landing page.
func (s *AnalyticsService) Overview(ctx context.Context) (DashboardOverview, error) {
	devices, err := s.devices.List(ctx)
	if err != nil {
		return DashboardOverview{}, storeErr(err)
	}

	from, to, _ := periodRange(Period7d, s.rollups.now())

	all := make([]models.Event, 0, 256)
	summary := OverviewSummary{TotalDevices: len(devices)}
	for _, dev := range devices {
		switch dev.Status {
		case models.StatusActive:
			summary.ActiveDevices++
		case models.StatusFull:
			summary.FullDevices++
		case models.StatusOffline:
			summary.OfflineDevices++
		}
		events, err := s.events.List(ctx, dev.DeviceID, from, to)
		if err != nil {
			return DashboardOverview{}, storeErr(err)
		}
		all = append(all, events...)
	}

	pattern := TimeSlotPattern(Bucketize(all, PatternBucketMinutes))
	for _, st := range pattern {
		summary.TotalDrops += st.DropCount
	}
	if summary.TotalDevices > 0 {
		summary.UtilizationRate = models.Round1(float64(summary.ActiveDevices) * 100.0 / float64(summary.TotalDevices))
	}

	return DashboardOverview{TimePattern: pattern, Summary: summary}, nil
}
