package service

import (
	"context"
	"fmt"
	"time"

	"smokebin/internal/models"
	"smokebin/internal/repository"
)

const defaultFullHistoryLimit = 10

// RollupService turns the event log into headline metrics. The reference
// clock is injected so "today" is testable; no global now inside.
type RollupService struct {
	events repository.EventRepo
	now    func() time.Time
}

func NewRollupService(events repository.EventRepo, now func() time.Time) *RollupService {
	if now == nil {
		now = time.Now
	}
	return &RollupService{events: events, now: now}
}

// TodayDropCount counts drop events since the start of the current day.
func (s *RollupService) TodayDropCount(ctx context.Context, deviceID string) (int, error) {
	now := s.now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	n, err := s.events.Count(ctx, deviceID, models.EventDrop, start, now)
	if err != nil {
		return 0, storeErr(err)
	}
	return n, nil
}

// FullHistory returns the most recent full events, newest first. A zero
// limit selects the default of 10; a negative limit is rejected.
func (s *RollupService) FullHistory(ctx context.Context, deviceID string, limit int) ([]models.Event, error) {
	if limit == 0 {
		limit = defaultFullHistoryLimit
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidArgument)
	}

	events, err := s.events.List(ctx, deviceID, time.Time{}, time.Time{})
	if err != nil {
		return nil, storeErr(err)
	}

	out := make([]models.Event, 0, limit)
	for _, ev := range events { // already newest first
		if ev.EventType != models.EventFull {
			continue
		}
		out = append(out, ev)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// PeakSlot returns the bucket with the highest drop count. Ties resolve to
// the earliest period start so the result is deterministic regardless of
// input order. ok is false for an empty input.
func PeakSlot(buckets []models.UsageLogBucket) (peak models.UsageLogBucket, ok bool) {
	for _, b := range buckets {
		switch {
		case !ok:
			peak, ok = b, true
		case b.DropCount > peak.DropCount:
			peak = b
		case b.DropCount == peak.DropCount && b.PeriodStart.Before(peak.PeriodStart):
			peak = b
		}
	}
	return peak, ok
}

// WeeklyGrowthRate is the week-over-week change in percent, one decimal.
// A zero previous week is defined as 0 rather than a division by zero.
func WeeklyGrowthRate(current, previous int) float64 {
	if previous <= 0 {
		return 0
	}
	return models.Round1(float64(current-previous) / float64(previous) * 100)
}

// DailyAverage is total drops per day over the window, one decimal.
func DailyAverage(totalDrops, days int) float64 {
	if days <= 0 {
		return 0
	}
	return models.Round1(float64(totalDrops) / float64(days))
}
