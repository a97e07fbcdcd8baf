package service

import (
	"fmt"
	"sort"
	"time"

	"smokebin/internal/models"
)

// Bucket widths supported by the aggregator.
const (
	UsageBucketMinutes   = 30  // fine-grained usage log
	PatternBucketMinutes = 180 // 3-hour pattern analysis
)

// The fixed 3-hour axis of a day.
var patternSlots = [...]int{0, 3, 6, 9, 12, 15, 18, 21}

// Bucketize groups events into fixed-width periods keyed by
// (device_id, truncated period start). Only drop and full events are
// counted; every other kind is skipped on purpose. The result is ordered by
// period start (then device id), and an empty input yields an empty result,
// never a synthesized zero bucket.
func Bucketize(events []models.Event, widthMinutes int) []models.UsageLogBucket {
	width := time.Duration(widthMinutes) * time.Minute

	type key struct {
		deviceID  string
		startUnix int64
	}
	buckets := make(map[key]*models.UsageLogBucket)

	for _, ev := range events {
		if ev.EventType != models.EventDrop && ev.EventType != models.EventFull {
			continue
		}
		start := ev.Timestamp.UTC().Truncate(width)
		k := key{deviceID: ev.DeviceID, startUnix: start.Unix()}
		b, ok := buckets[k]
		if !ok {
			b = &models.UsageLogBucket{
				DeviceID:    ev.DeviceID,
				PeriodStart: start,
				PeriodEnd:   start.Add(width - time.Second), // inclusive upper bound
			}
			buckets[k] = b
		}
		switch ev.EventType {
		case models.EventDrop:
			b.DropCount++
		case models.EventFull:
			b.FullEvents++
		}
	}

	out := make([]models.UsageLogBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PeriodStart.Equal(out[j].PeriodStart) {
			return out[i].PeriodStart.Before(out[j].PeriodStart)
		}
		return out[i].DeviceID < out[j].DeviceID
	})
	return out
}

// TimeSlotPattern folds buckets onto the fixed eight 3-hour slots of a day.
// The axis is always emitted in full, zero slots included; this is the
// stateless slot-template step layered on top of Bucketize.
func TimeSlotPattern(buckets []models.UsageLogBucket) []models.TimeSlotStat {
	stats := make([]models.TimeSlotStat, len(patternSlots))
	for i, slot := range patternSlots {
		stats[i] = models.TimeSlotStat{
			TimeSlot: slot,
			Label:    fmt.Sprintf("%02d:00-%02d:00", slot, slot+3),
		}
	}
	for _, b := range buckets {
		slot := (b.PeriodStart.UTC().Hour() / 3) * 3
		stats[slot/3].DropCount += b.DropCount
		stats[slot/3].FullEvents += b.FullEvents
	}
	return stats
}

// PeakTimeSlot picks the slot with the most drops; ties resolve to the
// earliest slot. stats is expected in ascending slot order as produced by
// TimeSlotPattern.
func PeakTimeSlot(stats []models.TimeSlotStat) models.TimeSlotStat {
	var peak models.TimeSlotStat
	for i, st := range stats {
		if i == 0 || st.DropCount > peak.DropCount {
			peak = st
		}
	}
	return peak
}
