package service

import (
	"context"
	"math/rand"
	"time"

	"smokebin/internal/models"
	"smokebin/internal/repository"
)

// SimulatorService generates demo drop traffic through the real ingest path
// so dashboards have live data to show. It is a demo-data collaborator only:
// it is off unless enabled in config, and it produces nothing analytics
// would treat specially.
type SimulatorService struct {
	devices repository.DeviceRepo
	ingest  Ingest
	rng     *rand.Rand
}

func NewSimulatorService(devices repository.DeviceRepo, ingest Ingest) *SimulatorService {
	return &SimulatorService{
		devices: devices,
		ingest:  ingest,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run ticks at the given interval until ctx is canceled. Each tick drops one
// butt into a random active bin; ticks with no active bin do nothing.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			devices, err := s.devices.List(ctx)
			if err != nil {
				continue
			}
			candidates := devices[:0]
			for _, dev := range devices {
				if dev.Status == models.StatusActive {
					candidates = append(candidates, dev)
				}
			}
			if len(candidates) == 0 {
				continue
			}
			pick := candidates[s.rng.Intn(len(candidates))]
			_, _ = s.ingest.Ingest(ctx, IngestParams{
				DeviceID:  pick.DeviceID,
				EventType: models.EventDrop,
				Timestamp: now.UTC(),
				Data:      map[string]any{"simulated": true},
			})
		}
	}
}
