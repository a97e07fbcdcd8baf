package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"smokebin/internal/models"
)

// recordingIngest counts Ingest calls without touching any store.
type recordingIngest struct {
	mu    sync.Mutex
	calls []IngestParams
}

func (r *recordingIngest) Ingest(ctx context.Context, p IngestParams) (models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, p)
	return models.Event{DeviceID: p.DeviceID, EventType: p.EventType}, nil
}

func (r *recordingIngest) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestSimulator_DropsOnlyIntoActiveBins(t *testing.T) {
	devices := newFakeDeviceRepo(
		models.Device{DeviceID: "SB001", Status: models.StatusActive, Capacity: 100},
		models.Device{DeviceID: "SB002", Status: models.StatusOffline, Capacity: 100},
		models.Device{DeviceID: "SB003", Status: models.StatusFull, Capacity: 100, CurrentLevel: 100},
	)
	ingest := &recordingIngest{}
	svc := NewSimulatorService(devices, ingest)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for ingest.count() < 3 {
		select {
		case <-deadline:
			cancel()
			t.Fatalf("simulator produced %d drops before deadline", ingest.count())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done

	ingest.mu.Lock()
	defer ingest.mu.Unlock()
	for _, call := range ingest.calls {
		if call.DeviceID != "SB001" {
			t.Fatalf("dropped into non-active bin %s", call.DeviceID)
		}
		if call.EventType != models.EventDrop {
			t.Fatalf("unexpected event type %s", call.EventType)
		}
		if sim, _ := call.Data["simulated"].(bool); !sim {
			t.Fatalf("event not marked simulated: %+v", call.Data)
		}
	}
}

func TestSimulator_NoActiveBinsProducesNothing(t *testing.T) {
	devices := newFakeDeviceRepo(
		models.Device{DeviceID: "SB001", Status: models.StatusOffline, Capacity: 100},
	)
	ingest := &recordingIngest{}
	svc := NewSimulatorService(devices, ingest)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	if n := ingest.count(); n != 0 {
		t.Fatalf("expected no drops, got %d", n)
	}
}
