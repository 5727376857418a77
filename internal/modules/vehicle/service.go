// README: Vehicle state service; single-mutex aggregate plus the high-rate sampler loop.
package vehicle

import (
	"context"
	"log"
	"sync"
	"time"

	"roadpulse/internal/modules/sensor"
)

type Service struct {
	mu             sync.Mutex
	state          State
	movingSpeedKmh float64
}

func NewService(movingSpeedKmh float64) *Service {
	return &Service{movingSpeedKmh: movingSpeedKmh}
}

// ApplySample folds one reading into the aggregate. Distance integrates
// speed over the supplied elapsed interval; callers pass the fixed sampler
// tick, not a measured delta, so computed distances stay reproducible.
func (s *Service) ApplySample(smp sensor.Sample, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.LastSample = smp
	s.state.TotalDistanceKm += smp.SpeedKmh * elapsed.Hours()
	if smp.SpeedKmh > s.state.TopSpeedKmh {
		s.state.TopSpeedKmh = smp.SpeedKmh
	}
	s.state.IsMoving = smp.SpeedKmh > s.movingSpeedKmh
}

// Snapshot returns a copy of all four fields taken under the mutex, so a
// reader never observes a half-applied update.
func (s *Service) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RunSampler reads the source at a fixed cadence until ctx is cancelled.
// In-memory updates cannot fail, so there is no retry path here.
func (s *Service) RunSampler(ctx context.Context, src sensor.Source, interval time.Duration) {
	log.Printf("[sampler] started (interval=%s)", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[sampler] stopped")
			return
		case <-ticker.C:
			s.ApplySample(src.Sample(), interval)
		}
	}
}
