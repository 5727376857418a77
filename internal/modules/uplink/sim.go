// README: Simulated flaky transport for local runs and demos.
package uplink

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"roadpulse/internal/modules/telemetry"
)

var ErrSendFailed = errors.New("uplink: send failed")

// SimSender models an unreliable link: a random delay of 1..10 latency
// units, then a dice roll against the failure percentage. Seeded, so demo
// runs are reproducible.
type SimSender struct {
	mu          sync.Mutex
	rng         *rand.Rand
	latencyUnit time.Duration
	failurePct  int
}

func NewSimSender(seed int64, latencyUnit time.Duration, failurePct int) *SimSender {
	return &SimSender{
		rng:         rand.New(rand.NewSource(seed)),
		latencyUnit: latencyUnit,
		failurePct:  failurePct,
	}
}

func (s *SimSender) Send(ctx context.Context, _ telemetry.Record) error {
	s.mu.Lock()
	delay := time.Duration(1+s.rng.Intn(10)) * s.latencyUnit
	fail := s.rng.Intn(100) < s.failurePct
	s.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
	}

	if fail {
		return ErrSendFailed
	}
	return nil
}
