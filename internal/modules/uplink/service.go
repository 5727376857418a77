// README: Uplink service; drains the telemetry queue and retries failed sends.
package uplink

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"roadpulse/internal/modules/telemetry"
)

// Sender transmits one record to the remote backend. Latency and failure odds
// are the backend's concern; the worker only sees the error.
type Sender interface {
	Send(ctx context.Context, rec telemetry.Record) error
}

// Service drains the queue and pushes records through the sender. A failed
// record goes back to the end of the queue unchanged, with no retry cap, so
// delivery is at-least-once while capacity holds. Nothing in this loop is
// allowed to take the process down.
type Service struct {
	queue  *telemetry.Queue
	sender Sender

	sent         uint64
	failed       uint64
	retryDropped uint64
}

func NewService(q *telemetry.Queue, sender Sender) *Service {
	return &Service{queue: q, sender: sender}
}

// RunSender loops until ctx is cancelled, sleeping the backoff when the
// queue is empty. The send itself runs outside the queue lock.
func (s *Service) RunSender(ctx context.Context, backoff time.Duration) {
	log.Printf("[uplink] started (backoff=%s)", backoff)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[uplink] stopped")
			return
		default:
		}

		if !s.drainOnce(ctx) {
			select {
			case <-ctx.Done():
			case <-time.After(backoff):
			}
		}
	}
}

// drainOnce sends at most one record. Returns false when the queue was
// empty, signalling the caller to back off.
func (s *Service) drainOnce(ctx context.Context) bool {
	rec, ok := s.queue.Dequeue()
	if !ok {
		return false
	}

	if err := s.sender.Send(ctx, rec); err != nil {
		atomic.AddUint64(&s.failed, 1)
		log.Printf("[uplink] send failed, requeueing: %v", err)
		if !s.queue.Enqueue(rec) {
			// Queue filled up while we were sending; the retry is lost.
			atomic.AddUint64(&s.retryDropped, 1)
			log.Printf("[uplink] warning: queue full, retry dropped")
		}
		return true
	}

	atomic.AddUint64(&s.sent, 1)
	log.Printf("[uplink] sent: battery=%.1f%% speed=%.1fkm/h temp=%.1f°C dist=%.2fkm",
		rec.Sample.BatteryPct, rec.Sample.SpeedKmh, rec.Sample.TempC, rec.DistanceKm)
	return true
}

// Stats are cumulative counters, safe to read concurrently. RetryDropped is
// kept separate from Failed so lost retries are visible as data loss rather
// than blending into transient failures.
type Stats struct {
	Sent         uint64 `json:"sent"`
	Failed       uint64 `json:"failed"`
	RetryDropped uint64 `json:"retry_dropped"`
}

func (s *Service) Stats() Stats {
	return Stats{
		Sent:         atomic.LoadUint64(&s.sent),
		Failed:       atomic.LoadUint64(&s.failed),
		RetryDropped: atomic.LoadUint64(&s.retryDropped),
	}
}
