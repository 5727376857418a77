// README: Decision service; evaluates transmission rules over state snapshots.
package telemetry

import (
	"context"
	"log"
	"math"
	"sync/atomic"
	"time"

	"roadpulse/internal/config"
	"roadpulse/internal/modules/vehicle"
)

// StateReader is the slice of the vehicle service the decider depends on.
type StateReader interface {
	Snapshot() vehicle.State
}

// Decider reads vehicle state at a low rate and queues a record whenever a
// transmission rule fires. Bookkeeping (last sent time, last sent battery)
// is local to the decider; rules are OR'd into at most one record per tick.
type Decider struct {
	vehicle StateReader
	queue   *Queue
	cfg     config.RulesConfig

	lastSentMs      int64
	lastSentBattery float64

	droppedFull uint64
	queued      uint64
}

func NewDecider(v StateReader, q *Queue, cfg config.RulesConfig, now time.Time) *Decider {
	return &Decider{
		vehicle:         v,
		queue:           q,
		cfg:             cfg,
		lastSentMs:      now.UnixMilli(),
		lastSentBattery: 100.0,
	}
}

// Evaluate applies the three trigger rules to snap at the given instant.
// Returns the record to transmit and whether any rule fired. Bookkeeping is
// only advanced by the rules that own it, so the critical-temperature rule
// can re-fire on every tick while the condition holds.
func (d *Decider) Evaluate(snap vehicle.State, now time.Time) (Record, bool) {
	nowMs := now.UnixMilli()
	rec := Record{
		Sample:      snap.LastSample,
		DistanceKm:  snap.TotalDistanceKm,
		TopSpeedKmh: snap.TopSpeedKmh,
		TimestampMs: nowMs,
	}

	fired := false

	if !snap.IsMoving && math.Abs(snap.LastSample.BatteryPct-d.lastSentBattery) > d.cfg.IdleBatteryDelta {
		log.Printf("[decider] battery drifted while idle (%.2f%% -> %.2f%%)", d.lastSentBattery, snap.LastSample.BatteryPct)
		fired = true
		d.lastSentBattery = snap.LastSample.BatteryPct
	}

	if snap.IsMoving && nowMs-d.lastSentMs >= d.cfg.PeriodicInterval.Milliseconds() {
		log.Printf("[decider] periodic update while moving")
		fired = true
		d.lastSentMs = nowMs
	}

	if snap.LastSample.TempC > d.cfg.CriticalTempC {
		log.Printf("[decider] critical temperature %.1f°C", snap.LastSample.TempC)
		fired = true
	}

	return rec, fired
}

// RunDecider evaluates rules at a fixed cadence until ctx is cancelled.
// A full queue drops the fresh record; that is reported and counted, never
// retried at this layer.
func (d *Decider) RunDecider(ctx context.Context, interval time.Duration) {
	log.Printf("[decider] started (interval=%s)", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[decider] stopped")
			return
		case <-ticker.C:
			rec, fire := d.Evaluate(d.vehicle.Snapshot(), time.Now())
			if !fire {
				continue
			}
			if d.queue.Enqueue(rec) {
				atomic.AddUint64(&d.queued, 1)
			} else {
				atomic.AddUint64(&d.droppedFull, 1)
				log.Printf("[decider] warning: queue full, record dropped")
			}
		}
	}
}

// DeciderStats are cumulative counters, safe to read concurrently.
type DeciderStats struct {
	Queued      uint64 `json:"queued"`
	DroppedFull uint64 `json:"dropped_full"`
}

func (d *Decider) Stats() DeciderStats {
	return DeciderStats{
		Queued:      atomic.LoadUint64(&d.queued),
		DroppedFull: atomic.LoadUint64(&d.droppedFull),
	}
}
