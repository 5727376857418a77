package vehicle

import (
	"context"
	"math"
	"testing"
	"time"

	"roadpulse/internal/modules/sensor"
)

func TestApplySampleIntegratesDistance(t *testing.T) {
	svc := NewService(0.5)

	// 1000 ticks of 10ms at 60 km/h is 10s of travel: 60 * 10/3600 km.
	for i := 0; i < 1000; i++ {
		svc.ApplySample(sensor.Sample{BatteryPct: 90, SpeedKmh: 60, TempC: 30}, 10*time.Millisecond)
	}

	snap := svc.Snapshot()
	want := 60.0 * 10.0 / 3600.0
	if math.Abs(snap.TotalDistanceKm-want) > 1e-6 {
		t.Fatalf("distance = %v, want %v", snap.TotalDistanceKm, want)
	}
	if snap.TopSpeedKmh != 60 {
		t.Fatalf("top speed = %v, want 60", snap.TopSpeedKmh)
	}
	if !snap.IsMoving {
		t.Fatalf("expected moving at 60 km/h")
	}
}

func TestStateMonotonicity(t *testing.T) {
	svc := NewService(0.5)
	speeds := []float64{10, 40, 5, 0, 80, 20, 0}

	var prevDist, prevTop float64
	for _, sp := range speeds {
		svc.ApplySample(sensor.Sample{SpeedKmh: sp}, 10*time.Millisecond)
		snap := svc.Snapshot()
		if snap.TotalDistanceKm < prevDist {
			t.Fatalf("distance decreased: %v -> %v", prevDist, snap.TotalDistanceKm)
		}
		if snap.TopSpeedKmh < prevTop {
			t.Fatalf("top speed decreased: %v -> %v", prevTop, snap.TopSpeedKmh)
		}
		prevDist, prevTop = snap.TotalDistanceKm, snap.TopSpeedKmh
	}
	if prevTop != 80 {
		t.Fatalf("top speed = %v, want 80", prevTop)
	}
}

func TestIsMovingThreshold(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		want  bool
	}{
		{"stopped", 0, false},
		{"at threshold", 0.5, false},
		{"just above threshold", 0.51, true},
		{"cruising", 42, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(0.5)
			svc.ApplySample(sensor.Sample{SpeedKmh: tt.speed}, 10*time.Millisecond)
			if got := svc.Snapshot().IsMoving; got != tt.want {
				t.Errorf("IsMoving = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestSnapshotConsistencyUnderRace hammers ApplySample from one goroutine
// while another takes snapshots, checking every snapshot is internally
// consistent (run with -race).
func TestSnapshotConsistencyUnderRace(t *testing.T) {
	svc := NewService(0.5)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5000; i++ {
			// Alternate between a clearly-moving and a clearly-idle sample
			// so a torn snapshot would flip IsMoving against LastSample.
			sp := 0.0
			if i%2 == 0 {
				sp = 60.0
			}
			svc.ApplySample(sensor.Sample{BatteryPct: float64(i), SpeedKmh: sp, TempC: 25}, 10*time.Millisecond)
		}
	}()

	var prevDist float64
	for {
		select {
		case <-done:
			return
		default:
		}
		snap := svc.Snapshot()
		if snap.IsMoving != (snap.LastSample.SpeedKmh > 0.5) {
			t.Fatalf("torn snapshot: IsMoving=%v but speed=%v", snap.IsMoving, snap.LastSample.SpeedKmh)
		}
		if snap.TopSpeedKmh < snap.LastSample.SpeedKmh {
			t.Fatalf("torn snapshot: top speed %v below last speed %v", snap.TopSpeedKmh, snap.LastSample.SpeedKmh)
		}
		if snap.TotalDistanceKm < prevDist {
			t.Fatalf("distance went backwards: %v -> %v", prevDist, snap.TotalDistanceKm)
		}
		prevDist = snap.TotalDistanceKm
	}
}

func TestRunSamplerStopsOnCancel(t *testing.T) {
	svc := NewService(0.5)
	src := sensor.FixedSource{Value: sensor.Sample{SpeedKmh: 30, BatteryPct: 50, TempC: 25}}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		svc.RunSampler(ctx, src, time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sampler did not stop after cancellation")
	}

	if svc.Snapshot().TotalDistanceKm == 0 {
		t.Fatal("sampler never applied a sample")
	}
}
