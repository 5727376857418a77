// README: Sensor sources: seeded random-walk generator plus a fixed source for tests.
package sensor

import "math/rand"

// Source produces sensor samples on demand. Implementations must be
// non-blocking; acquisition from real hardware sits behind this interface.
type Source interface {
	Sample() Sample
}

// WalkSource evolves each channel from its previous value with a bounded
// random walk. Walk state lives in the struct so independent sources can
// coexist and tests can inject a seed.
type WalkSource struct {
	rng     *rand.Rand
	battery float64
	speed   float64
	temp    float64
}

const (
	batteryDecrement = 0.001
	speedStepKmh     = 5.0
	tempStepC        = 2.0
	minSpeedKmh      = 0.0
	maxSpeedKmh      = 80.0
	minTempC         = 20.0
	maxTempC         = 75.0
)

func NewWalkSource(seed int64) *WalkSource {
	return &WalkSource{
		rng:     rand.New(rand.NewSource(seed)),
		battery: 100.0,
		speed:   0.0,
		temp:    25.0,
	}
}

// Sample advances the walk one step and returns the new reading.
// The battery wraps back to 100% when it would go negative; this models a
// depleted pack being swapped, not a charge curve.
func (w *WalkSource) Sample() Sample {
	w.battery -= batteryDecrement
	if w.battery < 0 {
		w.battery = 100.0
	}

	w.speed += (w.rng.Float64() - 0.5) * speedStepKmh
	w.speed = clamp(w.speed, minSpeedKmh, maxSpeedKmh)

	w.temp += (w.rng.Float64() - 0.5) * tempStepC
	w.temp = clamp(w.temp, minTempC, maxTempC)

	return Sample{BatteryPct: w.battery, SpeedKmh: w.speed, TempC: w.temp}
}

// FixedSource returns the same sample on every call. Useful for scenario
// tests that need a constant speed or temperature.
type FixedSource struct {
	Value Sample
}

func (f FixedSource) Sample() Sample { return f.Value }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
