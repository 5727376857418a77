// README: Sensor sample value type shared by the sampler and telemetry modules.
package sensor

// Sample is one reading from the vehicle's sensor bank. Immutable once
// produced; always passed by value.
type Sample struct {
	BatteryPct float64 `json:"battery_pct"`
	SpeedKmh   float64 `json:"speed_kmh"`
	TempC      float64 `json:"temp_c"`
}
