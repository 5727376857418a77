// README: Telemetry record type; the unit of transmission through the queue.
package telemetry

import "roadpulse/internal/modules/sensor"

// Record is an immutable snapshot taken at decision time. It is copied by
// value into and out of the queue and shares no storage with the vehicle
// state after creation.
type Record struct {
	Sample      sensor.Sample `json:"sample"`
	DistanceKm  float64       `json:"distance_km"`
	TopSpeedKmh float64       `json:"top_speed_kmh"`
	TimestampMs int64         `json:"timestamp_ms"`
}
