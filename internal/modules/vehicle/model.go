// README: Aggregate vehicle state snapshot type.
package vehicle

import "roadpulse/internal/modules/sensor"

// State is the aggregate the sampler maintains and the decision layer reads.
// All four fields are updated as one unit under the service mutex; a State
// value returned by Snapshot is a self-consistent copy.
type State struct {
	TotalDistanceKm float64       `json:"total_distance_km"`
	TopSpeedKmh     float64       `json:"top_speed_kmh"`
	IsMoving        bool          `json:"is_moving"`
	LastSample      sensor.Sample `json:"last_sample"`
}
