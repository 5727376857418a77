// README: Postgres uplink backend; records are inserted into the collector table.
package uplink

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"roadpulse/internal/modules/telemetry"
)

// PostgresSender writes records into the telemetry_uplink table (see
// migrations/0001_init.sql). This is the remote collector side of the
// transport boundary, not local pipeline persistence.
type PostgresSender struct {
	db *pgxpool.Pool
}

func NewPostgresSender(db *pgxpool.Pool) *PostgresSender {
	return &PostgresSender{db: db}
}

func (s *PostgresSender) Send(ctx context.Context, rec telemetry.Record) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO telemetry_uplink (
            battery_pct, speed_kmh, temp_c, distance_km, top_speed_kmh, recorded_at
        ) VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.Sample.BatteryPct,
		rec.Sample.SpeedKmh,
		rec.Sample.TempC,
		rec.DistanceKm,
		rec.TopSpeedKmh,
		time.UnixMilli(rec.TimestampMs),
	)
	if err != nil {
		return fmt.Errorf("insert telemetry: %w", err)
	}
	return nil
}
