// README: Redis uplink backend; records land on a list for downstream consumers.
package uplink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"roadpulse/internal/modules/telemetry"
)

// RedisSender pushes JSON-encoded records onto a Redis list. A collector on
// the other side pops from the same key.
type RedisSender struct {
	client *redis.Client
	key    string
}

func NewRedisSender(client *redis.Client, key string) *RedisSender {
	return &RedisSender{client: client, key: key}
}

func (s *RedisSender) Send(ctx context.Context, rec telemetry.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := s.client.RPush(ctx, s.key, payload).Err(); err != nil {
		return fmt.Errorf("rpush %s: %w", s.key, err)
	}
	return nil
}
