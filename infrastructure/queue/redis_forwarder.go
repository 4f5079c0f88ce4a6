// Package queue contains optional outbound transports for dispatched events.
package queue

import (
	"context"
	"fmt"

	"podmarket/domain/shared"

	"github.com/redis/go-redis/v9"
)

// RedisStreamForwarder mirrors dispatched envelopes onto a Redis stream so
// external consumers (search indexers, analytics) can tail the event flow
// without a database connection. Purely additive: in-process handlers never
// read from the stream.
type RedisStreamForwarder struct {
	client *redis.Client
	stream string
}

func NewRedisStreamForwarder(client *redis.Client, stream string) (*RedisStreamForwarder, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if stream == "" {
		return nil, fmt.Errorf("stream name is required")
	}
	return &RedisStreamForwarder{client: client, stream: stream}, nil
}

func (f *RedisStreamForwarder) Forward(ctx context.Context, env shared.EventEnvelope) error {
	return f.client.XAdd(ctx, &redis.XAddArgs{
		Stream: f.stream,
		Values: map[string]interface{}{
			"event_id":     env.EventID,
			"name":         env.Name,
			"aggregate_id": env.AggregateID,
			"occurred_at":  env.OccurredAt.UnixMilli(),
			"payload":      string(env.Payload),
		},
	}).Err()
}

func (f *RedisStreamForwarder) Close() error {
	return f.client.Close()
}
