package mirror

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/providers"
)

// CreatedChannel is the pub/sub channel announcing new entries.
const CreatedChannel = "feedback:created"

// RedisStore keeps a JSON copy of each entry under "<prefix><key>" and
// publishes it on CreatedChannel for live dashboards.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ providers.MirrorStore = (*RedisStore)(nil)

// NewRedisStore creates a Redis mirror
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Name identifies the backend
func (s *RedisStore) Name() string {
	return "redis"
}

// Available reports whether a client is configured
func (s *RedisStore) Available() bool {
	return s.client != nil
}

// Put stores the entry and publishes it in one round trip
func (s *RedisStore) Put(ctx context.Context, key string, entry *entities.FeedbackEntry) error {
	if s.client == nil {
		return fmt.Errorf("redis is not initialized")
	}

	payload, err := json.Marshal(Document(entry))
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.prefix+key, payload, 0)
		pipe.Publish(ctx, CreatedChannel, payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to mirror %s to redis: %w", key, err)
	}
	return nil
}
