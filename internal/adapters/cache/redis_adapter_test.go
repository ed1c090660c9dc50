package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/providers"
)

func TestRedisAdapter_UnreachableServerIsNotAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	a := newRedisAdapter(client, "session:")

	_, err := a.Get(context.Background(), "abc")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, providers.ErrCacheMiss)

	assert.Error(t, a.Set(context.Background(), "abc", []byte("x"), 10*time.Second))
}
