//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sunflower/internal/platform/config"
	"sunflower/internal/platform/redis"
	"sunflower/pkg/testutil/containers"
)

func TestNew(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()
	rc := containers.NewRedisContainer(t)

	client, err := redis.New(ctx, config.RedisConfig{
		URL:          rc.Addr,
		PoolSize:     2,
		DialTimeout:  time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	require.NoError(t, err)
	defer client.Close()
	require.NoError(t, client.Health(ctx))

	disabled, err := redis.New(ctx, config.RedisConfig{})
	require.NoError(t, err)
	require.Nil(t, disabled)

	_, err = redis.New(ctx, config.RedisConfig{URL: "not a url"})
	require.Error(t, err)
}
