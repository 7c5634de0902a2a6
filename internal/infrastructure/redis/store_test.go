package redis

import (
	"context"
	"os"
	"testing"

	"github.com/Zhima-Mochi/streetsmart/internal/domain/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*Store, *redis.Client, string) {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available: %v", err)
	}
	prefix := "streetsmart-test:" + uuid.NewString() + ":"
	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := client.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		_ = client.Close()
	})
	return NewStore(client, prefix), client, prefix
}

func TestStore_GetMissing(t *testing.T) {
	s, _, _ := setupStore(t)

	_, ok, err := s.Get(context.Background(), storage.KeyInventory)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_SetUsesPrefixedKey(t *testing.T) {
	s, client, prefix := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, storage.KeyTheme, []byte(`"dark"`)))

	raw, err := client.Get(ctx, prefix+storage.KeyTheme).Result()
	require.NoError(t, err)
	assert.Equal(t, `"dark"`, raw)

	value, ok, err := s.Get(ctx, storage.KeyTheme)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `"dark"`, string(value))
}

func TestOpen_RequiresAddress(t *testing.T) {
	_, err := Open(context.Background(), "", "")
	require.Error(t, err)
}
