package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgcache "bloggerum-backend/pkg/cache"
)

var _ pkgcache.Cache = (*RedisCache)(nil)

type cachedUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func setupCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client), mr
}

func TestRedisCache_SetGet(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "user:1", cachedUser{ID: "1", Name: "Ann"}, time.Minute))

	var got cachedUser
	found, err := c.Get(ctx, "user:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Ann", got.Name)

	mr.FastForward(2 * time.Minute)
	found, err = c.Get(ctx, "user:1", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_CorruptPayloadIsMiss(t *testing.T) {
	c, mr := setupCache(t)
	require.NoError(t, mr.Set("user:2", "{not json"))

	var got cachedUser
	found, err := c.Get(context.Background(), "user:2", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.False(t, mr.Exists("user:2"))
}

func TestRedisCache_Delete(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "a", 1, 0))
	require.NoError(t, c.Set(ctx, "b", 2, 0))

	require.NoError(t, c.Delete(ctx, "a", "b"))
	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
	require.NoError(t, c.Delete(ctx))
	require.NoError(t, c.Ping(ctx))
}
