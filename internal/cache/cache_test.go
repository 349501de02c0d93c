package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runContract(t *testing.T, c Cache, advance func(time.Duration)) {
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	ok, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)

	calls := 0
	fill := func() ([]byte, error) { calls++; return []byte("computed"), nil }
	v, err = c.GetOrSet(ctx, "lazy", time.Minute, fill)
	require.NoError(t, err)
	assert.Equal(t, []byte("computed"), v)
	_, err = c.GetOrSet(ctx, "lazy", time.Minute, fill)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	advance(2 * time.Minute)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "forever", []byte("x"), 0))
	advance(24 * time.Hour)
	ok, err = c.Exists(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Delete(ctx, "forever"))
	ok, err = c.Exists(ctx, "forever")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(0)
	defer c.Close()

	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	runContract(t, c, func(d time.Duration) { now = now.Add(d) })
}

func TestRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisCache(client, "tavern")
	runContract(t, c, mr.FastForward)

	require.NoError(t, c.Set(context.Background(), "voice:1", []byte("1"), time.Minute))
	assert.True(t, mr.Exists("tavern:voice:1"))
}
