package service

import (
	"context"
	"testing"
	"time"

	"tavern_bot/internal/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseTracker(t *testing.T) {
	c := cache.NewMemoryCache(time.Minute)
	defer c.Close()
	tracker := NewReleaseTracker(c)
	ctx := context.Background()

	// first boot only remembers the version
	_, changed, err := tracker.Observe(ctx, "1.0.0")
	require.NoError(t, err)
	assert.False(t, changed)

	_, changed, err = tracker.Observe(ctx, "1.0.0")
	require.NoError(t, err)
	assert.False(t, changed)

	prev, changed, err := tracker.Observe(ctx, "1.1.0")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "1.0.0", prev)

	_, changed, err = tracker.Observe(ctx, "1.1.0")
	require.NoError(t, err)
	assert.False(t, changed)
}
