package cache

import (
	"context"
	"testing"

	"example.com/eventhub/services/events/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledCacheIsTransparent(t *testing.T) {
	c, err := NewRedisCache(config.RedisConfig{Enabled: false})
	require.NoError(t, err)

	ctx := context.Background()

	var out string
	assert.ErrorIs(t, c.Get(ctx, "agenda:event:evt000000001", &out), ErrMiss)
	assert.NoError(t, c.Set(ctx, "agenda:event:evt000000001", "x"))
	assert.NoError(t, c.Delete(ctx, "agenda:event:evt000000001"))
	assert.NoError(t, c.Close())
}

func TestNilCacheIsTransparent(t *testing.T) {
	var c *RedisCache

	ctx := context.Background()

	var out string
	assert.ErrorIs(t, c.Get(ctx, "k", &out), ErrMiss)
	assert.NoError(t, c.Set(ctx, "k", "x"))
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Close())
}

func TestAgendaKey(t *testing.T) {
	assert.Equal(t, "agenda:event:evt000000001", AgendaKey("evt000000001"))
}
