package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set and get round-trip", func(t *testing.T) {
		c := NewMemoryCache()

		require.NoError(t, c.Set(ctx, "k", payload{Name: "quiz", Count: 3}, time.Minute))

		var got payload
		require.NoError(t, c.Get(ctx, "k", &got))
		assert.Equal(t, "quiz", got.Name)
		assert.Equal(t, 3, got.Count)
	})

	t.Run("missing key is a cache miss", func(t *testing.T) {
		c := NewMemoryCache()

		var got payload
		err := c.Get(ctx, "absent", &got)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("expired entries miss", func(t *testing.T) {
		c := NewMemoryCache()

		require.NoError(t, c.Set(ctx, "k", payload{Name: "quiz"}, time.Nanosecond))
		time.Sleep(5 * time.Millisecond)

		var got payload
		err := c.Get(ctx, "k", &got)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("expired entries are evicted on read", func(t *testing.T) {
		c := NewMemoryCache()
		mc := c.(*memoryCache)

		require.NoError(t, c.Set(ctx, "k", payload{Name: "quiz"}, time.Nanosecond))
		time.Sleep(5 * time.Millisecond)

		var got payload
		require.ErrorIs(t, c.Get(ctx, "k", &got), ErrCacheMiss)

		mc.mu.RLock()
		_, stillThere := mc.entries["k"]
		mc.mu.RUnlock()
		assert.False(t, stillThere, "expired entry must be removed, not just skipped")
	})

	t.Run("delete removes entries", func(t *testing.T) {
		c := NewMemoryCache()

		require.NoError(t, c.Set(ctx, "k", payload{Name: "quiz"}, time.Minute))
		require.NoError(t, c.Delete(ctx, "k"))

		var got payload
		err := c.Get(ctx, "k", &got)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}
