package cache

import (
	"context"
	"testing"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return clock }

	value := &domain.OrderAnalytics{TotalSales: 42}

	t.Run("miss on empty cache", func(t *testing.T) {
		_, err := c.Get(ctx, "k")
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("hit before expiry", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "k", value, time.Minute))

		got, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, value, got)
	})

	t.Run("miss after expiry", func(t *testing.T) {
		clock = clock.Add(time.Minute)

		_, err := c.Get(ctx, "k")
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("expired entries are evicted on set", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "other", value, time.Minute))

		c.mu.RLock()
		defer c.mu.RUnlock()
		assert.Len(t, c.entries, 1)
	})

	t.Run("callers cannot change cached values", func(t *testing.T) {
		stored := &domain.OrderAnalytics{
			TopCategories: []domain.CategorySales{{Category: "silk", Sales: 10}},
		}
		require.NoError(t, c.Set(ctx, "shared", stored, time.Minute))
		stored.TopCategories[0].Category = "changed"

		got, err := c.Get(ctx, "shared")
		require.NoError(t, err)
		got.TopCategories[0].Sales = 99

		again, err := c.Get(ctx, "shared")
		require.NoError(t, err)
		assert.Equal(t, []domain.CategorySales{{Category: "silk", Sales: 10}}, again.TopCategories)
	})
}
