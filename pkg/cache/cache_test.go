package cache

import (
	"math"
	"testing"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	orders := []domain.Order{
		{ID: "1", Status: domain.OrderStatusPending, Total: 10, PaidAmount: 5, CreatedAt: now},
	}

	t.Run("stable for equal content", func(t *testing.T) {
		copied := []domain.Order{orders[0]}
		assert.Equal(t, Key(orders, now), Key(copied, now))
	})

	t.Run("same day shares a key", func(t *testing.T) {
		assert.Equal(t, Key(orders, now), Key(orders, now.Add(5*time.Hour)))
	})

	t.Run("different day changes the key", func(t *testing.T) {
		assert.NotEqual(t, Key(orders, now), Key(orders, now.AddDate(0, 0, 1)))
	})

	t.Run("different location changes the key", func(t *testing.T) {
		loc := time.FixedZone("UTC+3", 3*3600)
		assert.NotEqual(t, Key(orders, now), Key(orders, now.In(loc)))
	})

	t.Run("locations sharing zone and offset differ", func(t *testing.T) {
		a := time.FixedZone("CET", 3600)
		b, err := time.LoadLocation("Europe/Paris")
		if err != nil {
			t.Skip("zoneinfo not available")
		}
		winter := time.Date(2024, 1, 10, 9, 0, 0, 0, a)
		assert.NotEqual(t, Key(orders, winter), Key(orders, winter.In(b)))
	})

	t.Run("non-finite amounts do not collide", func(t *testing.T) {
		nan := []domain.Order{{ID: "1", Total: math.NaN()}}
		inf := []domain.Order{{ID: "2", Total: math.Inf(1)}}
		assert.NotEqual(t, Key(nan, now), Key(inf, now))
		assert.Equal(t, Key(nan, now), Key([]domain.Order{{ID: "1", Total: math.NaN()}}, now))
	})

	t.Run("different content changes the key", func(t *testing.T) {
		changed := []domain.Order{orders[0]}
		changed[0].PaidAmount = 6
		assert.NotEqual(t, Key(orders, now), Key(changed, now))
	})

	t.Run("nil and empty are the same", func(t *testing.T) {
		assert.Equal(t, Key(nil, now), Key([]domain.Order{}, now))
	})
}
