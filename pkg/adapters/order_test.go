package adapters

import (
	"testing"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderMapping(t *testing.T) {
	order := domain.Order{
		ID:         "o-1",
		Status:     domain.OrderStatusShipped,
		CreatedAt:  time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		Total:      25,
		PaidAmount: 20,
		Products: []domain.LineItem{
			{Price: 10, Quantity: 2, Category: "wool"},
			{Price: 5, Quantity: 1},
		},
	}

	stored := MapDomainOrderToStore(order)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "shipped", stored.Status)
	require.NotNil(t, stored.Items[0].Category)
	assert.Equal(t, "wool", *stored.Items[0].Category)
	assert.Nil(t, stored.Items[1].Category)
	assert.Equal(t, 1, stored.Items[1].Position)
	assert.Equal(t, "o-1", stored.Items[1].OrderID)

	assert.Equal(t, order, MapStoreOrderToDomain(stored))
}

func TestMapAnalyticsDomainToApi(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	res := MapAnalyticsDomainToApi("store", now, domain.OrderAnalytics{
		DailyData: []domain.DailyPoint{{Date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), Count: 1, Amount: 3}},
	})

	assert.Equal(t, "2024-06-10", res.Date)
	assert.Equal(t, "2024-06-10", res.DailyData[0].Date)
	assert.NotNil(t, res.StatusData)
	assert.NotNil(t, res.TopCategories)
}
