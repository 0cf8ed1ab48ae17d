package sources

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `[
  {
    "id": "b",
    "status": "shipped",
    "createdAt": "2024-06-09T10:00:00Z",
    "total": 40,
    "paidAmount": 40,
    "products": [{"price": 20, "quantity": 2, "category": "silk"}]
  },
  {
    "id": "a",
    "status": "pending",
    "createdAt": "2024-06-01T08:30:00Z",
    "total": 15.5,
    "paidAmount": 0,
    "products": [{"price": 15.5, "quantity": 1}]
  }
]`

func TestDecodeOrders(t *testing.T) {
	orders, err := DecodeOrders(strings.NewReader(sampleExport))
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "b", orders[0].ID)
	assert.Equal(t, domain.OrderStatusShipped, orders[0].Status)
	assert.Equal(t, time.Date(2024, 6, 9, 10, 0, 0, 0, time.UTC), orders[0].CreatedAt.UTC())
	assert.Equal(t, []domain.LineItem{{Price: 20, Quantity: 2, Category: "silk"}}, orders[0].Products)

	assert.Equal(t, 15.5, orders[1].Total)
	assert.Equal(t, "", orders[1].Products[0].Category)
	assert.Equal(t, domain.DefaultCategory, orders[1].Products[0].CategoryOrDefault())
}

func TestDecodeOrders_Invalid(t *testing.T) {
	_, err := DecodeOrders(strings.NewReader(`{"id": "not an array"}`))
	assert.Error(t, err)
}

func TestEncodeOrders_ReadableByDecode(t *testing.T) {
	orders, err := DecodeOrders(strings.NewReader(sampleExport))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeOrders(&buf, orders))
	assert.NotContains(t, buf.String(), `"category": null`)

	again, err := DecodeOrders(&buf)
	require.NoError(t, err)
	assert.Equal(t, orders, again)
}

func TestFilterSince(t *testing.T) {
	orders := []domain.Order{
		{ID: "late", CreatedAt: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)},
		{ID: "early", CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "edge", CreatedAt: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)},
	}

	all := filterSince(orders, time.Time{})
	assert.Equal(t, []string{"early", "edge", "late"}, ids(all))

	recent := filterSince(orders, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{"edge", "late"}, ids(recent))
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleExport), 0o600))

	src := NewFileSource("local", path)
	assert.Equal(t, "local", src.Name())

	orders, err := src.FetchOrders(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(orders))

	orders, err = src.FetchOrders(context.Background(), time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(orders))
}

func TestFileSource_MissingFile(t *testing.T) {
	src := NewFileSource("local", filepath.Join(t.TempDir(), "missing.json"))

	_, err := src.FetchOrders(context.Background(), time.Time{})
	assert.Error(t, err)
}

func ids(orders []domain.Order) []string {
	res := make([]string, 0, len(orders))
	for _, o := range orders {
		res = append(res, o.ID)
	}
	return res
}
