package sources

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	orderCols = []string{"id", "status", "created_at", "total", "paid_amount"}
	itemCols  = []string{"order_id", "price", "quantity", "category"}
)

func TestNewSQLSource(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = NewSQLSource("wh", nil, "", "")
	assert.Error(t, err)

	_, err = NewSQLSource("wh", db, "orders; DROP TABLE orders", "")
	assert.Error(t, err)

	src, err := NewSQLSource("wh", db, "", "")
	require.NoError(t, err)
	assert.Equal(t, "orders", src.ordersTable)
	assert.Equal(t, "order_items", src.itemsTable)

	_, err = NewSQLSource("wh", db, "sales.public.orders", "sales.public.items")
	assert.NoError(t, err)
}

func TestSQLSource_FetchAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	first := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	second := time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, status, created_at, total, paid_amount FROM orders ORDER BY created_at, id")).
		WillReturnRows(sqlmock.NewRows(orderCols).
			AddRow("o-1", "delivered", first, 30.0, 30.0).
			AddRow("o-2", "pending", second, 12.0, 0.0))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT order_id, price, quantity, category FROM order_items ORDER BY order_id")).
		WillReturnRows(sqlmock.NewRows(itemCols).
			AddRow("o-1", 10.0, 3, "cotton").
			AddRow("o-2", 12.0, 1, nil).
			AddRow("ghost", 1.0, 1, "wool"))

	src, err := NewSQLSource("wh", db, "", "")
	require.NoError(t, err)

	orders, err := src.FetchOrders(context.Background(), time.Time{})
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, domain.Order{
		ID:         "o-1",
		Status:     domain.OrderStatusDelivered,
		CreatedAt:  first,
		Total:      30,
		PaidAmount: 30,
		Products:   []domain.LineItem{{Price: 10, Quantity: 3, Category: "cotton"}},
	}, orders[0])
	assert.Equal(t, []domain.LineItem{{Price: 12, Quantity: 1}}, orders[1].Products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSource_FetchSince(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	since := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, status, created_at, total, paid_amount FROM sales.orders WHERE created_at >= ? ORDER BY created_at, id")).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows(orderCols).AddRow("o-2", "pending", since, 12.0, 0.0))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT order_id, price, quantity, category FROM sales.items WHERE order_id IN (SELECT id FROM sales.orders WHERE created_at >= ?) ORDER BY order_id")).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows(itemCols).AddRow("o-2", 12.0, 1, "linen"))

	src, err := NewSQLSource("wh", db, "sales.orders", "sales.items")
	require.NoError(t, err)

	orders, err := src.FetchOrders(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "linen", orders[0].Products[0].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSource_NoOrdersSkipsItems(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, status").WillReturnRows(sqlmock.NewRows(orderCols))

	src, err := NewSQLSource("wh", db, "", "")
	require.NoError(t, err)

	orders, err := src.FetchOrders(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSource_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, status").WillReturnError(assert.AnError)

	src, err := NewSQLSource("wh", db, "", "")
	require.NoError(t, err)

	_, err = src.FetchOrders(context.Background(), time.Time{})
	assert.ErrorIs(t, err, assert.AnError)
}
