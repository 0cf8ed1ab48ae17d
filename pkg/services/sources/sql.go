package sources

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	defaultOrdersTable = "orders"
	defaultItemsTable  = "order_items"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*){0,2}$`)

// SQLSource reads orders from a warehouse holding an orders table
// (id, status, created_at, total, paid_amount) and an items table
// (order_id, price, quantity, category).
type SQLSource struct {
	name        string
	db          *sql.DB
	ordersTable string
	itemsTable  string
}

func NewSQLSource(name string, db *sql.DB, ordersTable, itemsTable string) (*SQLSource, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if ordersTable == "" {
		ordersTable = defaultOrdersTable
	}
	if itemsTable == "" {
		itemsTable = defaultItemsTable
	}
	for _, table := range []string{ordersTable, itemsTable} {
		if !tableNamePattern.MatchString(table) {
			return nil, fmt.Errorf("invalid table name %q", table)
		}
	}

	return &SQLSource{
		name:        name,
		db:          db,
		ordersTable: ordersTable,
		itemsTable:  itemsTable,
	}, nil
}

func (s *SQLSource) Name() string {
	return s.name
}

func (s *SQLSource) Close() error {
	return s.db.Close()
}

func (s *SQLSource) FetchOrders(ctx context.Context, since time.Time) ([]domain.Order, error) {
	logger := zerolog.Ctx(ctx)

	filter := ""
	var args []any
	if !since.IsZero() {
		filter = " WHERE created_at >= ?"
		args = append(args, since)
	}

	ordersQuery := fmt.Sprintf(
		"SELECT id, status, created_at, total, paid_amount FROM %s%s ORDER BY created_at, id",
		s.ordersTable, filter)
	rows, err := s.db.QueryContext(ctx, ordersQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%s orders query failed: %w", s.name, err)
	}

	orders := make([]domain.Order, 0)
	index := make(map[string]int)
	for rows.Next() {
		var (
			o      domain.Order
			status string
		)
		if err := rows.Scan(&o.ID, &status, &o.CreatedAt, &o.Total, &o.PaidAmount); err != nil {
			_ = rows.Close()
			return nil, err
		}
		o.Status = domain.OrderStatus(status)
		o.Products = []domain.LineItem{}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to close orders query rows")
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemsFilter := ""
	if filter != "" {
		itemsFilter = fmt.Sprintf(" WHERE order_id IN (SELECT id FROM %s%s)", s.ordersTable, filter)
	}
	itemsQuery := fmt.Sprintf(
		"SELECT order_id, price, quantity, category FROM %s%s ORDER BY order_id",
		s.itemsTable, itemsFilter)
	itemRows, err := s.db.QueryContext(ctx, itemsQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("%s order items query failed: %w", s.name, err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close order items query rows")
		}
	}(itemRows)

	for itemRows.Next() {
		var (
			orderID  string
			item     domain.LineItem
			category sql.NullString
		)
		if err := itemRows.Scan(&orderID, &item.Price, &item.Quantity, &category); err != nil {
			return nil, err
		}
		if category.Valid {
			item.Category = category.String
		}
		if i, ok := index[orderID]; ok {
			orders[i].Products = append(orders[i].Products, item)
		}
	}

	return orders, itemRows.Err()
}
