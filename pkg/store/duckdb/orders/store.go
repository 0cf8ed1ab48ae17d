package orders

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/models/store"
	"github.com/de-tools/fabric-atlas/pkg/store/duckdb"
	"github.com/rs/zerolog"
)

// Store keeps a copy of marketplace orders and their line items in DuckDB.
// Writes join the transaction carried by the context, if any.
type Store interface {
	Upsert(ctx context.Context, orders []store.Order) error
	List(ctx context.Context, since time.Time) ([]store.Order, error)
	Count(ctx context.Context) (int64, error)
}

type orderStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &orderStore{db: db}, nil
}

const (
	upsertOrderQuery = `
		INSERT INTO orders (id, status, created_at, total, paid_amount)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			created_at = EXCLUDED.created_at,
			total = EXCLUDED.total,
			paid_amount = EXCLUDED.paid_amount`
	deleteItemsQuery = `DELETE FROM order_items WHERE order_id = ?`
	insertItemQuery  = `
		INSERT INTO order_items (order_id, position, price, quantity, category)
		VALUES (?, ?, ?, ?, ?)`
)

func (s *orderStore) Upsert(ctx context.Context, orders []store.Order) error {
	if len(orders) == 0 {
		return nil
	}

	conn := duckdb.Conn(ctx, s.db)

	orderStmt, err := conn.PrepareContext(ctx, upsertOrderQuery)
	if err != nil {
		return fmt.Errorf("prepare order statement: %w", err)
	}
	defer orderStmt.Close()

	itemStmt, err := conn.PrepareContext(ctx, insertItemQuery)
	if err != nil {
		return fmt.Errorf("prepare item statement: %w", err)
	}
	defer itemStmt.Close()

	for _, o := range orders {
		if _, err := orderStmt.ExecContext(ctx, o.ID, o.Status, o.CreatedAt, o.Total, o.PaidAmount); err != nil {
			return fmt.Errorf("upsert order %s: %w", o.ID, err)
		}
		if _, err := conn.ExecContext(ctx, deleteItemsQuery, o.ID); err != nil {
			return fmt.Errorf("delete items of order %s: %w", o.ID, err)
		}
		for i, item := range o.Items {
			var category any
			if item.Category != nil {
				category = *item.Category
			}
			if _, err := itemStmt.ExecContext(ctx, o.ID, i, item.Price, item.Quantity, category); err != nil {
				return fmt.Errorf("insert item %d of order %s: %w", i, o.ID, err)
			}
		}
	}

	return nil
}

func (s *orderStore) List(ctx context.Context, since time.Time) ([]store.Order, error) {
	logger := zerolog.Ctx(ctx)
	conn := duckdb.Conn(ctx, s.db)

	filter := ""
	var args []any
	if !since.IsZero() {
		filter = "WHERE created_at >= ?"
		args = append(args, since)
	}

	rows, err := conn.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, status, created_at, total, paid_amount
		FROM orders
		%s
		ORDER BY created_at, id
	`, filter), args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	orders := make([]store.Order, 0)
	index := make(map[string]int)
	for rows.Next() {
		var o store.Order
		if err := rows.Scan(&o.ID, &o.Status, &o.CreatedAt, &o.Total, &o.PaidAmount); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Items = []store.OrderItem{}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	if err := rows.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to close order rows")
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := conn.QueryContext(ctx, fmt.Sprintf(`
		SELECT order_id, position, price, quantity, category
		FROM order_items
		WHERE order_id IN (SELECT id FROM orders %s)
		ORDER BY order_id, position
	`, filter), args...)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close order item rows")
		}
	}(itemRows)

	for itemRows.Next() {
		var (
			item     store.OrderItem
			category sql.NullString
		)
		if err := itemRows.Scan(&item.OrderID, &item.Position, &item.Price, &item.Quantity, &category); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if category.Valid {
			c := category.String
			item.Category = &c
		}
		i, ok := index[item.OrderID]
		if !ok {
			continue
		}
		orders[i].Items = append(orders[i].Items, item)
	}

	return orders, itemRows.Err()
}

func (s *orderStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := duckdb.Conn(ctx, s.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}
