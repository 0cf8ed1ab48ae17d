package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const SyncStateSchema = `
	CREATE TABLE IF NOT EXISTS sync_state (
		source VARCHAR PRIMARY KEY,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		cursor_at TIMESTAMPTZ NULL
	);
`
const OrdersTableSchema = `
	CREATE TABLE IF NOT EXISTS orders (
		id VARCHAR PRIMARY KEY,
		status VARCHAR NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		total DOUBLE NOT NULL,
		paid_amount DOUBLE NOT NULL
	);
`
const OrderItemsTableSchema = `
	CREATE TABLE IF NOT EXISTS order_items (
		order_id VARCHAR NOT NULL,
		position INTEGER NOT NULL,
		price DOUBLE NOT NULL,
		quantity INTEGER NOT NULL,
		category VARCHAR NULL
	);
`

var bootQueries = []string{
	SyncStateSchema,
	OrdersTableSchema,
	OrderItemsTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
