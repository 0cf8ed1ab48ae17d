package sources

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/fabric-atlas/pkg/services/config"
	sf "github.com/snowflakedb/gosnowflake"
)

type SnowflakeProfile struct {
	Account     string `ini:"account" validate:"required"`
	User        string `ini:"user" validate:"required"`
	Password    string `ini:"password" validate:"required"`
	Database    string `ini:"database"`
	Schema      string `ini:"schema"`
	Warehouse   string `ini:"warehouse"`
	Role        string `ini:"role"`
	OrdersTable string `ini:"orders_table"`
	ItemsTable  string `ini:"items_table"`
}

func SnowflakeFactory(ctx context.Context, name string, profiles config.Registry) (Source, error) {
	var p SnowflakeProfile
	if err := profiles.Decode(ctx, name, &p); err != nil {
		return nil, err
	}

	dsn, err := sf.DSN(&sf.Config{
		Account:   p.Account,
		User:      p.User,
		Password:  p.Password,
		Database:  p.Database,
		Schema:    p.Schema,
		Warehouse: p.Warehouse,
		Role:      p.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build snowflake dsn: %w", err)
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open snowflake connection: %w", err)
	}

	src, err := NewSQLSource(name, db, p.OrdersTable, p.ItemsTable)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return src, nil
}
