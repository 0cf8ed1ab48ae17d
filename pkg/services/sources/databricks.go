package sources

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/de-tools/fabric-atlas/pkg/services/config"
	dbsql "github.com/databricks/databricks-sql-go"
	dbconfig "github.com/databricks/databricks-sdk-go/config"
)

// DatabricksProfile may leave host and token empty; they are then resolved
// from the DATABRICKS_* environment like any Databricks SDK client.
type DatabricksProfile struct {
	Host        string `ini:"host"`
	Token       string `ini:"token"`
	HTTPPath    string `ini:"http_path" validate:"required"`
	Catalog     string `ini:"catalog"`
	Schema      string `ini:"schema"`
	OrdersTable string `ini:"orders_table"`
	ItemsTable  string `ini:"items_table"`
}

func DatabricksFactory(ctx context.Context, name string, profiles config.Registry) (Source, error) {
	var p DatabricksProfile
	if err := profiles.Decode(ctx, name, &p); err != nil {
		return nil, err
	}

	cfg := &dbconfig.Config{Host: p.Host, Token: p.Token}
	if err := cfg.EnsureResolved(); err != nil {
		return nil, fmt.Errorf("failed to resolve databricks config: %w", err)
	}
	if cfg.Host == "" || cfg.Token == "" {
		return nil, fmt.Errorf("databricks profile %s: host and token are required", name)
	}

	opts := []dbsql.ConnOption{
		dbsql.WithServerHostname(hostname(cfg.Host)),
		dbsql.WithPort(443),
		dbsql.WithHTTPPath(p.HTTPPath),
		dbsql.WithAccessToken(cfg.Token),
	}
	if p.Catalog != "" || p.Schema != "" {
		opts = append(opts, dbsql.WithInitialNamespace(p.Catalog, p.Schema))
	}
	connector, err := dbsql.NewConnector(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create databricks connector: %w", err)
	}

	src, err := NewSQLSource(name, sql.OpenDB(connector), p.OrdersTable, p.ItemsTable)
	if err != nil {
		return nil, err
	}
	return src, nil
}

func hostname(host string) string {
	if u, err := url.Parse(host); err == nil && u.Host != "" {
		return u.Hostname()
	}
	return strings.TrimSuffix(host, "/")
}
