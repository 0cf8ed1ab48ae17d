package sources

import (
	"context"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/adapters"
	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/de-tools/fabric-atlas/pkg/services/config"
	"github.com/de-tools/fabric-atlas/pkg/store/duckdb/orders"
)

type storeSource struct {
	name  string
	store orders.Store
}

// NewStoreSource serves orders previously synced into the embedded store.
func NewStoreSource(name string, store orders.Store) Source {
	return &storeSource{name: name, store: store}
}

func (s *storeSource) Name() string {
	return s.name
}

func (s *storeSource) FetchOrders(ctx context.Context, since time.Time) ([]domain.Order, error) {
	records, err := s.store.List(ctx, since)
	if err != nil {
		return nil, err
	}
	return adapters.MapStoreOrdersToDomain(records), nil
}

// StoreFactory exposes the embedded store under any profile of type store.
func StoreFactory(store orders.Store) Factory {
	return func(_ context.Context, name string, _ config.Registry) (Source, error) {
		return NewStoreSource(name, store), nil
	}
}
