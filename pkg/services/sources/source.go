package sources

import (
	"context"
	"sort"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/models/domain"
)

// Source loads marketplace orders from where they are kept.
type Source interface {
	Name() string
	// FetchOrders returns orders created at or after since, oldest first.
	// A zero since returns every order.
	FetchOrders(ctx context.Context, since time.Time) ([]domain.Order, error)
}

func filterSince(orders []domain.Order, since time.Time) []domain.Order {
	res := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if !since.IsZero() && o.CreatedAt.Before(since) {
			continue
		}
		res = append(res, o)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res
}
