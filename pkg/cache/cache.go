package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/models/domain"
)

// Cache memoizes aggregation results. Get returns domain.ErrCacheMiss for absent or expired keys.
type Cache interface {
	Get(ctx context.Context, key string) (*domain.OrderAnalytics, error)
	Set(ctx context.Context, key string, value *domain.OrderAnalytics, ttl time.Duration) error
}

type keyPayload struct {
	Date   string         `json:"date"`
	Zone   string         `json:"zone"`
	Orders []domain.Order `json:"orders"`
}

// Key hashes the order list content together with the anchor day, so two
// calls share a key only when they would aggregate to the same result.
func Key(orders []domain.Order, now time.Time) string {
	_, offset := now.Zone()
	payload := keyPayload{
		Date:   now.Format("2006-01-02"),
		Zone:   fmt.Sprintf("%s%+d", now.Location().String(), offset),
		Orders: orders,
	}
	if payload.Orders == nil {
		payload.Orders = []domain.Order{}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		// NaN and infinite amounts have no JSON form
		payload.Orders = slices.Clone(payload.Orders)
		for i := range payload.Orders {
			payload.Orders[i].CreatedAt = payload.Orders[i].CreatedAt.Round(0)
		}
		raw = []byte(fmt.Sprintf("%+v", payload))
	}
	sum := sha256.Sum256(raw)
	return "analytics:" + hex.EncodeToString(sum[:])
}
