package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/models/domain"
)

type entry struct {
	value     *domain.OrderAnalytics
	expiresAt time.Time
}

type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (*domain.OrderAnalytics, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || !m.now().Before(e.expiresAt) {
		return nil, domain.ErrCacheMiss
	}
	return clone(e.value), nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value *domain.OrderAnalytics, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, k)
		}
	}
	m.entries[key] = entry{value: clone(value), expiresAt: now.Add(ttl)}
	return nil
}

// clone keeps cached slices out of reach of callers.
func clone(v *domain.OrderAnalytics) *domain.OrderAnalytics {
	if v == nil {
		return nil
	}
	c := *v
	c.StatusData = slices.Clone(v.StatusData)
	c.DailyData = slices.Clone(v.DailyData)
	c.TopCategories = slices.Clone(v.TopCategories)
	return &c
}
