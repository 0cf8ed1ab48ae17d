package sources

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/de-tools/fabric-atlas/pkg/services/config"
	"github.com/de-tools/fabric-atlas/pkg/store/duckdb/orders"
	"github.com/rs/zerolog"
)

// Catalog resolves source names to opened sources. The embedded store is
// always listed under domain.StoreSourceName; a profile with that name is
// shadowed by it.
type Catalog struct {
	profiles  config.Registry
	factories Registry
	store     Source

	mu     sync.Mutex
	opened map[string]Source
}

func NewCatalog(profiles config.Registry, factories Registry, store orders.Store) *Catalog {
	return &Catalog{
		profiles:  profiles,
		factories: factories,
		store:     NewStoreSource(domain.StoreSourceName, store),
		opened:    make(map[string]Source),
	}
}

// Profiles lists the embedded store followed by the configured profiles.
func (c *Catalog) Profiles(ctx context.Context) ([]domain.SourceProfile, error) {
	configured, err := c.profiles.GetProfiles(ctx)
	if err != nil {
		return nil, err
	}

	res := []domain.SourceProfile{{
		Name:     domain.StoreSourceName,
		Type:     domain.SourceTypeStore,
		Settings: map[string]string{},
	}}
	for _, p := range configured {
		if p.Name == domain.StoreSourceName {
			continue
		}
		res = append(res, p)
	}
	return res, nil
}

// Get opens the named source once and reuses it afterwards.
func (c *Catalog) Get(ctx context.Context, name string) (Source, error) {
	if name == domain.StoreSourceName {
		return c.store, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if src, ok := c.opened[name]; ok {
		return src, nil
	}

	profile, err := c.profiles.GetProfile(ctx, name)
	if err != nil {
		return nil, err
	}
	src, err := c.factories.Create(ctx, profile, c.profiles)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Str("source", name).Str("type", string(profile.Type)).Msg("source opened")
	c.opened[name] = src
	return src, nil
}

// Close releases every opened source holding a client or connection.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	for name, src := range c.opened {
		if closer, ok := src.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		delete(c.opened, name)
	}
	return errors.Join(errs...)
}
