package sources

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/de-tools/fabric-atlas/pkg/services/config"
	"github.com/de-tools/fabric-atlas/pkg/store/duckdb/orders"
)

// Factory builds a source from the named profile.
type Factory func(ctx context.Context, name string, profiles config.Registry) (Source, error)

// Registry maps source types to their factories.
type Registry interface {
	Register(sourceType domain.SourceType, factory Factory) error
	Create(ctx context.Context, profile domain.SourceProfile, profiles config.Registry) (Source, error)
	ListTypes() []domain.SourceType
}

type registry struct {
	mu        sync.RWMutex
	factories map[domain.SourceType]Factory
}

func NewRegistry() Registry {
	return &registry{
		factories: make(map[domain.SourceType]Factory),
	}
}

// DefaultRegistry knows every built-in source type.
func DefaultRegistry(store orders.Store) Registry {
	r := NewRegistry()
	_ = r.Register(domain.SourceTypeFile, FileFactory)
	_ = r.Register(domain.SourceTypeS3, S3Factory)
	_ = r.Register(domain.SourceTypeGCS, GCSFactory)
	_ = r.Register(domain.SourceTypeAzureBlob, AzureBlobFactory)
	_ = r.Register(domain.SourceTypeSnowflake, SnowflakeFactory)
	_ = r.Register(domain.SourceTypeDatabricks, DatabricksFactory)
	_ = r.Register(domain.SourceTypeStore, StoreFactory(store))
	return r
}

func (r *registry) Register(sourceType domain.SourceType, factory Factory) error {
	if sourceType == "" {
		return fmt.Errorf("source type cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[sourceType]; exists {
		return fmt.Errorf("source type %q is already registered", sourceType)
	}

	r.factories[sourceType] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, profile domain.SourceProfile, profiles config.Registry) (Source, error) {
	r.mu.RLock()
	factory, exists := r.factories[profile.Type]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q (profile %s)", domain.ErrUnsupportedSourceType, profile.Type, profile.Name)
	}

	return factory(ctx, profile.Name, profiles)
}

func (r *registry) ListTypes() []domain.SourceType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]domain.SourceType, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
