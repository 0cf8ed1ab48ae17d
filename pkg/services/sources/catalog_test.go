package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/de-tools/fabric-atlas/pkg/models/store"
	"github.com/de-tools/fabric-atlas/pkg/services/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderStore struct {
	orders []store.Order
}

func (s *stubOrderStore) Upsert(_ context.Context, orders []store.Order) error {
	s.orders = append(s.orders, orders...)
	return nil
}

func (s *stubOrderStore) List(_ context.Context, _ time.Time) ([]store.Order, error) {
	return s.orders, nil
}

func (s *stubOrderStore) Count(_ context.Context) (int64, error) {
	return int64(len(s.orders)), nil
}

func writeProfiles(t *testing.T, exportPath string) config.Registry {
	t.Helper()

	content := "[local]\ntype = file\npath = " + exportPath + "\n\n" +
		"[broken]\ntype = file\n\n" +
		"[legacy]\ntype = ftp\nhost = example.com\n\n" +
		"[store]\ntype = file\npath = shadowed.json\n"
	path := filepath.Join(t.TempDir(), "profiles.cfg")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	registry, err := config.NewRegistry(path)
	require.NoError(t, err)
	return registry
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	factory := func(_ context.Context, name string, _ config.Registry) (Source, error) {
		return NewFileSource(name, "orders.json"), nil
	}

	assert.Error(t, r.Register("", factory))
	assert.Error(t, r.Register(domain.SourceTypeFile, nil))
	require.NoError(t, r.Register(domain.SourceTypeFile, factory))
	assert.Error(t, r.Register(domain.SourceTypeFile, factory))
	assert.Equal(t, []domain.SourceType{domain.SourceTypeFile}, r.ListTypes())

	src, err := r.Create(context.Background(), domain.SourceProfile{Name: "x", Type: domain.SourceTypeFile}, nil)
	require.NoError(t, err)
	assert.Equal(t, "x", src.Name())

	_, err = r.Create(context.Background(), domain.SourceProfile{Name: "y", Type: "ftp"}, nil)
	assert.ErrorIs(t, err, domain.ErrUnsupportedSourceType)
}

func TestDefaultRegistry_Types(t *testing.T) {
	r := DefaultRegistry(&stubOrderStore{})

	assert.ElementsMatch(t, []domain.SourceType{
		domain.SourceTypeFile,
		domain.SourceTypeS3,
		domain.SourceTypeGCS,
		domain.SourceTypeAzureBlob,
		domain.SourceTypeSnowflake,
		domain.SourceTypeDatabricks,
		domain.SourceTypeStore,
	}, r.ListTypes())
}

func TestCatalog_Profiles(t *testing.T) {
	st := &stubOrderStore{}
	catalog := NewCatalog(writeProfiles(t, "orders.json"), DefaultRegistry(st), st)

	profiles, err := catalog.Profiles(context.Background())
	require.NoError(t, err)

	var names []string
	for _, p := range profiles {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{domain.StoreSourceName, "local", "broken", "legacy"}, names)
	assert.Equal(t, domain.SourceTypeStore, profiles[0].Type)
}

func TestCatalog_Get(t *testing.T) {
	exportPath := filepath.Join(t.TempDir(), "orders.json")
	require.NoError(t, os.WriteFile(exportPath, []byte(sampleExport), 0o600))

	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	st := &stubOrderStore{orders: []store.Order{{ID: "s-1", Status: "approved", CreatedAt: created}}}
	catalog := NewCatalog(writeProfiles(t, exportPath), DefaultRegistry(st), st)
	defer catalog.Close()
	ctx := context.Background()

	t.Run("configured source is opened once", func(t *testing.T) {
		first, err := catalog.Get(ctx, "local")
		require.NoError(t, err)
		second, err := catalog.Get(ctx, "local")
		require.NoError(t, err)
		assert.Same(t, first, second)

		orders, err := first.FetchOrders(ctx, time.Time{})
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("store is built in", func(t *testing.T) {
		src, err := catalog.Get(ctx, domain.StoreSourceName)
		require.NoError(t, err)

		orders, err := src.FetchOrders(ctx, time.Time{})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "s-1", orders[0].ID)
		assert.Equal(t, domain.OrderStatusApproved, orders[0].Status)
	})

	t.Run("unknown source", func(t *testing.T) {
		_, err := catalog.Get(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrSourceNotFound)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := catalog.Get(ctx, "legacy")
		assert.ErrorIs(t, err, domain.ErrUnsupportedSourceType)
	})

	t.Run("invalid profile", func(t *testing.T) {
		_, err := catalog.Get(ctx, "broken")
		assert.Error(t, err)
	})
}
