package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/cache"
	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/de-tools/fabric-atlas/pkg/services/sources"
	"github.com/rs/zerolog"
)

// Catalog resolves source names; sources.Catalog satisfies it.
type Catalog interface {
	Get(ctx context.Context, name string) (sources.Source, error)
	Profiles(ctx context.Context) ([]domain.SourceProfile, error)
}

type Service interface {
	GetAnalytics(ctx context.Context, source string, now time.Time) (domain.OrderAnalytics, error)
	GetReport(ctx context.Context, source string, now time.Time) (*domain.Report, error)
	ListSources(ctx context.Context) ([]domain.SourceProfile, error)
}

type service struct {
	catalog Catalog
	cache   cache.Cache
	ttl     time.Duration
}

// NewService aggregates orders on demand. A nil cache disables memoization.
func NewService(catalog Catalog, c cache.Cache, ttl time.Duration) Service {
	return &service{
		catalog: catalog,
		cache:   c,
		ttl:     ttl,
	}
}

func (s *service) ListSources(ctx context.Context) ([]domain.SourceProfile, error) {
	return s.catalog.Profiles(ctx)
}

func (s *service) GetAnalytics(ctx context.Context, source string, now time.Time) (domain.OrderAnalytics, error) {
	report, err := s.GetReport(ctx, source, now)
	if err != nil {
		return domain.OrderAnalytics{}, err
	}
	return report.Analytics, nil
}

func (s *service) GetReport(ctx context.Context, source string, now time.Time) (*domain.Report, error) {
	logger := zerolog.Ctx(ctx).With().Str("source", source).Logger()

	src, err := s.catalog.Get(ctx, source)
	if err != nil {
		return nil, err
	}

	orders, err := src.FetchOrders(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("fetch orders from %s: %w", source, err)
	}

	result := s.aggregate(ctx, &logger, orders, now)

	var start time.Time
	if len(result.DailyData) > 0 {
		start = result.DailyData[0].Date
	}
	return &domain.Report{
		Title:  "Order Analytics",
		Source: source,
		Period: domain.TimePeriod{
			Start:    start,
			End:      now,
			Duration: WindowDays,
		},
		Orders:    len(orders),
		Analytics: result,
	}, nil
}

func (s *service) aggregate(ctx context.Context, logger *zerolog.Logger, orders []domain.Order, now time.Time) domain.OrderAnalytics {
	if s.cache == nil {
		return Aggregate(orders, now)
	}

	key := cache.Key(orders, now)
	cached, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		logger.Debug().Str("key", key).Msg("analytics served from cache")
		return *cached
	case !errors.Is(err, domain.ErrCacheMiss):
		logger.Warn().Err(err).Msg("failed to read analytics cache")
	}

	result := Aggregate(orders, now)
	if err := s.cache.Set(ctx, key, &result, s.ttl); err != nil {
		logger.Warn().Err(err).Msg("failed to store analytics in cache")
	}
	return result
}
