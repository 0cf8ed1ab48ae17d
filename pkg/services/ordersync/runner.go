package ordersync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/adapters"
	"github.com/de-tools/fabric-atlas/pkg/services/sources"
	"github.com/de-tools/fabric-atlas/pkg/store/duckdb"
	"github.com/de-tools/fabric-atlas/pkg/store/duckdb/orders"
	"github.com/de-tools/fabric-atlas/pkg/store/duckdb/syncstate"
	"github.com/rs/zerolog"
)

const (
	DefaultInterval = 30 * time.Second

	cursorPrecision = time.Microsecond
)

// Runner copies orders of one source into the embedded store, resuming
// from the persisted cursor.
type Runner struct {
	source     sources.Source
	db         *sql.DB
	stateStore syncstate.Store
	orderStore orders.Store
	done       chan struct{}
	progress   chan Progress
	config     RunnerConfig
}

type RunnerConfig struct {
	// Interval is the pause after an idle or failed batch.
	Interval time.Duration
}

type Progress struct {
	Source       string
	SyncedOrders int
	// TotalOrders is the number of orders held by the store after the batch.
	TotalOrders  int64
	Cursor       time.Time
}

func NewRunner(
	source sources.Source,
	db *sql.DB,
	stateStore syncstate.Store,
	orderStore orders.Store,
	config RunnerConfig,
) *Runner {
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	return &Runner{
		source:     source,
		db:         db,
		stateStore: stateStore,
		orderStore: orderStore,
		done:       make(chan struct{}),
		progress:   make(chan Progress, 100),
		config:     config,
	}
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Progress publishes one event per batch that stored new orders. Events
// are dropped while the buffer is full.
func (r *Runner) Progress() <-chan Progress {
	return r.progress
}

func (r *Runner) Run(ctx context.Context) {
	logger := zerolog.Ctx(ctx).With().Str("source", r.source.Name()).Logger()
	ctx = logger.WithContext(ctx)
	defer close(r.done)
	defer close(r.progress)

	logger.Info().Msg("order sync started")
	for {
		synced, err := r.SyncOnce(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info().Msg("order sync stopped")
				return
			}
			logger.Error().Err(err).Msg("order sync batch failed")
		}

		if synced > 0 {
			total, err := r.orderStore.Count(ctx)
			if err != nil {
				logger.Warn().Err(err).Msg("failed to count stored orders")
			}
			state, err := r.stateStore.Get(ctx, r.source.Name())
			if err == nil && state.Cursor != nil {
				r.publish(Progress{
					Source:       r.source.Name(),
					SyncedOrders: synced,
					TotalOrders:  total,
					Cursor:       *state.Cursor,
				})
			}
			continue
		}

		select {
		case <-ctx.Done():
			logger.Info().Msg("order sync stopped")
			return
		case <-time.After(r.config.Interval):
		}
	}
}

func (r *Runner) publish(p Progress) {
	select {
	case r.progress <- p:
	default:
	}
}

// SyncOnce fetches orders created at or after the cursor, stores them and
// moves the cursor to the newest one in a single transaction. It returns
// the number of orders newer than the previous cursor.
func (r *Runner) SyncOnce(ctx context.Context) (int, error) {
	logger := zerolog.Ctx(ctx)
	name := r.source.Name()

	state, err := r.stateStore.Get(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("load sync state: %w", err)
	}

	var since time.Time
	if state.Cursor != nil {
		since = *state.Cursor
	}

	fetched, err := r.source.FetchOrders(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("fetch orders: %w", err)
	}
	if len(fetched) == 0 {
		logger.Debug().Msg("no orders found")
		return 0, nil
	}

	cursor := since
	synced := 0
	for _, o := range fetched {
		// the store keeps microseconds, so the cursor does too
		created := o.CreatedAt.Truncate(cursorPrecision)
		if state.Cursor == nil || created.After(since) {
			synced++
		}
		if created.After(cursor) {
			cursor = created
		}
	}
	if synced == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			logger.Warn().Err(err).Msg("failed to rollback sync transaction")
		}
	}()

	ctxWithTx := duckdb.WithTransaction(ctx, tx)
	if err := r.orderStore.Upsert(ctxWithTx, adapters.MapDomainOrdersToStore(fetched)); err != nil {
		return 0, fmt.Errorf("store orders: %w", err)
	}
	if err := r.stateStore.Advance(ctxWithTx, name, cursor); err != nil {
		return 0, fmt.Errorf("advance cursor: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	logger.Info().Int("orders", synced).Time("cursor", cursor).Msg("orders synced")
	return synced, nil
}
