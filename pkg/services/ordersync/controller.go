package ordersync

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/de-tools/fabric-atlas/pkg/adapters"
	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/de-tools/fabric-atlas/pkg/models/store"
	"github.com/de-tools/fabric-atlas/pkg/services/sources"
	"github.com/de-tools/fabric-atlas/pkg/store/duckdb/orders"
	"github.com/de-tools/fabric-atlas/pkg/store/duckdb/syncstate"
	"github.com/rs/zerolog"
)

type Controller interface {
	Start(ctx context.Context, source string) error
	Cancel(ctx context.Context, source string) error
	Status(ctx context.Context) ([]domain.SyncState, error)
}

// SourceResolver opens sources by name; sources.Catalog satisfies it.
type SourceResolver interface {
	Get(ctx context.Context, name string) (sources.Source, error)
}

type runnerDescriptor struct {
	cancelFunc context.CancelFunc
	state      *store.SyncState
	runner     *Runner
}

type DefaultController struct {
	db         *sql.DB
	resolver   SourceResolver
	stateStore syncstate.Store
	orderStore orders.Store
	config     RunnerConfig

	mu      sync.Mutex
	runners map[string]runnerDescriptor
}

func NewController(
	db *sql.DB,
	resolver SourceResolver,
	stateStore syncstate.Store,
	orderStore orders.Store,
	config RunnerConfig,
) *DefaultController {
	return &DefaultController{
		db:         db,
		resolver:   resolver,
		stateStore: stateStore,
		orderStore: orderStore,
		config:     config,
		runners:    make(map[string]runnerDescriptor),
	}
}

// Init resumes a runner for every persisted sync state. Sources that can no
// longer be opened are logged and skipped.
func (ctrl *DefaultController) Init(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	states, err := ctrl.stateStore.List(ctx)
	if err != nil {
		return err
	}

	for _, state := range states {
		if err := ctrl.startRunner(ctx, state); err != nil {
			logger.Warn().Err(err).Str("source", state.Source).Msg("failed to resume order sync")
		}
	}
	return nil
}

func (ctrl *DefaultController) Start(ctx context.Context, source string) error {
	if source == domain.StoreSourceName {
		return fmt.Errorf("%w: the store cannot sync into itself", domain.ErrUnsupportedSourceType)
	}
	if ctrl.isRunning(source) {
		return fmt.Errorf("%w: %s", domain.ErrSyncAlreadyRunning, source)
	}
	if _, err := ctrl.resolver.Get(ctx, source); err != nil {
		return err
	}

	state, err := ctrl.stateStore.Create(ctx, source)
	if err != nil {
		return err
	}
	return ctrl.startRunner(ctx, state)
}

// Cancel stops the runner and forgets its cursor, so a later Start copies
// the source again from the beginning.
func (ctrl *DefaultController) Cancel(ctx context.Context, source string) error {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	desc, ok := ctrl.runners[source]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSyncNotRunning, source)
	}
	desc.cancelFunc()
	<-desc.runner.Done()
	delete(ctrl.runners, source)

	return ctrl.stateStore.Delete(ctx, source)
}

// Shutdown stops every runner and keeps the persisted cursors for Init.
func (ctrl *DefaultController) Shutdown() {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	for source, desc := range ctrl.runners {
		desc.cancelFunc()
		<-desc.runner.Done()
		delete(ctrl.runners, source)
	}
}

func (ctrl *DefaultController) Status(ctx context.Context) ([]domain.SyncState, error) {
	states, err := ctrl.stateStore.List(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.SyncState, 0, len(states))
	for _, s := range states {
		res = append(res, *adapters.MapStoreSyncStateToDomain(s, ctrl.isRunning(s.Source)))
	}
	return res, nil
}

func (ctrl *DefaultController) isRunning(source string) bool {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	_, ok := ctrl.runners[source]
	return ok
}

func (ctrl *DefaultController) startRunner(ctx context.Context, state *store.SyncState) error {
	src, err := ctrl.resolver.Get(ctx, state.Source)
	if err != nil {
		return err
	}

	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	if _, ok := ctrl.runners[state.Source]; ok {
		return fmt.Errorf("%w: %s", domain.ErrSyncAlreadyRunning, state.Source)
	}

	// runners outlive the request that started them
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	runner := NewRunner(src, ctrl.db, ctrl.stateStore, ctrl.orderStore, ctrl.config)
	ctrl.runners[state.Source] = runnerDescriptor{
		cancelFunc: cancel,
		state:      state,
		runner:     runner,
	}

	go runner.Run(runCtx)
	return nil
}
