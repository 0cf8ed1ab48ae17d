package syncstate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/fabric-atlas/pkg/models/store"
	"github.com/de-tools/fabric-atlas/pkg/store/duckdb"
)

var ErrNotFound = errors.New("sync state not found")

type Store interface {
	List(ctx context.Context) ([]*store.SyncState, error)
	Get(ctx context.Context, source string) (*store.SyncState, error)
	Create(ctx context.Context, source string) (*store.SyncState, error)
	Advance(ctx context.Context, source string, cursor time.Time) error
	Delete(ctx context.Context, source string) error
}

type defaultStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{
		db: db,
	}, nil
}

func (s *defaultStore) List(ctx context.Context) ([]*store.SyncState, error) {
	rows, err := duckdb.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT source, created_at, cursor_at FROM sync_state ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("query sync states: %w", err)
	}
	defer rows.Close()

	states := make([]*store.SyncState, 0)
	for rows.Next() {
		state, err := scanState(rows)
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	return states, rows.Err()
}

func (s *defaultStore) Get(ctx context.Context, source string) (*store.SyncState, error) {
	row := duckdb.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT source, created_at, cursor_at FROM sync_state WHERE source = ?`, source)

	state, err := scanState(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, source)
	}
	return state, err
}

// Create registers source for syncing. It returns the existing state if there is one.
func (s *defaultStore) Create(ctx context.Context, source string) (*store.SyncState, error) {
	_, err := duckdb.Conn(ctx, s.db).ExecContext(ctx,
		`INSERT INTO sync_state (source) VALUES (?) ON CONFLICT (source) DO NOTHING`, source)
	if err != nil {
		return nil, fmt.Errorf("create sync state: %w", err)
	}
	return s.Get(ctx, source)
}

func (s *defaultStore) Advance(ctx context.Context, source string, cursor time.Time) error {
	res, err := duckdb.Conn(ctx, s.db).ExecContext(ctx,
		`UPDATE sync_state SET cursor_at = ? WHERE source = ?`, cursor, source)
	if err != nil {
		return fmt.Errorf("advance sync state: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("advance sync state: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, source)
	}
	return nil
}

func (s *defaultStore) Delete(ctx context.Context, source string) error {
	_, err := duckdb.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM sync_state WHERE source = ?`, source)
	if err != nil {
		return fmt.Errorf("delete sync state: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanState(row scanner) (*store.SyncState, error) {
	var (
		state  store.SyncState
		cursor sql.NullTime
	)
	if err := row.Scan(&state.Source, &state.CreatedAt, &cursor); err != nil {
		return nil, err
	}
	if cursor.Valid {
		t := cursor.Time
		state.Cursor = &t
	}
	return &state, nil
}
