package counters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/nerrad567/gray-logic-device/internal/infrastructure/database"
)

// Store is the counter access used by migration and the platform tasks.
type Store interface {
	GetCounter(ctx context.Context, key Key) (uint32, error)
	SetCounter(ctx context.Context, key Key, value uint32) error
	ClearCounter(ctx context.Context, key Key) error
}

// SQLiteStore keeps counters in the SQLite database described by cfg.
// It is not usable until Init succeeds.
type SQLiteStore struct {
	cfg database.Config

	mu sync.RWMutex
	db *database.DB

	now func() time.Time
}

// NewSQLiteStore creates a store for the given database configuration.
// Nothing is opened until Init.
func NewSQLiteStore(cfg database.Config) *SQLiteStore {
	return &SQLiteStore{
		cfg: cfg,
		now: time.Now,
	}
}

// Init opens the database and applies pending schema migrations.
// Calling Init on an open store is a no-op.
func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	db, err := database.Open(ctx, s.cfg)
	if err != nil {
		return fmt.Errorf("opening counter store: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close() //nolint:errcheck // Best effort cleanup on error path
		return fmt.Errorf("migrating counter store: %w", err)
	}

	s.db = db
	return nil
}

// Close releases the database. Safe to call on a store that was never opened.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// HealthCheck verifies the underlying database answers queries.
func (s *SQLiteStore) HealthCheck(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return ErrStoreClosed
	}
	return s.db.HealthCheck(ctx)
}

// GetCounter returns the value stored under key, or ErrNotFound.
func (s *SQLiteStore) GetCounter(ctx context.Context, key Key) (uint32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return 0, ErrStoreClosed
	}

	var value int64
	err := s.db.QueryRowContext(ctx, "SELECT value FROM counters WHERE key = ?", int64(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return 0, fmt.Errorf("reading counter %s: %w", key, err)
	}
	if value < 0 || value > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %s = %d", ErrCorrupt, key, value)
	}

	return uint32(value), nil
}

// SetCounter stores value under key, replacing any previous value.
func (s *SQLiteStore) SetCounter(ctx context.Context, key Key, value uint32) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return ErrStoreClosed
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO counters (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, int64(key), int64(value), s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing counter %s: %w", key, err)
	}
	return nil
}

// ClearCounter removes key. Clearing a missing key is not an error.
func (s *SQLiteStore) ClearCounter(ctx context.Context, key Key) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return ErrStoreClosed
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM counters WHERE key = ?", int64(key)); err != nil {
		return fmt.Errorf("clearing counter %s: %w", key, err)
	}
	return nil
}

// Increment adds one to the counter under key (starting from zero when the
// key is missing) and returns the new value. Read and write happen in one
// transaction. A counter at math.MaxUint32 is left unchanged and
// ErrOverflow is returned.
func (s *SQLiteStore) Increment(ctx context.Context, key Key) (uint32, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return 0, ErrStoreClosed
	}

	var next uint32
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		var value int64
		err := tx.QueryRowContext(ctx, "SELECT value FROM counters WHERE key = ?", int64(key)).Scan(&value)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			value = 0
		case err != nil:
			return fmt.Errorf("reading counter %s: %w", key, err)
		case value < 0 || value > math.MaxUint32:
			return fmt.Errorf("%w: %s = %d", ErrCorrupt, key, value)
		case value == math.MaxUint32:
			return fmt.Errorf("%w: %s", ErrOverflow, key)
		}

		next = uint32(value) + 1
		_, err = tx.ExecContext(ctx, `
			INSERT INTO counters (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, int64(key), int64(next), s.now().UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("writing counter %s: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}
