package counters

import (
	"context"
	"errors"
	"fmt"
)

// Logger is the logging interface used by Migrator.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any) {}
func (noopLogger) Warn(string, ...any) {}

// MigrateUint32 moves the value under legacy to current.
//
// When legacy is absent nothing happens. Otherwise the value is written to
// current first and legacy is cleared afterwards, so an interruption between
// the two leaves a state that the next run completes with the same value.
func MigrateUint32(ctx context.Context, s Store, legacy, current Key) error {
	value, err := s.GetCounter(ctx, legacy)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading legacy counter %s: %w", legacy, err)
	}

	if err := s.SetCounter(ctx, current, value); err != nil {
		return fmt.Errorf("writing counter %s: %w", current, err)
	}

	if err := s.ClearCounter(ctx, legacy); err != nil {
		return fmt.Errorf("clearing legacy counter %s: %w", legacy, err)
	}

	return nil
}

// counterKeyMoves lists the legacy counters and their current keys.
var counterKeyMoves = []struct {
	legacy, current Key
}{
	{LegacyKeyBootCount, KeyBootCount},
	{LegacyKeyTotalOperationalHours, KeyTotalOperationalHours},
}

// MigrateCounterConfigs moves every legacy counter to its current key.
// Each pair is attempted even if an earlier one fails.
func MigrateCounterConfigs(ctx context.Context, s Store) error {
	var errs []error
	for _, mv := range counterKeyMoves {
		if err := MigrateUint32(ctx, s, mv.legacy, mv.current); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Migration is one versioned, run-once change to the stored counters.
type Migration struct {
	Version uint32
	Name    string
	Apply   func(ctx context.Context, s Store) error
}

// DefaultMigrations returns the migrations every device runs, oldest first.
func DefaultMigrations() []Migration {
	return []Migration{
		{Version: 1, Name: "counter-keys", Apply: MigrateCounterConfigs},
	}
}

// Migrator applies migrations newer than the version stored under
// KeyMigrationCounter.
type Migrator struct {
	store      Store
	migrations []Migration
	logger     Logger
}

// NewMigrator creates a Migrator. Migrations must be sorted by Version.
func NewMigrator(s Store, migrations []Migration) *Migrator {
	return &Migrator{
		store:      s,
		migrations: migrations,
		logger:     noopLogger{},
	}
}

// SetLogger sets the logger for the migrator.
func (m *Migrator) SetLogger(logger Logger) {
	m.logger = logger
}

// Run applies pending migrations in order and returns how many ran.
//
// The stored version advances after each successful migration. A failing
// migration stops the run; it is retried on the next Run.
func (m *Migrator) Run(ctx context.Context) (int, error) {
	current, err := m.store.GetCounter(ctx, KeyMigrationCounter)
	if errors.Is(err, ErrNotFound) {
		current = 0
	} else if err != nil {
		return 0, fmt.Errorf("reading migration counter: %w", err)
	}

	applied := 0
	for _, mg := range m.migrations {
		if mg.Version <= current {
			continue
		}

		if err := mg.Apply(ctx, m.store); err != nil {
			m.logger.Warn("counter migration failed",
				"version", mg.Version,
				"name", mg.Name,
				"error", err,
			)
			return applied, fmt.Errorf("migration %d (%s): %w", mg.Version, mg.Name, err)
		}

		if err := m.store.SetCounter(ctx, KeyMigrationCounter, mg.Version); err != nil {
			return applied, fmt.Errorf("recording migration %d: %w", mg.Version, err)
		}
		current = mg.Version
		applied++

		m.logger.Info("counter migration applied", "version", mg.Version, "name", mg.Name)
	}

	return applied, nil
}
