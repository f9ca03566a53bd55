package counters

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestMigrateCounterConfigs_MovesLegacyBootCount(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SetCounter(ctx, LegacyKeyBootCount, 5); err != nil {
		t.Fatalf("SetCounter() error = %v", err)
	}

	if err := MigrateCounterConfigs(ctx, s); err != nil {
		t.Fatalf("MigrateCounterConfigs() error = %v", err)
	}

	got, err := s.GetCounter(ctx, KeyBootCount)
	if err != nil {
		t.Fatalf("GetCounter(new) error = %v", err)
	}
	if got != 5 {
		t.Errorf("new boot count = %d, want 5", got)
	}

	if _, err := s.GetCounter(ctx, LegacyKeyBootCount); !errors.Is(err, ErrNotFound) {
		t.Errorf("legacy key after migration error = %v, want ErrNotFound", err)
	}

	// The operational hours pair had no legacy value and stays absent.
	if _, err := s.GetCounter(ctx, KeyTotalOperationalHours); !errors.Is(err, ErrNotFound) {
		t.Errorf("operational hours error = %v, want ErrNotFound", err)
	}

	// Second run is a no-op.
	if err := MigrateCounterConfigs(ctx, s); err != nil {
		t.Fatalf("second MigrateCounterConfigs() error = %v", err)
	}
	got, err = s.GetCounter(ctx, KeyBootCount)
	if err != nil {
		t.Fatalf("GetCounter(new) error = %v", err)
	}
	if got != 5 {
		t.Errorf("new boot count after second run = %d, want 5", got)
	}
}

func TestMigrateCounterConfigs_Idempotent(t *testing.T) {
	tests := []struct {
		name   string
		legacy map[Key]uint32
		want   map[Key]uint32
	}{
		{
			name:   "no legacy keys",
			legacy: nil,
			want:   map[Key]uint32{},
		},
		{
			name:   "both legacy keys",
			legacy: map[Key]uint32{LegacyKeyBootCount: 9, LegacyKeyTotalOperationalHours: 1200},
			want:   map[Key]uint32{KeyBootCount: 9, KeyTotalOperationalHours: 1200},
		},
		{
			name:   "hours only",
			legacy: map[Key]uint32{LegacyKeyTotalOperationalHours: 17},
			want:   map[Key]uint32{KeyTotalOperationalHours: 17},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newMemStore()
			for k, v := range tt.legacy {
				s.values[k] = v
			}
			ctx := context.Background()

			for run := 1; run <= 2; run++ {
				if err := MigrateCounterConfigs(ctx, s); err != nil {
					t.Fatalf("run %d: MigrateCounterConfigs() error = %v", run, err)
				}
				if len(s.values) != len(tt.want) {
					t.Fatalf("run %d: store = %v, want %v", run, s.values, tt.want)
				}
				for k, v := range tt.want {
					if s.values[k] != v {
						t.Errorf("run %d: %s = %d, want %d", run, k, s.values[k], v)
					}
				}
			}
		})
	}
}

func TestMigrateUint32_ReadFailureLeavesLegacy(t *testing.T) {
	s := newMemStore()
	s.values[LegacyKeyBootCount] = 5
	s.getErr = errors.New("flash read error")

	err := MigrateUint32(context.Background(), s, LegacyKeyBootCount, KeyBootCount)
	if err == nil {
		t.Fatal("MigrateUint32() expected error")
	}
	if _, ok := s.values[KeyBootCount]; ok {
		t.Error("new key written despite read failure")
	}
	if s.values[LegacyKeyBootCount] != 5 {
		t.Error("legacy key changed despite read failure")
	}
}

func TestMigrateUint32_WriteFailureKeepsLegacy(t *testing.T) {
	s := newMemStore()
	s.values[LegacyKeyBootCount] = 5
	s.setErr = errors.New("flash full")

	if err := MigrateUint32(context.Background(), s, LegacyKeyBootCount, KeyBootCount); err == nil {
		t.Fatal("MigrateUint32() expected error")
	}
	if s.values[LegacyKeyBootCount] != 5 {
		t.Error("legacy key must survive a failed write so the next run can retry")
	}
}

func TestMigrator_RunsOnce(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	calls := 0
	migrations := []Migration{
		{Version: 1, Name: "first", Apply: func(context.Context, Store) error { calls++; return nil }},
		{Version: 2, Name: "second", Apply: func(context.Context, Store) error { calls++; return nil }},
	}

	m := NewMigrator(s, migrations)
	applied, err := m.Run(ctx)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if applied != 2 || calls != 2 {
		t.Errorf("first Run() applied=%d calls=%d, want 2 and 2", applied, calls)
	}

	version, err := s.GetCounter(ctx, KeyMigrationCounter)
	if err != nil {
		t.Fatalf("GetCounter(migration) error = %v", err)
	}
	if version != 2 {
		t.Errorf("migration counter = %d, want 2", version)
	}

	applied, err = m.Run(ctx)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if applied != 0 || calls != 2 {
		t.Errorf("second Run() applied=%d calls=%d, want 0 and 2", applied, calls)
	}
}

func TestMigrator_StopsAtFailure(t *testing.T) {
	s := newMemStore()
	ctx := context.Background()
	boom := errors.New("boom")

	thirdRan := false
	m := NewMigrator(s, []Migration{
		{Version: 1, Name: "ok", Apply: func(context.Context, Store) error { return nil }},
		{Version: 2, Name: "broken", Apply: func(context.Context, Store) error { return boom }},
		{Version: 3, Name: "later", Apply: func(context.Context, Store) error { thirdRan = true; return nil }},
	})

	applied, err := m.Run(ctx)
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want boom", err)
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	if thirdRan {
		t.Error("migration after the failing one must not run")
	}
	if s.values[KeyMigrationCounter] != 1 {
		t.Errorf("migration counter = %d, want 1", s.values[KeyMigrationCounter])
	}
}

func TestMigrator_DefaultMigrations(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SetCounter(ctx, LegacyKeyTotalOperationalHours, 321); err != nil {
		t.Fatalf("SetCounter() error = %v", err)
	}

	if _, err := NewMigrator(s, DefaultMigrations()).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := s.GetCounter(ctx, KeyTotalOperationalHours)
	if err != nil {
		t.Fatalf("GetCounter() error = %v", err)
	}
	if got != 321 {
		t.Errorf("operational hours = %d, want 321", got)
	}
}

// memStore is an in-memory Store with injectable failures.
type memStore struct {
	mu     sync.Mutex
	values map[Key]uint32
	getErr error
	setErr error
}

func newMemStore() *memStore {
	return &memStore{values: make(map[Key]uint32)}
}

func (m *memStore) GetCounter(_ context.Context, key Key) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return 0, m.getErr
	}
	v, ok := m.values[key]
	if !ok {
		return 0, ErrNotFound
	}
	return v, nil
}

func (m *memStore) SetCounter(_ context.Context, key Key, value uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *memStore) ClearCounter(_ context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
