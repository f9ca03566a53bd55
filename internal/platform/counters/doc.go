// Package counters persists the device's small 32-bit counters (boot count,
// total operational hours) and moves counters written under retired keys to
// their current keys.
//
// Keys are uint32 values built from a key base and a small offset:
//
//	key = base<<16 | offset
//
// The legacy counter base (0xA4) held boot count at offset 0 and total
// operational hours at offset 1. Current keys live in the config base (0xA3).
//
// # Migration
//
// MigrateUint32 copies a legacy value to its new key and clears the legacy
// key. A missing legacy key is a no-op, so running it again is harmless.
// Migrator runs a versioned list of such migrations once per device and
// records progress under KeyMigrationCounter.
//
// # Thread Safety
//
// SQLiteStore is safe for concurrent use.
package counters
