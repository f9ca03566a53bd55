package counters

import "fmt"

// Key identifies a persisted counter.
type Key uint32

// Key bases.
const (
	// ConfigKeyBase holds the current configuration counters.
	ConfigKeyBase uint8 = 0xA3

	// LegacyCounterKeyBase held counters before they moved to ConfigKeyBase.
	LegacyCounterKeyBase uint8 = 0xA4
)

// Current counter keys.
const (
	KeyBootCount             = Key(ConfigKeyBase)<<16 | 0x0B
	KeyTotalOperationalHours = Key(ConfigKeyBase)<<16 | 0x0C
	KeyMigrationCounter      = Key(ConfigKeyBase)<<16 | 0x1F
)

// Legacy counter keys, read only by migration.
const (
	LegacyKeyBootCount             = Key(LegacyCounterKeyBase)<<16 | 0x00
	LegacyKeyTotalOperationalHours = Key(LegacyCounterKeyBase)<<16 | 0x01
)

// MakeKey builds a key from a base and an offset within it.
func MakeKey(base uint8, offset uint16) Key {
	return Key(uint32(base)<<16 | uint32(offset))
}

// Base returns the key base.
func (k Key) Base() uint8 {
	return uint8(k >> 16)
}

// Offset returns the offset within the base.
func (k Key) Offset() uint16 {
	return uint16(k)
}

// String formats the key as base:offset, e.g. "a3:000b".
func (k Key) String() string {
	return fmt.Sprintf("%02x:%04x", k.Base(), k.Offset())
}
