package entropy

import "errors"

// Domain errors for the entropy package.
var (
	// ErrTooManySources is returned when MaxSources sources are already registered.
	ErrTooManySources = errors.New("entropy: too many sources")

	// ErrInvalidThreshold is returned for a threshold outside 1..MaxThreshold.
	ErrInvalidThreshold = errors.New("entropy: invalid threshold")

	// ErrSourceFailed is returned when a source errors or stops producing bytes
	// before reaching its threshold.
	ErrSourceFailed = errors.New("entropy: source failed")

	// ErrNotSeeded is returned when output is requested with no source registered.
	ErrNotSeeded = errors.New("entropy: generator not seeded")

	// ErrSlotOccupied is returned when an RNG is already installed in a LegacySlot.
	ErrSlotOccupied = errors.New("entropy: rng slot already set")

	// ErrNilRNG is returned when a nil RNG is installed.
	ErrNilRNG = errors.New("entropy: nil rng")
)
