package counters

import "errors"

// Domain errors for the counters package.
//
//	if errors.Is(err, counters.ErrNotFound) {
//	    // counter was never written
//	}
var (
	// ErrNotFound is returned when a counter has never been written.
	ErrNotFound = errors.New("counters: not found")

	// ErrStoreClosed is returned when the store is used before Init or after Close.
	ErrStoreClosed = errors.New("counters: store not open")

	// ErrCorrupt is returned when a stored value does not fit in 32 bits.
	ErrCorrupt = errors.New("counters: stored value out of range")

	// ErrOverflow is returned when an increment would pass math.MaxUint32.
	// Counters never wrap; the stored value is left at the maximum.
	ErrOverflow = errors.New("counters: counter at maximum")
)
