// Package rtc provides the device's real-time clock.
package rtc

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// ErrClockUnavailable is returned by Init when the clock reports a time
// before MinValidTime, which means it was never set.
var ErrClockUnavailable = errors.New("rtc: clock unavailable")

// MinValidTime is the earliest time a set clock can report.
var MinValidTime = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// Clock is the real-time clock. It must be initialised before Now is used.
type Clock struct {
	clock clock.Clock

	mu      sync.RWMutex
	started time.Time
	ready   bool
}

// New creates a real-time clock over clk. A nil clk uses the system clock.
func New(clk clock.Clock) *Clock {
	if clk == nil {
		clk = clock.New()
	}
	return &Clock{clock: clk}
}

// Init checks the clock holds a plausible time and records the start instant.
// Calling Init again re-checks but keeps the first start instant.
func (c *Clock) Init() error {
	now := c.clock.Now()
	if now.Before(MinValidTime) {
		return fmt.Errorf("%w: reads %s", ErrClockUnavailable, now.UTC().Format(time.RFC3339))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ready {
		c.started = now
		c.ready = true
	}
	return nil
}

// Ready reports whether Init has succeeded.
func (c *Clock) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// Now returns the current time.
func (c *Clock) Now() time.Time {
	return c.clock.Now()
}

// Uptime returns the time since Init, or zero before Init.
func (c *Clock) Uptime() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.ready {
		return 0
	}
	return c.clock.Since(c.started)
}
