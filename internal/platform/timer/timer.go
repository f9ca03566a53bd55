// Package timer runs one-shot callbacks after a delay.
//
// The service is backed by a clock.Clock so tests can drive it with
// clock.NewMock.
package timer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

var (
	// ErrStopped is returned by StartTimer after Stop.
	ErrStopped = errors.New("timer: service stopped")

	// ErrNilCallback is returned when StartTimer is given no callback.
	ErrNilCallback = errors.New("timer: nil callback")

	// ErrInvalidDuration is returned for a negative delay.
	ErrInvalidDuration = errors.New("timer: negative duration")
)

// Callback is invoked on the service's goroutine with the userData that
// was passed to StartTimer.
type Callback func(userData any)

// Service schedules one-shot timers.
type Service struct {
	clock clock.Clock

	mu      sync.Mutex
	timers  map[uint64]*clock.Timer
	nextID  uint64
	stopped bool
}

// New creates a timer service on clk. A nil clk uses the wall clock.
func New(clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.New()
	}
	return &Service{
		clock:  clk,
		timers: make(map[uint64]*clock.Timer),
	}
}

// StartTimer runs cb(userData) once, d after the call.
func (s *Service) StartTimer(d time.Duration, cb Callback, userData any) error {
	if cb == nil {
		return ErrNilCallback
	}
	if d < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDuration, d)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrStopped
	}

	id := s.nextID
	s.nextID++
	s.timers[id] = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		_, live := s.timers[id]
		delete(s.timers, id)
		s.mu.Unlock()

		if live {
			cb(userData)
		}
	})

	return nil
}

// Pending returns the number of timers that have not fired yet.
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels all pending timers and rejects new ones.
// Safe to call more than once.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
