package platform

import (
	"context"
	"time"

	"github.com/nerrad567/gray-logic-device/internal/platform/counters"
	"github.com/nerrad567/gray-logic-device/internal/platform/entropy"
	"github.com/nerrad567/gray-logic-device/internal/platform/timer"
)

// CounterStore is the persistent counter store.
type CounterStore interface {
	counters.Store
	Init(ctx context.Context) error
}

// NetworkStack starts the network task loop.
type NetworkStack interface {
	Start() error
}

// RealTimeClock is the device clock.
type RealTimeClock interface {
	Init() error
}

// EntropyRegistrar accepts entropy sources for the crypto subsystem.
type EntropyRegistrar interface {
	AddEntropySource(fn entropy.SourceFunc, threshold int) error
}

// TimerService schedules one-shot callbacks.
type TimerService interface {
	StartTimer(d time.Duration, cb timer.Callback, userData any) error
}

// GenericPlatform is the platform-independent bring-up and teardown.
type GenericPlatform interface {
	Init(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Logger is the logging interface used by the platform packages.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
