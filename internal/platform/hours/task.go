// Package hours keeps the device's total operational hours counter.
//
// A Task re-arms itself every Period. Each tick reads the counter, writes
// it back incremented by one and schedules the next tick. A tick whose read
// or write fails is logged and skipped; the schedule continues. The counter
// stops at math.MaxUint32 rather than wrapping.
package hours

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"time"

	"github.com/nerrad567/gray-logic-device/internal/platform/counters"
	"github.com/nerrad567/gray-logic-device/internal/platform/timer"
)

// Period is the interval between increments.
const Period = time.Hour

// storeTimeout bounds one read-modify-write of the counter.
const storeTimeout = 5 * time.Second

// MetricOperationalHours is the PHM metric name reported after each increment.
const MetricOperationalHours = "operational_hours"

// State is the task's lifecycle state.
type State int32

// Task states. There is no terminal state.
const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// TimerService schedules one-shot callbacks.
type TimerService interface {
	StartTimer(d time.Duration, cb timer.Callback, userData any) error
}

// Store reads and writes counters.
type Store interface {
	GetCounter(ctx context.Context, key counters.Key) (uint32, error)
	SetCounter(ctx context.Context, key counters.Key, value uint32) error
}

// MetricsSink receives the new counter value after each increment.
type MetricsSink interface {
	WritePHMMetric(deviceID string, metricName string, value float64)
}

// Logger is the logging interface used by Task.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Task increments counters.KeyTotalOperationalHours once per Period.
type Task struct {
	store  Store
	timers TimerService
	logger Logger

	metrics  MetricsSink
	deviceID string

	state atomic.Int32
}

// New creates an idle task. Nothing is scheduled until Arm.
func New(store Store, timers TimerService) *Task {
	return &Task{
		store:  store,
		timers: timers,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the task.
func (t *Task) SetLogger(logger Logger) {
	t.logger = logger
}

// SetMetrics reports each new value to sink under deviceID.
func (t *Task) SetMetrics(deviceID string, sink MetricsSink) {
	t.deviceID = deviceID
	t.metrics = sink
}

// State returns the current state.
func (t *Task) State() State {
	return State(t.state.Load())
}

// Arm schedules the next tick one Period from now.
func (t *Task) Arm() error {
	return t.timers.StartTimer(Period, t.onTimer, nil)
}

func (t *Task) onTimer(any) {
	t.tick()
}

// tick performs one increment and re-arms.
func (t *Task) tick() {
	t.state.Store(int32(StateRunning))
	defer t.state.Store(int32(StateIdle))

	t.increment()

	if err := t.Arm(); err != nil {
		if errors.Is(err, timer.ErrStopped) {
			t.logger.Info("operational hours timer stopped")
			return
		}
		t.logger.Error("failed to re-arm operational hours timer", "error", err)
	}
}

func (t *Task) increment() {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	count, err := t.store.GetCounter(ctx, counters.KeyTotalOperationalHours)
	switch {
	case errors.Is(err, counters.ErrNotFound):
		count = 0
	case err != nil:
		t.logger.Error("failed to read operational hours", "error", err)
		return
	}

	if count == math.MaxUint32 {
		t.logger.Error("operational hours not incremented", "value", count, "error", counters.ErrOverflow)
		return
	}

	next := count + 1
	if err := t.store.SetCounter(ctx, counters.KeyTotalOperationalHours, next); err != nil {
		t.logger.Error("failed to write operational hours", "value", next, "error", err)
		return
	}

	if t.metrics != nil {
		t.metrics.WritePHMMetric(t.deviceID, MetricOperationalHours, float64(next))
	}
}
