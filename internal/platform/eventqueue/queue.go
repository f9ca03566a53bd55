// Package eventqueue is the application event queue. Producers post
// events without blocking; a single consumer hands each event to the
// registered sinks in order.
package eventqueue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/nerrad567/gray-logic-device/internal/platform/events"
)

var (
	// ErrStopped is returned by Run on a queue that has been stopped.
	ErrStopped = errors.New("eventqueue: stopped")

	// ErrAlreadyRunning is returned by Run while another Run is active.
	ErrAlreadyRunning = errors.New("eventqueue: already running")
)

// Sink consumes one event. Errors are logged by the queue and do not stop
// delivery to other sinks.
type Sink func(ctx context.Context, ev events.Event) error

// Logger is the logging interface used by Queue.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// Queue is a bounded, non-blocking event queue.
type Queue struct {
	ch   chan events.Event
	stop chan struct{}
	done chan struct{}

	mu      sync.RWMutex
	stopped bool
	running bool
	sinks   []Sink

	stopOnce sync.Once

	logger Logger

	posted    atomic.Uint64
	dropped   atomic.Uint64
	processed atomic.Uint64
	failed    atomic.Uint64
}

// New creates a queue holding up to size events. size below 1 is treated as 1.
func New(size int) *Queue {
	if size < 1 {
		size = 1
	}
	return &Queue{
		ch:     make(chan events.Event, size),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the queue.
func (q *Queue) SetLogger(logger Logger) {
	q.logger = logger
}

// AddSink registers s. Sinks run in registration order on the consumer goroutine.
func (q *Queue) AddSink(s Sink) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sinks = append(q.sinks, s)
}

// Post enqueues ev. It returns false when the queue is full or stopped.
func (q *Queue) Post(ev events.Event) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.stopped {
		q.dropped.Add(1)
		return false
	}

	select {
	case q.ch <- ev:
		q.posted.Add(1)
		return true
	default:
		q.dropped.Add(1)
		return false
	}
}

// Run delivers events to the sinks until ctx is cancelled or Stop is called.
// On Stop the events already queued are delivered before Run returns nil.
// On cancellation it returns ctx.Err() without draining. A queue runs once.
func (q *Queue) Run(ctx context.Context) error {
	if err := q.claim(); err != nil {
		return err
	}
	return q.loop(ctx)
}

// Start is Run on a new goroutine. The queue is running when Start
// returns, so a following Stop waits for queued events to be delivered.
// The returned channel receives Run's result and is then closed.
func (q *Queue) Start(ctx context.Context) (<-chan error, error) {
	if err := q.claim(); err != nil {
		return nil, err
	}
	result := make(chan error, 1)
	go func() {
		defer close(result)
		result <- q.loop(ctx)
	}()
	return result, nil
}

func (q *Queue) claim() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		return ErrStopped
	}
	if q.running {
		return ErrAlreadyRunning
	}
	q.running = true
	return nil
}

func (q *Queue) loop(ctx context.Context) error {
	defer close(q.done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-q.ch:
			q.deliver(ctx, ev)
		case <-q.stop:
			q.drain(ctx)
			return nil
		}
	}
}

// Stop rejects further posts and ends Run after the queued events are
// delivered. It waits for Run to finish if one is active.
// Safe to call more than once.
func (q *Queue) Stop() {
	q.stopOnce.Do(func() {
		q.mu.Lock()
		q.stopped = true
		running := q.running
		q.mu.Unlock()

		close(q.stop)
		if running {
			<-q.done
		}
	})
}

// Len returns the number of queued events.
func (q *Queue) Len() int { return len(q.ch) }

// Stats is a snapshot of the queue counters.
type Stats struct {
	Posted    uint64
	Dropped   uint64
	Processed uint64
	Failed    uint64
}

// Stats returns the current counters.
func (q *Queue) Stats() Stats {
	return Stats{
		Posted:    q.posted.Load(),
		Dropped:   q.dropped.Load(),
		Processed: q.processed.Load(),
		Failed:    q.failed.Load(),
	}
}

func (q *Queue) drain(ctx context.Context) {
	for {
		select {
		case ev := <-q.ch:
			q.deliver(ctx, ev)
		default:
			return
		}
	}
}

func (q *Queue) deliver(ctx context.Context, ev events.Event) {
	q.mu.RLock()
	sinks := q.sinks
	q.mu.RUnlock()

	ok := true
	for _, s := range sinks {
		if err := s(ctx, ev); err != nil {
			ok = false
			q.logger.Warn("event sink failed",
				"sequence", ev.Sequence,
				"kind", kindOf(ev),
				"error", err,
			)
		}
	}

	if ok {
		q.processed.Add(1)
	} else {
		q.failed.Add(1)
	}
	q.logger.Debug("event delivered", "sequence", ev.Sequence, "kind", kindOf(ev))
}

func kindOf(ev events.Event) string {
	if ev.WiFi.Payload == nil {
		return events.Unrecognized{}.Kind()
	}
	return ev.WiFi.Payload.Kind()
}
