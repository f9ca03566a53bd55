package events

import (
	"sync/atomic"
	"time"
)

// Queue accepts events without blocking. Post reports whether the event
// was accepted.
type Queue interface {
	Post(ev Event) bool
}

// Logger is the logging interface used by Translator.
type Logger interface {
	Debug(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}

// Translator turns driver notifications into posted events.
// Handle is safe to call from several goroutines.
type Translator struct {
	queue  Queue
	now    func() time.Time
	logger Logger

	seq     atomic.Uint64
	posted  atomic.Uint64
	dropped atomic.Uint64
}

// NewTranslator creates a translator posting to q.
func NewTranslator(q Queue) *Translator {
	return &Translator{
		queue:  q,
		now:    time.Now,
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the translator.
func (t *Translator) SetLogger(logger Logger) {
	t.logger = logger
}

// SetNow replaces the timestamp source.
func (t *Translator) SetNow(now func() time.Time) {
	t.now = now
}

// Handle translates the notification and posts it once. A rejected post
// is counted and logged, nothing more.
func (t *Translator) Handle(base Base, msg Message) {
	ev := Translate(base, msg)
	ev.Sequence = t.seq.Add(1)
	ev.Timestamp = t.now()

	if t.queue.Post(ev) {
		t.posted.Add(1)
		return
	}

	t.dropped.Add(1)
	t.logger.Debug("event queue rejected wifi event",
		"base", base.String(),
		"id", msg.Header.ID,
		"kind", ev.WiFi.Payload.Kind(),
		"sequence", ev.Sequence,
	)
}

// Posted returns how many events the queue accepted.
func (t *Translator) Posted() uint64 { return t.posted.Load() }

// Dropped returns how many events the queue rejected.
func (t *Translator) Dropped() uint64 { return t.dropped.Load() }
