package platform

import (
	"context"
	"sync"
	"time"

	"github.com/nerrad567/gray-logic-device/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-device/internal/platform/counters"
	"github.com/nerrad567/gray-logic-device/internal/platform/entropy"
	"github.com/nerrad567/gray-logic-device/internal/platform/events"
	"github.com/nerrad567/gray-logic-device/internal/platform/timer"
)

// callLog records the order collaborators are called in.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (c *callLog) add(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, name)
}

func (c *callLog) list() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

type mockStore struct {
	log     *callLog
	initErr error
	getErr  error
	incErr  error

	mu     sync.Mutex
	values map[counters.Key]uint32
	closed bool
}

func newMockStore(log *callLog) *mockStore {
	return &mockStore{log: log, values: make(map[counters.Key]uint32)}
}

func (s *mockStore) Init(context.Context) error {
	s.log.add(StepStorage)
	return s.initErr
}

func (s *mockStore) GetCounter(_ context.Context, key counters.Key) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return 0, s.getErr
	}
	v, ok := s.values[key]
	if !ok {
		return 0, counters.ErrNotFound
	}
	return v, nil
}

func (s *mockStore) SetCounter(_ context.Context, key counters.Key, v uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = v
	return nil
}

func (s *mockStore) ClearCounter(_ context.Context, key counters.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *mockStore) Increment(_ context.Context, key counters.Key) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.incErr != nil {
		return 0, s.incErr
	}
	s.values[key]++
	return s.values[key], nil
}

func (s *mockStore) value(key counters.Key) (uint32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *mockStore) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *mockStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

type mockNetwork struct {
	log *callLog
	err error
}

func (n *mockNetwork) Start() error {
	n.log.add(StepNetwork)
	return n.err
}

type mockClock struct {
	log *callLog
	err error
}

func (c *mockClock) Init() error {
	c.log.add(StepClock)
	return c.err
}

type mockEntropy struct {
	log       *callLog
	err       error
	threshold int
	source    entropy.SourceFunc
}

func (e *mockEntropy) AddEntropySource(fn entropy.SourceFunc, threshold int) error {
	e.log.add(StepEntropy)
	e.source = fn
	e.threshold = threshold
	return e.err
}

type mockSigner struct {
	log *callLog
	err error
	fn  entropy.RNGFunc
}

func (s *mockSigner) SetRNG(fn entropy.RNGFunc) error {
	s.log.add(StepRNGBridge)
	if s.err != nil {
		return s.err
	}
	s.fn = fn
	return nil
}

type mockGenerator struct{}

func (mockGenerator) GetBytes(dst []byte) error {
	for i := range dst {
		dst[i] = 0x5A
	}
	return nil
}

type mockGeneric struct {
	log         *callLog
	err         error
	shutdownErr error
	shutdowns   int
}

func (g *mockGeneric) Init(context.Context) error {
	g.log.add(StepGeneric)
	return g.err
}

func (g *mockGeneric) Shutdown(context.Context) error {
	g.shutdowns++
	return g.shutdownErr
}

type mockTimers struct {
	log       *callLog
	err       error
	mu        sync.Mutex
	pending   []time.Duration
	callbacks []timer.Callback
	stopped   bool
}

func (m *mockTimers) StartTimer(d time.Duration, cb timer.Callback, _ any) error {
	m.log.add(StepOperationalHours)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.pending = append(m.pending, d)
	m.callbacks = append(m.callbacks, cb)
	return nil
}

// fire runs the most recently scheduled callback.
func (m *mockTimers) fire() {
	m.mu.Lock()
	cb := m.callbacks[len(m.callbacks)-1]
	m.mu.Unlock()
	cb(nil)
}

func (m *mockTimers) isStopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

func (m *mockTimers) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

type mockQueue struct {
	mu     sync.Mutex
	posted []events.Event
	accept bool
}

func (q *mockQueue) Post(ev events.Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.posted = append(q.posted, ev)
	return q.accept
}

func (q *mockQueue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.posted)
}

// mockTransport follows the MockMQTTClient pattern: it records publishes
// and subscriptions and can deliver messages to subscribed handlers.
type mockTransport struct {
	mu        sync.Mutex
	published []string
	handlers  map[string]mqtt.MessageHandler
	subErr    error
	unsubErr  error
	healthErr error
	unsubbed  []string
	closed    bool
}

func newMockTransport() *mockTransport {
	return &mockTransport{handlers: make(map[string]mqtt.MessageHandler)}
}

func (m *mockTransport) Publish(topic string, _ []byte, _ byte, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, topic)
	return nil
}

func (m *mockTransport) Subscribe(topic string, _ byte, handler mqtt.MessageHandler) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subErr != nil {
		return m.subErr
	}
	m.handlers[topic] = handler
	return nil
}

func (m *mockTransport) Unsubscribe(topic string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unsubbed = append(m.unsubbed, topic)
	delete(m.handlers, topic)
	return m.unsubErr
}

func (m *mockTransport) HasSubscription(topic string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.handlers[topic]
	return ok
}

func (m *mockTransport) HealthCheck(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.healthErr
}

func (m *mockTransport) unsubscribed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.unsubbed...)
}

func (m *mockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockTransport) deliver(pattern, topic string, payload []byte) error {
	m.mu.Lock()
	h := m.handlers[pattern]
	m.mu.Unlock()
	return h(topic, payload)
}

func (m *mockTransport) topics() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.published...)
}

type mockTelemetry struct {
	mu        sync.Mutex
	phm       map[string]float64
	events    int
	stats     int
	healthErr error
	closed    bool
}

func newMockTelemetry() *mockTelemetry {
	return &mockTelemetry{phm: make(map[string]float64)}
}

func (m *mockTelemetry) WritePHMMetric(_ string, metric string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phm[metric] = value
}

func (m *mockTelemetry) WriteWiFiEvent(string, string, string, uint64, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events++
}

func (m *mockTelemetry) WriteQueueStats(string, uint64, uint64, uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats++
}

func (m *mockTelemetry) metric(name string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.phm[name]
	return v, ok
}

func (m *mockTelemetry) HealthCheck(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.healthErr
}

func (m *mockTelemetry) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) add(level string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, level)
}

func (l *recordingLogger) Debug(string, ...any) { l.add("debug") }
func (l *recordingLogger) Info(string, ...any)  { l.add("info") }
func (l *recordingLogger) Warn(string, ...any)  { l.add("warn") }
func (l *recordingLogger) Error(string, ...any) { l.add("error") }

func (l *recordingLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.entries {
		if e == level {
			n++
		}
	}
	return n
}
