package platform

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nerrad567/gray-logic-device/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-device/internal/platform/counters"
	"github.com/nerrad567/gray-logic-device/internal/platform/eventqueue"
	"github.com/nerrad567/gray-logic-device/internal/platform/events"
)

// MetricBootCount is the PHM metric reported after the boot count increments.
const MetricBootCount = "boot_count"

// BootStore increments counters and releases the store on shutdown.
type BootStore interface {
	Increment(ctx context.Context, key counters.Key) (uint32, error)
	Close() error
}

// Transport is the MQTT surface the generic platform uses.
type Transport interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Unsubscribe(topic string) error
	HasSubscription(topic string) bool
	HealthCheck(ctx context.Context) error
	Close() error
}

// Telemetry is the optional metrics backend.
type Telemetry interface {
	WritePHMMetric(deviceID string, metricName string, value float64)
	WriteWiFiEvent(deviceID, base, kind string, sequence uint64, timestamp time.Time)
	WriteQueueStats(deviceID string, processed, failed, dropped uint64)
	HealthCheck(ctx context.Context) error
	Close() error
}

// Stopper stops a background service.
type Stopper interface {
	Stop()
}

// GenericOptions wires the generic platform.
type GenericOptions struct {
	DeviceID string

	// Publish forwards translated events to MQTT.
	Publish bool
	QoS     byte

	Store     BootStore
	Queue     *eventqueue.Queue
	Timers    Stopper
	Transport Transport

	// ConnectTelemetry is nil when telemetry is disabled.
	ConnectTelemetry func() (Telemetry, error)

	Logger Logger
}

// Generic is the platform-independent part of bring-up: it counts the
// boot, connects telemetry, starts the event queue consumer and subscribes
// to driver frames. Shutdown stops everything it and the platform started.
type Generic struct {
	opts   GenericOptions
	logger Logger

	ingressMu sync.RWMutex
	ingress   func(events.Base, events.Message)

	mu         sync.RWMutex
	telemetry  Telemetry
	started    bool
	subscribed bool
	queueDone  <-chan error
}

// NewGeneric creates the generic platform.
func NewGeneric(opts GenericOptions) *Generic {
	logger := opts.Logger
	if logger == nil {
		logger = noopLogger{}
	}
	return &Generic{opts: opts, logger: logger}
}

// SetIngress sets the function that receives decoded driver frames.
// Must be called before Init for frames to be delivered.
func (g *Generic) SetIngress(fn func(events.Base, events.Message)) {
	g.ingressMu.Lock()
	defer g.ingressMu.Unlock()
	g.ingress = fn
}

func (g *Generic) handleFrame(base events.Base, msg events.Message) {
	g.ingressMu.RLock()
	fn := g.ingress
	g.ingressMu.RUnlock()

	if fn != nil {
		fn(base, msg)
	}
}

// Init counts the boot, connects telemetry, starts the event queue and
// subscribes to raw driver frames.
func (g *Generic) Init(ctx context.Context) error {
	boots, err := g.opts.Store.Increment(ctx, counters.KeyBootCount)
	if err != nil {
		return fmt.Errorf("incrementing boot count: %w", err)
	}
	g.logger.Info("boot counted", "boot_count", boots)

	if g.opts.ConnectTelemetry != nil {
		tel, err := g.opts.ConnectTelemetry()
		if err != nil {
			g.logger.Warn("telemetry unavailable, continuing without it", "error", err)
		} else {
			g.mu.Lock()
			g.telemetry = tel
			g.mu.Unlock()
			g.logger.Info("telemetry connected")
		}
	}
	g.WritePHMMetric(g.opts.DeviceID, MetricBootCount, float64(boots))

	if g.opts.Publish {
		g.opts.Queue.AddSink(eventqueue.PublishSink(g.opts.DeviceID, g.opts.Transport, g.opts.QoS))
	}
	if tel := g.getTelemetry(); tel != nil {
		g.opts.Queue.AddSink(eventqueue.MetricsSink(g.opts.DeviceID, tel))
	}

	result, err := g.opts.Queue.Start(context.WithoutCancel(ctx))
	if err != nil {
		return fmt.Errorf("starting event queue: %w", err)
	}

	g.mu.Lock()
	g.started = true
	g.queueDone = result
	g.mu.Unlock()

	topic := mqtt.Topics{}.AllDriverRaw()
	if err := g.opts.Transport.Subscribe(topic, g.opts.QoS, DriverIngress(g.handleFrame)); err != nil {
		return fmt.Errorf("subscribing to driver frames: %w", err)
	}
	g.mu.Lock()
	g.subscribed = true
	g.mu.Unlock()
	g.logger.Info("driver ingress subscribed", "topic", topic)

	return nil
}

// WritePHMMetric forwards to telemetry when it is connected.
func (g *Generic) WritePHMMetric(deviceID string, metricName string, value float64) {
	if tel := g.getTelemetry(); tel != nil {
		tel.WritePHMMetric(deviceID, metricName, value)
	}
}

func (g *Generic) getTelemetry() Telemetry {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.telemetry
}

// HealthCheck reports whether the broker link is up, driver frames are
// still subscribed and telemetry (when connected) answers.
func (g *Generic) HealthCheck(ctx context.Context) error {
	if err := g.opts.Transport.HealthCheck(ctx); err != nil {
		return fmt.Errorf("transport: %w", err)
	}

	g.mu.RLock()
	subscribed := g.subscribed
	g.mu.RUnlock()
	if subscribed && !g.opts.Transport.HasSubscription(mqtt.Topics{}.AllDriverRaw()) {
		return ErrIngressLost
	}

	if tel := g.getTelemetry(); tel != nil {
		if err := tel.HealthCheck(ctx); err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
	}
	return nil
}

// Shutdown unsubscribes driver frames, stops timers and the event queue,
// then closes the transport, telemetry and store. It attempts every step
// and joins the errors.
func (g *Generic) Shutdown(ctx context.Context) error {
	var errs []error

	g.mu.Lock()
	started, subscribed, done := g.started, g.subscribed, g.queueDone
	g.subscribed = false
	g.mu.Unlock()

	// Frames arriving after this point would be posted to a stopping queue.
	if subscribed {
		topic := mqtt.Topics{}.AllDriverRaw()
		if err := g.opts.Transport.Unsubscribe(topic); err != nil {
			g.logger.Warn("driver ingress unsubscribe failed", "topic", topic, "error", err)
		}
	}

	if g.opts.Timers != nil {
		g.opts.Timers.Stop()
	}

	g.opts.Queue.Stop()
	if started {
		select {
		case err := <-done:
			if err != nil {
				errs = append(errs, fmt.Errorf("event queue: %w", err))
			}
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("waiting for event queue: %w", ctx.Err()))
		}
	}

	stats := g.opts.Queue.Stats()
	g.logger.Info("event queue stopped",
		"posted", stats.Posted,
		"dropped", stats.Dropped,
		"processed", stats.Processed,
		"failed", stats.Failed,
	)

	if tel := g.getTelemetry(); tel != nil {
		tel.WriteQueueStats(g.opts.DeviceID, stats.Processed, stats.Failed, stats.Dropped)
		if err := tel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing telemetry: %w", err))
		}
	}

	if err := g.opts.Transport.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing transport: %w", err))
	}

	if err := g.opts.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing counter store: %w", err))
	}

	return errors.Join(errs...)
}
