package eventqueue

import (
	"context"
	"fmt"
	"time"

	"github.com/nerrad567/gray-logic-device/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-device/internal/platform/events"
)

// Publisher sends a payload to an MQTT topic.
type Publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// EventRecorder stores event telemetry.
type EventRecorder interface {
	WriteWiFiEvent(deviceID, base, kind string, sequence uint64, timestamp time.Time)
}

// PublishSink publishes each event as an Envelope on
// graylogic/device/{deviceID}/wifi/{kind}.
func PublishSink(deviceID string, pub Publisher, qos byte) Sink {
	topics := mqtt.Topics{}
	return func(_ context.Context, ev events.Event) error {
		env := NewEnvelope(deviceID, ev)
		payload, err := env.Marshal()
		if err != nil {
			return fmt.Errorf("encoding event %d: %w", ev.Sequence, err)
		}
		if err := pub.Publish(topics.DeviceWiFiEvent(deviceID, env.Kind), payload, qos, false); err != nil {
			return fmt.Errorf("publishing event %d: %w", ev.Sequence, err)
		}
		return nil
	}
}

// MetricsSink records each event with rec.
func MetricsSink(deviceID string, rec EventRecorder) Sink {
	return func(_ context.Context, ev events.Event) error {
		rec.WriteWiFiEvent(deviceID, ev.WiFi.Base.String(), kindOf(ev), ev.Sequence, ev.Timestamp)
		return nil
	}
}
