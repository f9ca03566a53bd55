package eventqueue

import (
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/nerrad567/gray-logic-device/internal/platform/events"
)

// Envelope is the JSON form of an event published on MQTT.
type Envelope struct {
	ID         string         `json:"id"`
	Sequence   uint64         `json:"sequence"`
	Timestamp  string         `json:"timestamp"`
	DeviceID   string         `json:"device_id"`
	Type       string         `json:"type"`
	Base       string         `json:"base"`
	Kind       string         `json:"kind"`
	PayloadHex string         `json:"payload_hex,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

// NewEnvelope wraps ev for deviceID under a fresh UUID.
func NewEnvelope(deviceID string, ev events.Event) Envelope {
	return Envelope{
		ID:         uuid.NewString(),
		Sequence:   ev.Sequence,
		Timestamp:  ev.Timestamp.UTC().Format(time.RFC3339Nano),
		DeviceID:   deviceID,
		Type:       ev.Type.String(),
		Base:       ev.WiFi.Base.String(),
		Kind:       kindOf(ev),
		PayloadHex: hex.EncodeToString(events.Bytes(ev.WiFi.Payload)),
		Details:    events.Details(ev.WiFi.Payload),
	}
}

// Marshal encodes the envelope as JSON.
func (e Envelope) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
