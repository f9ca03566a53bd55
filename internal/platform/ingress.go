package platform

import (
	"fmt"

	"github.com/nerrad567/gray-logic-device/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-device/internal/platform/events"
)

// DriverIngress returns an MQTT handler for graylogic/driver/{base}/raw
// that decodes each frame and passes it to handle. A base name that is not
// known is passed as events.BaseUnknown. A malformed frame is still passed
// on, salvaged by events.SalvageMessage, and its decode error is returned
// for the MQTT layer to log.
func DriverIngress(handle func(events.Base, events.Message)) mqtt.MessageHandler {
	topics := mqtt.Topics{}
	return func(topic string, payload []byte) error {
		name, ok := topics.ParseDriverRaw(topic)
		if !ok {
			return fmt.Errorf("unexpected driver topic %q", topic)
		}

		base, err := events.ParseBase(name)
		if err != nil {
			base = events.BaseUnknown
		}

		msg, err := events.ParseMessage(payload)
		if err != nil {
			handle(base, events.SalvageMessage(payload))
			return fmt.Errorf("driver frame on %s: %w", topic, err)
		}

		handle(base, msg)
		return nil
	}
}
