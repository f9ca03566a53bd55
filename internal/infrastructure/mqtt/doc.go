// Package mqtt provides MQTT client connectivity for the Gray Logic device layer.
//
// The client is the device's network stack: bring-up starts it, translated
// Wi-Fi events leave through it, and raw driver frames arrive on it.
//
// This package manages:
//   - Connection to the broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - A retained device status on graylogic/device/{id}/status, with a will
//     that marks the device offline on unexpected disconnect
//   - Connection health monitoring
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//
// # Usage
//
//	client := mqtt.New(cfg.MQTT, cfg.Device.ID)
//	if err := client.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	err = client.Subscribe(mqtt.Topics{}.AllDriverRaw(), 1,
//	    func(topic string, payload []byte) error {
//	        log.Printf("frame on %s: %x", topic, payload)
//	        return nil
//	    })
//
//	topic := mqtt.Topics{}.DeviceWiFiEvent("device-001", "connect")
//	client.Publish(topic, envelope, 1, false)
package mqtt
