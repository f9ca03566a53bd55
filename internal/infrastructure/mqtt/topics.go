package mqtt

import (
	"fmt"
	"strings"
)

// Topic prefixes for the device layer.
//
// Device topics carry translated events out:
//
//	graylogic/device/{device_id}/wifi/{kind}
//
// Each device also keeps a retained status (online/offline, with the will):
//
//	graylogic/device/{device_id}/status
//
// Driver topics carry raw vendor frames in from the driver bridge:
//
//	graylogic/driver/{base}/raw
const (
	// TopicPrefixDevice is the base for events published by a device.
	TopicPrefixDevice = "graylogic/device"

	// TopicPrefixDriver is the base for raw driver frames.
	TopicPrefixDriver = "graylogic/driver"
)

// Topics provides builders for the device layer's MQTT topics.
//
//	topics := mqtt.Topics{}
//	topic := topics.DeviceWiFiEvent("device-001", "connect")
//	// Returns: "graylogic/device/device-001/wifi/connect"
type Topics struct{}

// =============================================================================
// Device Topics
// =============================================================================

// DeviceWiFiEvent returns the topic for a translated Wi-Fi system event.
//
// Example: graylogic/device/device-001/wifi/connect
func (Topics) DeviceWiFiEvent(deviceID, kind string) string {
	return fmt.Sprintf("%s/%s/wifi/%s", TopicPrefixDevice, deviceID, kind)
}

// DeviceStatus returns the retained status topic of a device.
//
// Example: graylogic/device/device-001/status
func (Topics) DeviceStatus(deviceID string) string {
	return fmt.Sprintf("%s/%s/status", TopicPrefixDevice, deviceID)
}

// DeviceWiFiEvents returns a pattern matching every Wi-Fi event of a device.
//
// Pattern: graylogic/device/device-001/wifi/+
func (Topics) DeviceWiFiEvents(deviceID string) string {
	return fmt.Sprintf("%s/%s/wifi/+", TopicPrefixDevice, deviceID)
}

// =============================================================================
// Driver Topics
// =============================================================================

// DriverRaw returns the topic for raw frames from a driver base.
//
// Example: graylogic/driver/wifi/raw
func (Topics) DriverRaw(base string) string {
	return fmt.Sprintf("%s/%s/raw", TopicPrefixDriver, base)
}

// AllDriverRaw returns a pattern matching raw frames from every driver base.
//
// Pattern: graylogic/driver/+/raw
func (Topics) AllDriverRaw() string {
	return fmt.Sprintf("%s/+/raw", TopicPrefixDriver)
}

// ParseDriverRaw extracts the base from a raw driver topic.
// It reports false for topics that do not match DriverRaw.
func (Topics) ParseDriverRaw(topic string) (string, bool) {
	rest, ok := strings.CutPrefix(topic, TopicPrefixDriver+"/")
	if !ok {
		return "", false
	}
	base, ok := strings.CutSuffix(rest, "/raw")
	if !ok || base == "" || strings.Contains(base, "/") {
		return "", false
	}
	return base, true
}
