package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement names written by the device layer.
const (
	measurementPHM        = "phm"
	measurementWiFiEvents = "wifi_events"
	measurementQueue      = "event_queue"
)

// WritePHMMetric writes a Predictive Health Monitoring measurement.
//
// Used for tracking device health indicators like operational hours and
// boot counts.
//
// Parameters:
//   - deviceID: Device identifier
//   - metricName: PHM metric (e.g., "operational_hours", "boot_count")
//   - value: The metric value
func (c *Client) WritePHMMetric(deviceID string, metricName string, value float64) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(phmPoint(deviceID, metricName, value, time.Now()))
}

// WriteWiFiEvent records one translated Wi-Fi system event.
//
// Each event is a point with count=1 tagged by base and kind, so event
// volume per kind can be summed over any window.
//
// Parameters:
//   - deviceID: Device identifier
//   - base: Driver base ("wifi" or "ip")
//   - kind: Payload kind (e.g., "connect", "unrecognized")
//   - sequence: Translator sequence number
//   - timestamp: When the event was translated
func (c *Client) WriteWiFiEvent(deviceID, base, kind string, sequence uint64, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(wifiEventPoint(deviceID, base, kind, sequence, timestamp))
}

// WriteQueueStats records event queue counters.
func (c *Client) WriteQueueStats(deviceID string, processed, failed, dropped uint64) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(queueStatsPoint(deviceID, processed, failed, dropped, time.Now()))
}

func phmPoint(deviceID, metricName string, value float64, ts time.Time) *write.Point {
	return write.NewPoint(
		measurementPHM,
		map[string]string{
			"device_id": deviceID,
			"metric":    metricName,
		},
		map[string]interface{}{
			"value": value,
		},
		ts,
	)
}

func wifiEventPoint(deviceID, base, kind string, sequence uint64, ts time.Time) *write.Point {
	return write.NewPoint(
		measurementWiFiEvents,
		map[string]string{
			"device_id": deviceID,
			"base":      base,
			"kind":      kind,
		},
		map[string]interface{}{
			"count":    1,
			"sequence": sequence,
		},
		ts,
	)
}

func queueStatsPoint(deviceID string, processed, failed, dropped uint64, ts time.Time) *write.Point {
	return write.NewPoint(
		measurementQueue,
		map[string]string{
			"device_id": deviceID,
		},
		map[string]interface{}{
			"processed": processed,
			"failed":    failed,
			"dropped":   dropped,
		},
		ts,
	)
}
