// Package influxdb provides InfluxDB connectivity for the Gray Logic device layer.
//
// It wraps the official influxdb-client-go v2 library for connection
// management, metric writing, and health monitoring.
//
// # Purpose
//
// This package handles time-series data for:
//   - Predictive Health Monitoring (PHM) metrics such as operational hours
//   - Per-kind Wi-Fi event counts
//   - Event queue throughput
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.WritePHMMetric("device-001", "operational_hours", 1234)
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are delivered via a
// callback. Connection and health check errors are returned directly.
package influxdb
