package influxdb

import "errors"

// Sentinel errors for the telemetry sink. Write failures are not returned;
// they reach the SetOnError callback.
var (
	ErrDisabled         = errors.New("influxdb: telemetry disabled in configuration")
	ErrConnectionFailed = errors.New("influxdb: connection failed")
	ErrNotConnected     = errors.New("influxdb: telemetry sink closed")

	// ErrUnhealthy is returned when the server answers a ping but reports
	// itself not ready.
	ErrUnhealthy = errors.New("influxdb: server not healthy")
)
