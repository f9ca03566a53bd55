package mqtt

import "testing"

func TestTopicBuilders(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"DeviceWiFiEvent", topics.DeviceWiFiEvent("device-001", "connect"), "graylogic/device/device-001/wifi/connect"},
		{"DeviceWiFiEvents", topics.DeviceWiFiEvents("device-001"), "graylogic/device/device-001/wifi/+"},
		{"DriverRaw", topics.DriverRaw("ip"), "graylogic/driver/ip/raw"},
		{"AllDriverRaw", topics.AllDriverRaw(), "graylogic/driver/+/raw"},
		{"DeviceStatus", topics.DeviceStatus("device-001"), "graylogic/device/device-001/status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, want %q", tt.got, tt.expected)
			}
		})
	}
}

func TestParseDriverRaw(t *testing.T) {
	tests := []struct {
		topic    string
		wantBase string
		wantOK   bool
	}{
		{"graylogic/driver/wifi/raw", "wifi", true},
		{"graylogic/driver/ip/raw", "ip", true},
		{"graylogic/driver//raw", "", false},
		{"graylogic/driver/wifi/extra/raw", "", false},
		{"graylogic/driver/wifi/state", "", false},
		{"graylogic/device/wifi/raw", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			base, ok := Topics{}.ParseDriverRaw(tt.topic)
			if base != tt.wantBase || ok != tt.wantOK {
				t.Errorf("ParseDriverRaw(%q) = %q, %v; want %q, %v", tt.topic, base, ok, tt.wantBase, tt.wantOK)
			}
		})
	}
}
