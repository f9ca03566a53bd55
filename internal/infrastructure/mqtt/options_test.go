package mqtt

import (
	"encoding/json"
	"testing"
)

func TestBuildClientOptions(t *testing.T) {
	tests := []struct {
		name       string
		tls        bool
		username   string
		wantScheme string
	}{
		{"plain anonymous", false, "", "tcp"},
		{"tls with auth", true, "device", "ssl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Broker.TLS = tt.tls
			cfg.Auth.Username = tt.username
			cfg.Auth.Password = "secret"

			opts := buildClientOptions(cfg)

			if len(opts.Servers) != 1 {
				t.Fatalf("Servers = %v, want one broker", opts.Servers)
			}
			if got := opts.Servers[0].Scheme; got != tt.wantScheme {
				t.Errorf("scheme = %q, want %q", got, tt.wantScheme)
			}
			if opts.ClientID != cfg.Broker.ClientID {
				t.Errorf("ClientID = %q, want %q", opts.ClientID, cfg.Broker.ClientID)
			}
			if opts.Username != tt.username {
				t.Errorf("Username = %q, want %q", opts.Username, tt.username)
			}
			if (opts.TLSConfig != nil) != tt.tls {
				t.Errorf("TLSConfig set = %v, want %v", opts.TLSConfig != nil, tt.tls)
			}
			if !opts.AutoReconnect || !opts.CleanSession {
				t.Error("AutoReconnect and CleanSession should be enabled")
			}
		})
	}
}

func TestBrokerURL(t *testing.T) {
	tests := []struct {
		name string
		host string
		tls  bool
		want string
	}{
		{"ipv4", "127.0.0.1", false, "tcp://127.0.0.1:1883"},
		{"hostname tls", "broker.local", true, "ssl://broker.local:1883"},
		{"ipv6", "::1", false, "tcp://[::1]:1883"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig().Broker
			cfg.Host = tt.host
			cfg.TLS = tt.tls

			if got := brokerURL(cfg); got != tt.want {
				t.Errorf("brokerURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigureWill(t *testing.T) {
	opts := buildClientOptions(testConfig())
	configureWill(opts, "device-42", "client-7")

	if !opts.WillEnabled || !opts.WillRetained {
		t.Error("will should be enabled and retained")
	}
	if opts.WillTopic != "graylogic/device/device-42/status" {
		t.Errorf("WillTopic = %q", opts.WillTopic)
	}

	var msg StatusMessage
	if err := json.Unmarshal(opts.WillPayload, &msg); err != nil {
		t.Fatalf("will payload is not JSON: %v", err)
	}
	if msg.Status != StatusOffline || msg.Reason != ReasonUnexpected {
		t.Errorf("will = %+v, want unexpected offline", msg)
	}
	if msg.DeviceID != "device-42" || msg.ClientID != "client-7" {
		t.Errorf("will identity = %q/%q", msg.DeviceID, msg.ClientID)
	}
}

func TestStatusPayload(t *testing.T) {
	tests := []struct {
		status, reason string
	}{
		{StatusOnline, ""},
		{StatusOffline, ReasonShutdown},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			var msg StatusMessage
			if err := json.Unmarshal(statusPayload(tt.status, tt.reason, "d1", "c1"), &msg); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if msg.Status != tt.status || msg.Reason != tt.reason {
				t.Errorf("payload = %+v", msg)
			}
			if msg.Timestamp == "" {
				t.Error("timestamp missing")
			}
		})
	}
}

func TestStatusPayload_OnlineOmitsReason(t *testing.T) {
	var raw map[string]any
	if err := json.Unmarshal(statusPayload(StatusOnline, "", "d1", "c1"), &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := raw["reason"]; ok {
		t.Error("online status carries a reason")
	}
}
