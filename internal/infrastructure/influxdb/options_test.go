package influxdb

import (
	"testing"

	"github.com/nerrad567/gray-logic-device/internal/infrastructure/config"
)

func TestClientOptions(t *testing.T) {
	tests := []struct {
		name          string
		batch, flush  int
		wantBatch     uint
		wantFlushMsec uint
	}{
		{"configured", 50, 2, 50, 2000},
		{"zero uses defaults", 0, 0, defaultBatchSize, 10000},
		{"negative uses defaults", -5, -1, defaultBatchSize, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := clientOptions(config.InfluxDBConfig{BatchSize: tt.batch, FlushInterval: tt.flush})
			if got := opts.BatchSize(); got != tt.wantBatch {
				t.Errorf("BatchSize() = %d, want %d", got, tt.wantBatch)
			}
			if got := opts.FlushInterval(); got != tt.wantFlushMsec {
				t.Errorf("FlushInterval() = %d, want %d", got, tt.wantFlushMsec)
			}
		})
	}
}
