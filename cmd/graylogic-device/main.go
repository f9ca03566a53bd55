// Gray Logic Device - platform manager for Wi-Fi connected devices.
//
// This is the main entry point for the device layer. It brings the
// platform up in a fixed order (counter storage, network, clock, entropy,
// generic platform, operational hours), then translates driver Wi-Fi
// notifications into application events until it is told to stop.
//
// A failed bring-up step ends the process; the supervisor restarts it.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"

	_ "github.com/nerrad567/gray-logic-device/migrations"

	"github.com/nerrad567/gray-logic-device/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-device/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-device/internal/infrastructure/influxdb"
	"github.com/nerrad567/gray-logic-device/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-device/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-device/internal/platform"
	"github.com/nerrad567/gray-logic-device/internal/platform/counters"
	"github.com/nerrad567/gray-logic-device/internal/platform/entropy"
	"github.com/nerrad567/gray-logic-device/internal/platform/eventqueue"
	"github.com/nerrad567/gray-logic-device/internal/platform/rtc"
	"github.com/nerrad567/gray-logic-device/internal/platform/timer"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// shutdownTimeout bounds the generic platform shutdown.
const shutdownTimeout = 10 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the application logic, separated from main for testability.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Gray Logic Device",
		"version", version,
		"commit", commit,
		"build_date", date,
		"legacy_ecc", platform.LegacyECCEnabled,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	clk := clock.New()

	store := counters.NewSQLiteStore(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})

	mqttClient := mqtt.New(cfg.MQTT, cfg.Device.ID)
	mqttClient.SetLogger(log.Component("mqtt"))
	mqttClient.SetOnConnect(func() {
		log.Info("MQTT connected",
			"broker", net.JoinHostPort(cfg.MQTT.Broker.Host, strconv.Itoa(cfg.MQTT.Broker.Port)),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
	})
	mqttClient.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})

	drbg := entropy.NewDRBG()
	var signer entropy.LegacySigner
	if platform.LegacyECCEnabled {
		signer = &entropy.LegacySlot{}
	}

	timers := timer.New(clk)

	queue := eventqueue.New(cfg.Events.QueueSize)
	queue.SetLogger(log.Component("eventqueue"))

	genericOpts := platform.GenericOptions{
		DeviceID:  cfg.Device.ID,
		Publish:   cfg.Events.Publish,
		QoS:       byte(cfg.MQTT.QoS), //nolint:gosec // validated to 0..2
		Store:     store,
		Queue:     queue,
		Timers:    timers,
		Transport: mqttClient,
		Logger:    log.Component("generic"),
	}
	if cfg.InfluxDB.Enabled {
		genericOpts.ConnectTelemetry = func() (platform.Telemetry, error) {
			return connectInfluxDB(cfg.InfluxDB, log)
		}
	} else {
		log.Info("InfluxDB disabled")
	}
	generic := platform.NewGeneric(genericOpts)

	mgr := platform.NewManager(platform.Options{
		Store:        store,
		Network:      mqttClient,
		Clock:        rtc.New(clk),
		Entropy:      drbg,
		Generic:      generic,
		Timers:       timers,
		Queue:        queue,
		RNG:          drbg,
		Signer:       signer,
		DeviceID:     cfg.Device.ID,
		HoursMetrics: generic,
		Logger:       log.Component("platform"),
	})
	generic.SetIngress(mgr.HandleWiFiSystemEvent)

	if err := mgr.InitStack(ctx); err != nil {
		return fmt.Errorf("initialising platform: %w", err)
	}
	log.Info("Gray Logic Device started", "device_id", cfg.Device.ID)

	if err := healthCheck(ctx, store, generic); err != nil {
		log.Warn("initial health check failed", "error", err)
	}

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := mgr.Shutdown(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}

	translator := mgr.Translator()
	log.Info("Gray Logic Device stopped",
		"events_posted", translator.Posted(),
		"events_dropped", translator.Dropped(),
	)
	return nil
}

// connectInfluxDB connects the telemetry backend and logs its write errors.
func connectInfluxDB(cfg config.InfluxDBConfig, log *logging.Logger) (platform.Telemetry, error) {
	client, err := influxdb.Connect(cfg)
	if err != nil {
		return nil, err
	}
	client.SetOnError(func(err error) {
		log.Error("InfluxDB write error", "error", err)
	})
	log.Info("InfluxDB connected",
		"url", cfg.URL,
		"org", cfg.Org,
		"bucket", cfg.Bucket,
	)
	return client, nil
}

// getConfigPath returns the config file path from GRAYLOGIC_CONFIG or the default.
func getConfigPath() string {
	if path := os.Getenv("GRAYLOGIC_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// healthCheck verifies the counter store responds and the generic platform
// still has its broker link, driver ingress and telemetry.
func healthCheck(ctx context.Context, store, generic healthChecker) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := store.HealthCheck(ctx); err != nil {
		return fmt.Errorf("counter store: %w", err)
	}
	if err := generic.HealthCheck(ctx); err != nil {
		return fmt.Errorf("platform: %w", err)
	}
	return nil
}
