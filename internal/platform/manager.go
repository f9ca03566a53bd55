package platform

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nerrad567/gray-logic-device/internal/platform/counters"
	"github.com/nerrad567/gray-logic-device/internal/platform/entropy"
	"github.com/nerrad567/gray-logic-device/internal/platform/events"
	"github.com/nerrad567/gray-logic-device/internal/platform/hours"
)

// Step names, in bring-up order.
const (
	StepStorage          = "storage"
	StepNetwork          = "network"
	StepClock            = "clock"
	StepEntropy          = "entropy"
	StepRNGBridge        = "rng-bridge"
	StepGeneric          = "generic"
	StepOperationalHours = "operational-hours"
)

// Options wires the manager's collaborators.
type Options struct {
	Store   CounterStore
	Network NetworkStack
	Clock   RealTimeClock
	Entropy EntropyRegistrar
	Generic GenericPlatform
	Timers  TimerService
	Queue   events.Queue

	// EntropySource is registered with Entropy. Defaults to entropy.PlatformSource.
	EntropySource entropy.SourceFunc

	// RNG and Signer are used only when LegacyECCEnabled.
	RNG    entropy.Generator
	Signer entropy.LegacySigner

	// DeviceID and HoursMetrics receive each operational-hours value. Optional.
	DeviceID     string
	HoursMetrics hours.MetricsSink

	Logger Logger
}

// Manager owns device bring-up and the Wi-Fi event path.
type Manager struct {
	opts      Options
	logger    Logger
	legacyECC bool

	seq        *Sequencer
	translator *events.Translator
	hours      *hours.Task
	bridge     *entropy.Bridge

	mu          sync.Mutex
	initialised bool
}

// NewManager creates a manager. Nothing runs until InitStack.
func NewManager(opts Options) *Manager {
	if opts.EntropySource == nil {
		opts.EntropySource = entropy.PlatformSource
	}

	logger := opts.Logger
	if logger == nil {
		logger = noopLogger{}
	}

	seq := NewSequencer()
	seq.SetLogger(logger)

	translator := events.NewTranslator(opts.Queue)
	translator.SetLogger(logger)

	task := hours.New(opts.Store, opts.Timers)
	task.SetLogger(logger)
	if opts.HoursMetrics != nil {
		task.SetMetrics(opts.DeviceID, opts.HoursMetrics)
	}

	return &Manager{
		opts:       opts,
		logger:     logger,
		legacyECC:  LegacyECCEnabled,
		seq:        seq,
		translator: translator,
		hours:      task,
	}
}

// InitStack runs the bring-up steps once. The first failure is returned
// and earlier steps are left in place; the caller restarts the process.
// A second call returns ErrAlreadyInitialised without running any step.
func (m *Manager) InitStack(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialised {
		return ErrAlreadyInitialised
	}
	m.initialised = true

	return m.seq.Run(ctx, m.steps())
}

// steps builds the bring-up list.
func (m *Manager) steps() []Step {
	steps := []Step{
		{Name: StepStorage, Run: m.initStorage},
		{Name: StepNetwork, Run: m.initNetwork},
		{Name: StepClock, Run: m.initClock},
		{Name: StepEntropy, Run: m.initEntropy},
	}
	if m.legacyECC {
		steps = append(steps, Step{Name: StepRNGBridge, Run: m.initRNGBridge})
	}
	return append(steps,
		Step{Name: StepGeneric, Run: m.opts.Generic.Init},
		Step{Name: StepOperationalHours, Run: m.armHours},
	)
}

func (m *Manager) initStorage(ctx context.Context) error {
	if err := m.opts.Store.Init(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}

	migrator := counters.NewMigrator(m.opts.Store, counters.DefaultMigrations())
	migrator.SetLogger(m.logger)
	if n, err := migrator.Run(ctx); err != nil {
		m.logger.Warn("legacy counter migration incomplete", "applied", n, "error", err)
	} else if n > 0 {
		m.logger.Info("legacy counter migration complete", "applied", n)
	}
	return nil
}

func (m *Manager) initNetwork(context.Context) error {
	if err := m.opts.Network.Start(); err != nil {
		return fmt.Errorf("%w: starting network stack: %w", ErrUpstream, err)
	}
	return nil
}

func (m *Manager) initClock(context.Context) error {
	if err := m.opts.Clock.Init(); err != nil {
		return fmt.Errorf("%w: initialising clock: %w", ErrUpstream, err)
	}
	return nil
}

func (m *Manager) initEntropy(context.Context) error {
	if err := m.opts.Entropy.AddEntropySource(m.opts.EntropySource, entropy.DefaultThreshold); err != nil {
		return fmt.Errorf("%w: registering entropy source: %w", ErrUpstream, err)
	}
	return nil
}

func (m *Manager) initRNGBridge(context.Context) error {
	if m.opts.RNG == nil || m.opts.Signer == nil {
		return fmt.Errorf("%w: legacy signer rng slot not configured", ErrResourceExhausted)
	}

	bridge := entropy.NewBridge(m.opts.RNG)
	if err := m.opts.Signer.SetRNG(bridge.Fill); err != nil {
		return fmt.Errorf("%w: installing legacy signer rng: %w", ErrResourceExhausted, err)
	}
	m.bridge = bridge
	return nil
}

func (m *Manager) armHours(context.Context) error {
	if err := m.hours.Arm(); err != nil {
		return fmt.Errorf("%w: arming operational hours: %w", ErrUpstream, err)
	}
	return nil
}

// HandleWiFiSystemEvent translates a driver notification and posts it on
// the event queue. It never fails; a full queue is logged and counted.
func (m *Manager) HandleWiFiSystemEvent(base events.Base, msg events.Message) {
	m.translator.Handle(base, msg)
}

// Shutdown delegates to the generic platform shutdown.
func (m *Manager) Shutdown(ctx context.Context) error {
	if m.opts.Generic == nil {
		return errors.New("platform: no generic platform")
	}
	return m.opts.Generic.Shutdown(ctx)
}

// Translator returns the event translator, for its counters.
func (m *Manager) Translator() *events.Translator { return m.translator }

// Hours returns the operational-hours task.
func (m *Manager) Hours() *hours.Task { return m.hours }
