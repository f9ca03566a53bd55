package platform

import (
	"context"
	"time"
)

// Step is one named bring-up action.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Sequencer runs steps in order and stops at the first failure.
type Sequencer struct {
	logger Logger
}

// NewSequencer creates a sequencer with no logging.
func NewSequencer() *Sequencer {
	return &Sequencer{logger: noopLogger{}}
}

// SetLogger sets the logger for the sequencer.
func (s *Sequencer) SetLogger(logger Logger) {
	s.logger = logger
}

// Run executes steps in order. It returns the failing step's error as is
// and does not run later steps or undo earlier ones.
func (s *Sequencer) Run(ctx context.Context, steps []Step) error {
	for i, step := range steps {
		s.logger.Info("init step starting", "step", step.Name, "index", i+1, "total", len(steps))
		start := time.Now()

		if err := step.Run(ctx); err != nil {
			s.logger.Error("init step failed",
				"step", step.Name,
				"duration", time.Since(start),
				"error", err,
			)
			return err
		}

		s.logger.Info("init step complete", "step", step.Name, "duration", time.Since(start))
	}
	return nil
}
