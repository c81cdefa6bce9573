// Package saga runs multi-step mutations against a store that has no
// cross-record transactions. Each forward step carries a compensating action;
// when a step fails, the completed steps are compensated in reverse order.
package saga

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Step is one forward action and the action that undoes it.
// Compensate may be nil for steps with no side effects.
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga is an ordered list of steps. It is not safe for concurrent use.
type Saga struct {
	name   string
	logger *slog.Logger
	steps  []Step
}

// New creates an empty saga. A nil logger falls back to slog.Default.
func New(name string, logger *slog.Logger) *Saga {
	if logger == nil {
		logger = slog.Default()
	}
	return &Saga{name: name, logger: logger}
}

// AddStep appends a step and returns the saga for chaining.
func (s *Saga) AddStep(step Step) *Saga {
	s.steps = append(s.steps, step)
	return s
}

// Steps appends several steps at once.
func (s *Saga) Steps(steps ...Step) *Saga {
	s.steps = append(s.steps, steps...)
	return s
}

// Len returns the number of registered steps.
func (s *Saga) Len() int {
	return len(s.steps)
}

// Execute runs the steps in order. On failure it compensates the completed
// steps in reverse and returns the step error joined with any compensation errors.
// Compensations run on a context detached from cancellation so a cancelled
// request still gets rolled back.
func (s *Saga) Execute(ctx context.Context) error {
	for i, step := range s.steps {
		if err := step.Action(ctx); err != nil {
			s.logger.Error("saga step failed, compensating",
				slog.String("saga", s.name),
				slog.String("step", step.Name),
				slog.String("error", err.Error()))
			stepErr := fmt.Errorf("%s: %w", step.Name, err)
			return errors.Join(stepErr, s.compensate(context.WithoutCancel(ctx), i))
		}
	}
	return nil
}

// compensate undoes steps [0, failed) in reverse.
func (s *Saga) compensate(ctx context.Context, failed int) error {
	var errs []error
	for i := failed - 1; i >= 0; i-- {
		step := s.steps[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			s.logger.Error("saga compensation failed",
				slog.String("saga", s.name),
				slog.String("step", step.Name),
				slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("compensate %s: %w", step.Name, err))
		}
	}
	return errors.Join(errs...)
}
