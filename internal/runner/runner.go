// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/pushd"
	"github.com/matt-FFFFFF/pushd/internal/config"
	"github.com/matt-FFFFFF/pushd/internal/ctxlog"
)

var (
	// ErrStepFailed wraps the failure of a single step.
	ErrStepFailed = errors.New("step failed")
	// ErrCancelled is returned when the context is done before all steps have run.
	ErrCancelled = errors.New("run cancelled")
)

// Runner runs plans. A Runner must not run more than one plan at a time.
type Runner struct {
	stack  *pushd.Stack
	exec   ExecFunc
	stdout io.Writer
	stderr io.Writer
}

// Option implements a functional options pattern for Runner.
type Option func(r *Runner)

// WithStack sets the stack used for step directories.
// The default is a stack over pushd.DefaultDirer holding the package process lock.
func WithStack(s *pushd.Stack) Option {
	return func(r *Runner) {
		r.stack = s
	}
}

// WithExec replaces ExecCommand.
func WithExec(fn ExecFunc) Option {
	return func(r *Runner) {
		r.exec = fn
	}
}

// WithOutput sets where command output is written. The defaults are os.Stdout and os.Stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		exec:   ExecCommand,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.stack == nil {
		r.stack = pushd.NewStack(pushd.WithProcessLock())
	}

	return r
}

// run holds the state of one Run call.
type run struct {
	*Runner
	result    *multierror.Error
	cancelled bool
}

// Run executes the plan's steps depth first. A failed step stops the run unless it has
// ContinueOnError set. Every failure is returned in a *multierror.Error.
// Whatever happens, the working directory is restored before Run returns.
func (r *Runner) Run(ctx context.Context, plan *config.Plan) error {
	ctx = ctxlog.New(ctx, ctxlog.Logger(ctx).With("plan", plan.Name))
	ctxlog.Debug(ctx, "running plan", "steps", len(plan.Steps))

	state := &run{Runner: r}
	state.runSteps(ctx, plan.Steps)

	if err := r.stack.Unwind(ctx); err != nil {
		state.result = multierror.Append(state.result, err)
	}

	return state.result.ErrorOrNil()
}

// runSteps reports whether the run must stop.
func (s *run) runSteps(ctx context.Context, steps []config.Step) bool {
	for i := range steps {
		if err := ctx.Err(); err != nil {
			if !s.cancelled {
				s.cancelled = true
				s.result = multierror.Append(s.result, errors.Join(ErrCancelled, err))
			}

			return true
		}

		if s.runStep(ctx, &steps[i]) {
			return true
		}
	}

	return false
}

// runStep reports whether the run must stop. A step that fails stops the run unless it
// has ContinueOnError set; failing to restore the directory always stops it.
func (s *run) runStep(ctx context.Context, step *config.Step) (stop bool) {
	label := step.Label()
	ctx = ctxlog.New(ctx, ctxlog.Logger(ctx).With("step", label))

	if step.Dir != "" {
		g, err := s.stack.Push(ctx, step.Dir)
		if err != nil {
			s.fail(ctx, label, err)
			return !step.ContinueOnError
		}

		defer func() {
			if err := g.Pop(ctx); err != nil {
				s.fail(ctx, label, err)

				stop = true
			}
		}()
	}

	if len(step.Command) > 0 {
		if err := s.exec(ctx, step, s.stdout, s.stderr); err != nil {
			s.fail(ctx, label, err)
			return !step.ContinueOnError
		}
	}

	if s.runSteps(ctx, step.Steps) {
		return !step.ContinueOnError
	}

	return false
}

func (s *run) fail(ctx context.Context, label string, err error) {
	ctxlog.Warn(ctx, "step failed", "error", err.Error())
	s.result = multierror.Append(s.result, fmt.Errorf("%w: %s: %w", ErrStepFailed, label, err))
}
