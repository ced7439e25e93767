// Package runner executes a checklist against a project tree and aggregates
// the per-routine results into a Summary.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xiaolushuo/verify-project/internal/checklist"
	perrors "github.com/xiaolushuo/verify-project/internal/errors"
	"github.com/xiaolushuo/verify-project/internal/probe"
)

// EvaluateFunc evaluates one routine.
type EvaluateFunc func(probe.Probe, checklist.Routine) checklist.CheckResult

// Runner runs routines in a fixed order, always all of them.
type Runner struct {
	probe    probe.Probe
	routines []checklist.Routine
	evaluate EvaluateFunc
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithRoutines replaces the default checklist.
func WithRoutines(routines []checklist.Routine) Option {
	return func(r *Runner) {
		r.routines = routines
	}
}

// WithEvaluator replaces checklist.Evaluate.
func WithEvaluator(fn EvaluateFunc) Option {
	return func(r *Runner) {
		r.evaluate = fn
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New creates a Runner over p using the default checklist.
func New(p probe.Probe, opts ...Option) *Runner {
	r := &Runner{
		probe:    p,
		routines: checklist.DefaultRoutines(),
		evaluate: checklist.Evaluate,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every routine sequentially and returns the summary.
// A routine that panics is recorded as failed and the run continues.
func (r *Runner) Run(_ context.Context) Summary {
	start := time.Now()
	summary := Summary{Results: make([]checklist.CheckResult, 0, len(r.routines))}

	for _, routine := range r.routines {
		res := r.runOne(routine)
		r.logger.Debug("routine finished",
			slog.String("routine", routine.Name),
			slog.Bool("passed", res.Passed),
			slog.Int("items", len(res.Items)),
			slog.Int("warnings", res.Warnings()))
		summary.Results = append(summary.Results, res)
	}

	r.logger.Info("checklist complete",
		slog.Int("passed", summary.PassedCount()),
		slog.Int("total", summary.TotalCount()),
		slog.String("status", summary.Status()),
		slog.Duration("duration", time.Since(start)))

	return summary
}

// runOne is the error boundary around a single routine.
func (r *Runner) runOne(routine checklist.Routine) (res checklist.CheckResult) {
	defer func() {
		if rec := recover(); rec != nil {
			err := perrors.InternalError(
				fmt.Sprintf("routine %s aborted: %v", routine.Name, rec), nil).
				WithDetail("routine", routine.Name)

			attrs := []any{slog.String("routine", routine.Name)}
			for k, v := range perrors.FormatForLog(err) {
				attrs = append(attrs, slog.Any(k, v))
			}
			r.logger.Error("routine faulted", attrs...)

			res = checklist.CheckResult{
				Name:   routine.Name,
				Title:  routine.Title,
				Passed: false,
				Err:    err,
			}
		}
	}()

	return r.evaluate(r.probe, routine)
}
