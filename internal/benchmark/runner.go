// internal/benchmark/runner.go
package benchmark

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mwiater/suitebench/internal/logging"
	"github.com/mwiater/suitebench/internal/metrics"
)

// Runner executes groups sequentially, one iteration at a time.
type Runner struct {
	iterations     int
	memoryOverride *bool
	observers      []Observer
	runID          string
	tracer         trace.Tracer
	collectorOpts  []metrics.CollectorOption
}

// Option customises a Runner.
type Option func(*Runner)

// WithIterations sets how many times each operation runs. Defaults to 1.
func WithIterations(n int) Option {
	return func(r *Runner) { r.iterations = n }
}

// WithMemoryTracking forces memory tracking on or off for every operation,
// overriding each operation's own setting.
func WithMemoryTracking(enabled bool) Option {
	return func(r *Runner) { r.memoryOverride = &enabled }
}

// WithObserver adds a progress observer.
func WithObserver(o Observer) Option {
	return func(r *Runner) {
		if o != nil {
			r.observers = append(r.observers, o)
		}
	}
}

// WithRunID tags log lines and spans with id.
func WithRunID(id string) Option {
	return func(r *Runner) { r.runID = id }
}

// WithTracer replaces the tracer taken from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(r *Runner) { r.tracer = t }
}

// WithCollectorOptions passes options to every collector the runner creates.
func WithCollectorOptions(opts ...metrics.CollectorOption) Option {
	return func(r *Runner) { r.collectorOpts = append(r.collectorOpts, opts...) }
}

// NewRunner returns a runner with one iteration per operation.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{iterations: 1}
	for _, opt := range opts {
		opt(r)
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer("github.com/mwiater/suitebench/internal/benchmark")
	}
	return r
}

// Iterations returns the configured iteration count.
func (r *Runner) Iterations() int { return r.iterations }

// Run executes every operation of every group, in order, and returns the
// merged results. Configuration is checked before any group is set up. The
// first failing operation aborts the run and no results are returned.
func (r *Runner) Run(ctx context.Context, groups ...*Group) (*metrics.ResultSet, error) {
	if err := r.validate(groups); err != nil {
		return nil, err
	}

	ctx, span := r.tracer.Start(ctx, "suitebench.run", trace.WithAttributes(
		attribute.String("suitebench.run_id", r.runID),
		attribute.Int("suitebench.iterations", r.iterations),
		attribute.Int("suitebench.groups", len(groups)),
	))
	defer span.End()

	set := metrics.NewResultSet()
	for _, g := range groups {
		results, err := r.runGroup(ctx, g)
		if err != nil {
			logging.LogEvent("Run %s aborted: %v", r.runID, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		if err := set.Merge(results); err != nil {
			return nil, Configf("%v", err)
		}
	}
	span.SetStatus(codes.Ok, "")
	return set, nil
}

func (r *Runner) validate(groups []*Group) error {
	if r.iterations < 1 {
		return Configf("iterations must be a positive integer, got %d", r.iterations)
	}
	owners := make(map[string]string)
	for _, g := range groups {
		if g == nil {
			return Configf("nil group")
		}
		if err := g.validate(); err != nil {
			return err
		}
		for _, op := range g.Operations {
			if owner, exists := owners[op.Name]; exists {
				if owner == g.Name {
					return Configf("benchmark name %q is declared twice in group %q", op.Name, g.Name)
				}
				return Configf("benchmark name %q in group %q collides with group %q", op.Name, g.Name, owner)
			}
			owners[op.Name] = g.Name
		}
	}
	return nil
}

func (r *Runner) runGroup(ctx context.Context, g *Group) (results *metrics.ResultSet, err error) {
	ctx, span := r.tracer.Start(ctx, "group "+g.Name, trace.WithAttributes(
		attribute.String("suitebench.run_id", r.runID),
		attribute.String("suitebench.group", g.Name),
		attribute.Int("suitebench.operations", len(g.Operations)),
	))
	defer span.End()

	logging.LogEvent("Running group %q (%d operations, %d iterations)", g.Name, len(g.Operations), r.iterations)

	if g.Teardown != nil {
		defer func() {
			if terr := g.Teardown(); terr != nil {
				err = errors.Join(err, fmt.Errorf("teardown group %q: %w", g.Name, terr))
				results = nil
			}
		}()
	}
	if g.Setup != nil {
		if serr := g.Setup(); serr != nil {
			err = &OperationError{Group: g.Name, Operation: "setup", Err: serr}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	results = metrics.NewResultSet()
	for _, op := range g.Operations {
		if err = r.runOperation(ctx, g.Name, op, results); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	logging.LogEvent("Group %q complete", g.Name)
	span.SetStatus(codes.Ok, "")
	return results, nil
}

func (r *Runner) runOperation(ctx context.Context, group string, op Operation, results *metrics.ResultSet) error {
	track := op.TrackMemory
	if r.memoryOverride != nil {
		track = *r.memoryOverride
	}

	_, span := r.tracer.Start(ctx, op.Name, trace.WithAttributes(
		attribute.String("suitebench.group", group),
		attribute.Bool("suitebench.track_memory", track),
		attribute.Int("suitebench.iterations", r.iterations),
	))
	defer span.End()

	for _, o := range r.observers {
		o.OperationStarted(group, op.Name, r.iterations)
	}

	collector := metrics.NewCollector(track, r.collectorOpts...)
	for i := 1; i <= r.iterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := collector.Start(); err != nil {
			return err
		}
		callErr := invoke(op.Fn)
		sample, err := collector.Stop(op.Name)
		if callErr != nil {
			return &OperationError{Group: group, Operation: op.Name, Iteration: i, Err: callErr}
		}
		if err != nil {
			return err
		}
		results.Record(op.Name, sample)
		for _, o := range r.observers {
			o.IterationFinished(group, op.Name, i, sample)
		}
	}

	if res, ok := results.Get(op.Name); ok {
		span.SetAttributes(attribute.String("suitebench.summary", res.String()))
		logging.LogEvent("%s", res.String())
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// invoke calls fn, converting a panic into an error.
func invoke(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn()
}
