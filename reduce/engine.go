package reduce

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/stdmath/errors"
	"github.com/kbukum/stdmath/logger"
	"github.com/kbukum/stdmath/pipeline"
)

// Report summarizes one finished reduction run.
type Report struct {
	RunID      uuid.UUID
	Operation  string
	Method     Kind
	MethodName string
	Steps      int
	Overflowed bool
	Failed     bool
	Duration   time.Duration
}

// Status returns "ok", "overflow", or "error".
func (r Report) Status() string {
	switch {
	case r.Failed:
		return "error"
	case r.Overflowed:
		return "overflow"
	default:
		return "ok"
	}
}

// Observer receives a Report after every reduction run.
type Observer interface {
	ObserveReduction(ctx context.Context, r Report)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, r Report)

// ObserveReduction calls f.
func (f ObserverFunc) ObserveReduction(ctx context.Context, r Report) { f(ctx, r) }

type options struct {
	name     string
	log      *logger.Logger
	observer Observer
}

// Option configures a reduction.
type Option func(*options)

// WithName sets the operation name used in logs, reports, and errors.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger logs run completion and overflow at debug level.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithObserver registers an Observer for run reports.
func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

func buildOptions(defaultName string, opts []Option) options {
	o := options{name: defaultName}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Fold pulls elements from iter one at a time and combines each into rc's
// running total with m. On the first overflow it records the failing
// element in rc and returns without pulling again. iter is closed before
// Fold returns.
//
// The returned error is reserved for collaborator failures: the source
// iterator failing (including ctx cancellation it surfaces) or rc not being
// fresh. Overflow is reported only through the returned OverflowState.
func Fold[T, R any](ctx context.Context, iter pipeline.Iterator[T], m Method[T, R], rc *Context[T, R], opts ...Option) (OverflowState[T, R], error) {
	o := buildOptions("fold", opts)
	return fold(ctx, iter, m, rc, o)
}

func fold[T, R any](ctx context.Context, iter pipeline.Iterator[T], m Method[T, R], rc *Context[T, R], o options) (state OverflowState[T, R], err error) {
	defer iter.Close()

	if !m.valid() {
		return rc.Current(), errors.Validation("reduction method has no combinator")
	}
	if reason := rc.begin(); reason != "" {
		return rc.Current(), errors.ContextReused(rc.ID().String(), reason)
	}

	start := time.Now()
	finished := false
	defer func() {
		if !finished {
			// Unwinding from a panic: the Context is no longer trustworthy.
			rc.poisoned = true
			return
		}
		report(ctx, o, rc, m, err != nil, time.Since(start))
	}()

	for index := 0; ; index++ {
		elem, ok, nextErr := iter.Next(ctx)
		if nextErr != nil {
			finished = true
			return rc.Current(), errors.SourceFailed(o.name, index, nextErr)
		}
		if !ok {
			finished = true
			return rc.Current(), nil
		}
		acc := rc.value
		next, fits := m.Apply(acc, elem)
		if !fits {
			rc.RecordOverflow(elem, acc, index)
			finished = true
			return rc.Current(), nil
		}
		rc.RecordStep(next)
	}
}

func report[T, R any](ctx context.Context, o options, rc *Context[T, R], m Method[T, R], failed bool, d time.Duration) {
	r := Report{
		RunID:      rc.ID(),
		Operation:  o.name,
		Method:     m.Kind(),
		MethodName: m.Name(),
		Steps:      rc.Steps(),
		Overflowed: rc.Overflowed(),
		Failed:     failed,
		Duration:   d,
	}
	if o.log != nil {
		fields := logger.Fields(
			logger.FieldRunID, r.RunID.String(),
			logger.FieldOperation, r.Operation,
			logger.FieldMethod, r.MethodName,
			logger.FieldSteps, r.Steps,
			logger.FieldStatus, r.Status(),
			logger.FieldDuration, d.Milliseconds(),
		)
		if r.Overflowed {
			fields[logger.FieldIndex] = rc.index
			o.log.Debug("reduction overflowed", fields)
		} else {
			o.log.Debug("reduction finished", fields)
		}
	}
	if o.observer != nil {
		o.observer.ObserveReduction(ctx, r)
	}
}
