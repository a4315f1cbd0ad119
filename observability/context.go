package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CommandContext holds observability state for one CLI command run.
type CommandContext struct {
	ServiceName string
	Command     string
	RunID       string
	NumType     string
	StartTime   time.Time
	Metrics     *ReductionMetrics
}

// NewCommandContext creates a new command context.
// If metrics is nil, metric recording is silently skipped.
func NewCommandContext(serviceName, command, runID, numType string, metrics *ReductionMetrics) *CommandContext {
	return &CommandContext{
		ServiceName: serviceName,
		Command:     command,
		RunID:       runID,
		NumType:     numType,
		StartTime:   time.Now(),
		Metrics:     metrics,
	}
}

type commandContextKey struct{}

// WithCommandContext stores a CommandContext in the context.
func WithCommandContext(ctx context.Context, cc *CommandContext) context.Context {
	return context.WithValue(ctx, commandContextKey{}, cc)
}

// CommandContextFromContext retrieves the CommandContext from context, or nil.
func CommandContextFromContext(ctx context.Context) *CommandContext {
	if cc, ok := ctx.Value(commandContextKey{}).(*CommandContext); ok {
		return cc
	}
	return nil
}

// Start opens the command span and stores cc in the returned context.
func (cc *CommandContext) Start(ctx context.Context) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, SpanCommand)
	span.SetAttributes(
		attribute.String(AttrServiceName, cc.ServiceName),
		attribute.String(AttrCommand, cc.Command),
		attribute.String(AttrRunID, cc.RunID),
	)
	if cc.NumType != "" {
		span.SetAttributes(attribute.String(AttrNumType, cc.NumType))
	}
	return WithCommandContext(ctx, cc), span
}

// End ends the span and records the command metric.
func (cc *CommandContext) End(ctx context.Context, span trace.Span, status string, err error) {
	duration := time.Since(cc.StartTime)

	if err != nil {
		SetSpanError(trace.ContextWithSpan(ctx, span), err)
		span.SetAttributes(attribute.String(AttrErrorMsg, err.Error()))
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if cc.Metrics != nil {
		cc.Metrics.RecordCommand(ctx, cc.Command, status, duration)
	}
}

// Duration returns the elapsed time since the command started.
func (cc *CommandContext) Duration() time.Duration {
	return time.Since(cc.StartTime)
}
