// Package observability provides OpenTelemetry tracing and metrics for
// stdmath reductions and CLI commands.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, &cfg)
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanCommand)
//	defer span.End()
//
// Metrics:
//
//	metrics, err := observability.NewReductionMetrics(observability.Meter("stdmath"))
//	state, err := reduce.Sum(ctx, source, reduce.WithObserver(metrics))
//
// Setup wires both from configuration and falls back to no-op instruments
// when telemetry is disabled.
package observability
