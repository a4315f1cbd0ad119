package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/stdmath/logger"
	"github.com/kbukum/stdmath/reduce"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Debug("meter initialized", logger.Fields(
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// ReductionMetrics records reduction runs and CLI commands. It implements
// reduce.Observer, so it can be passed to reduce.WithObserver directly.
type ReductionMetrics struct {
	reductionTotal    metric.Int64Counter
	reductionSteps    metric.Int64Histogram
	reductionDuration metric.Float64Histogram
	commandTotal      metric.Int64Counter
	commandDuration   metric.Float64Histogram
}

var _ reduce.Observer = (*ReductionMetrics)(nil)

// NewReductionMetrics creates metric instruments on the given meter.
func NewReductionMetrics(meter metric.Meter) (*ReductionMetrics, error) {
	reductionTotal, err := meter.Int64Counter("reduction.total",
		metric.WithDescription("Total number of reduction runs by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reduction.total counter: %w", err)
	}

	reductionSteps, err := meter.Int64Histogram("reduction.steps",
		metric.WithDescription("Elements folded per reduction run"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reduction.steps histogram: %w", err)
	}

	reductionDuration, err := meter.Float64Histogram("reduction.duration",
		metric.WithDescription("Duration of reduction runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reduction.duration histogram: %w", err)
	}

	commandTotal, err := meter.Int64Counter("command.total",
		metric.WithDescription("Total number of CLI commands by status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating command.total counter: %w", err)
	}

	commandDuration, err := meter.Float64Histogram("command.duration",
		metric.WithDescription("Duration of CLI commands in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating command.duration histogram: %w", err)
	}

	return &ReductionMetrics{
		reductionTotal:    reductionTotal,
		reductionSteps:    reductionSteps,
		reductionDuration: reductionDuration,
		commandTotal:      commandTotal,
		commandDuration:   commandDuration,
	}, nil
}

// ObserveReduction records one finished reduction.
func (m *ReductionMetrics) ObserveReduction(ctx context.Context, r reduce.Report) {
	base := []attribute.KeyValue{
		attribute.String(AttrOperation, r.Operation),
		attribute.String(AttrMethod, r.MethodName),
	}
	m.reductionTotal.Add(ctx, 1, metric.WithAttributes(append(base, attribute.String(AttrStatus, r.Status()))...))
	m.reductionSteps.Record(ctx, int64(r.Steps), metric.WithAttributes(base...))
	m.reductionDuration.Record(ctx, r.Duration.Seconds(), metric.WithAttributes(base...))
}

// RecordCommand records a CLI command execution.
func (m *ReductionMetrics) RecordCommand(ctx context.Context, command, status string, duration time.Duration) {
	m.commandTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrCommand, command),
		attribute.String(AttrStatus, status),
	))
	m.commandDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrCommand, command),
	))
}
