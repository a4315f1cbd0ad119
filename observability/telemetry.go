package observability

import (
	"context"
	stderrors "errors"
	"time"

	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Providers bundles what Setup started so it can be shut down together.
// A zero Providers is valid and records nothing.
type Providers struct {
	Meter   *sdkmetric.MeterProvider
	Tracer  *sdktrace.TracerProvider
	Metrics *ReductionMetrics
}

// SetupConfig is the subset of configuration Setup needs.
type SetupConfig struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Environment    string
	Endpoint       string
	Insecure       bool
	SampleRate     float64
	Interval       time.Duration
}

// Setup initializes the tracer and meter providers when enabled. When
// disabled, Metrics is backed by a no-op meter so callers can record
// unconditionally.
func Setup(ctx context.Context, cfg SetupConfig) (*Providers, error) {
	p := &Providers{}
	if !cfg.Enabled {
		m, err := NewReductionMetrics(noop.NewMeterProvider().Meter(cfg.ServiceName))
		if err != nil {
			return nil, err
		}
		p.Metrics = m
		return p, nil
	}

	tp, err := InitTracer(ctx, &TracerConfig{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.Environment,
		Endpoint:       cfg.Endpoint,
		Insecure:       cfg.Insecure,
		SampleRate:     cfg.SampleRate,
	})
	if err != nil {
		return nil, err
	}
	p.Tracer = tp

	mc := DefaultMeterConfig(cfg.ServiceName)
	mc.ServiceVersion = cfg.ServiceVersion
	mc.Environment = cfg.Environment
	mc.Endpoint = cfg.Endpoint
	mc.Insecure = cfg.Insecure
	mc.Interval = cfg.Interval
	mp, err := InitMeter(ctx, &mc)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	p.Meter = mp

	m, err := NewReductionMetrics(mp.Meter(defaultTracerName))
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}
	p.Metrics = m
	return p, nil
}

// Shutdown flushes and stops whichever providers were started.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Tracer != nil {
		errs = append(errs, p.Tracer.Shutdown(ctx))
	}
	if p.Meter != nil {
		errs = append(errs, p.Meter.Shutdown(ctx))
	}
	return stderrors.Join(errs...)
}
