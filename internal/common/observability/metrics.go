package observability

import (
	"context"
	"time"

	"rto-workers/internal/common/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability owns the OpenTelemetry meter. Instruments are exported
// through the Prometheus default registry, next to the promauto metrics.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	jobCounter    otelmetric.Int64Counter
	jobDuration   otelmetric.Float64Histogram
	matchCounter  otelmetric.Int64Counter
}

// New registers the exporter. On failure it logs and returns a no-op value so
// callers never need a nil check.
func New(serviceName string, log logger.Logger) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Warn("failed to create prometheus exporter", map[string]interface{}{"error": err.Error()})
		return &Observability{}
	}
	return newWithReader(serviceName, exporter)
}

func newWithReader(serviceName string, reader metric.Reader) *Observability {
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	jobCounter, _ := meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	)

	jobDuration, _ := meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	)

	matchCounter, _ := meter.Int64Counter(
		"provider.matches",
		otelmetric.WithDescription("Provider match requests by outcome"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		jobCounter:    jobCounter,
		jobDuration:   jobDuration,
		matchCounter:  matchCounter,
	}
}

func (o *Observability) RecordJobProcessed(ctx context.Context, taskType, status string) {
	if o.jobCounter != nil {
		o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("task_type", taskType),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string) {
	if o.jobDuration != nil {
		o.jobDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("task_type", taskType),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordMatch(ctx context.Context, channel string, noMatch bool) {
	if o.matchCounter != nil {
		o.matchCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("channel", channel),
			attribute.Bool("no_match", noMatch),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.meterProvider.Shutdown(ctx)
	}
}
