// Package telemetry provides the OpenTelemetry metric instruments for stevedore.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bnema/stevedore/internal/boundaries/out"
)

const meterName = "stevedore"

// Metrics holds stevedore-specific OTel metrics instruments.
type Metrics struct {
	// Batches
	BatchRuns     metric.Int64Counter
	BatchItems    metric.Int64Counter
	BatchDuration metric.Float64Histogram

	// Events
	EventsProcessed metric.Int64Counter
	EventsDropped   metric.Int64Counter
}

var _ out.BatchRecorder = (*Metrics)(nil)

// NewMetrics registers the instruments on the global MeterProvider.
// OTel hands out noop instruments when no provider is configured, so the
// result is always safe to use.
func NewMetrics() (*Metrics, error) {
	return NewMetricsWithProvider(otel.GetMeterProvider())
}

// NewMetricsWithProvider registers the instruments on mp.
func NewMetricsWithProvider(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(meterName)
	m := &Metrics{}
	var err error

	if m.BatchRuns, err = meter.Int64Counter("stevedore.batch.runs",
		metric.WithDescription("Total batch runs")); err != nil {
		return nil, err
	}
	if m.BatchItems, err = meter.Int64Counter("stevedore.batch.items",
		metric.WithDescription("Batch items by outcome")); err != nil {
		return nil, err
	}
	if m.BatchDuration, err = meter.Float64Histogram("stevedore.batch.duration_seconds",
		metric.WithDescription("Batch duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 30, 60, 120, 300)); err != nil {
		return nil, err
	}
	if m.EventsProcessed, err = meter.Int64Counter("stevedore.events.processed",
		metric.WithDescription("Total events processed")); err != nil {
		return nil, err
	}
	if m.EventsDropped, err = meter.Int64Counter("stevedore.events.dropped",
		metric.WithDescription("Total events dropped")); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordBatch records one finished batch.
func (m *Metrics) RecordBatch(ctx context.Context, op string, succeeded, failed, skipped int, elapsed time.Duration) {
	opAttr := attribute.String("op", op)

	m.BatchRuns.Add(ctx, 1, metric.WithAttributes(opAttr))
	m.BatchDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(opAttr))

	for outcome, n := range map[string]int{
		"succeeded": succeeded,
		"failed":    failed,
		"skipped":   skipped,
	} {
		if n == 0 {
			continue
		}
		m.BatchItems.Add(ctx, int64(n), metric.WithAttributes(opAttr, attribute.String("outcome", outcome)))
	}
}
