package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records evaluator metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRun records a finished evaluation and how many nodes it visited.
	RecordRun(ctx context.Context, success bool, duration time.Duration, nodes int)

	// RecordCall records a function call with its duration and error status.
	RecordCall(ctx context.Context, name string, duration time.Duration, err error)

	// RecordTruncation records a comprehension cut off at limit iterations.
	RecordTruncation(ctx context.Context, limit int)
}

type otelMetrics struct {
	runs        metric.Int64Counter
	runLatency  metric.Float64Histogram
	runNodes    metric.Int64Histogram
	calls       metric.Int64Counter
	callErrors  metric.Int64Counter
	callLatency metric.Float64Histogram
	truncations metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily creates the instruments on the global meter.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("logics")

	runs, err := meter.Int64Counter("logics.run.count",
		metric.WithDescription("Number of evaluations"),
	)
	if err != nil {
		return nil, err
	}

	runLatency, err := meter.Float64Histogram("logics.run.latency_ms",
		metric.WithDescription("Evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	runNodes, err := meter.Int64Histogram("logics.run.nodes",
		metric.WithDescription("AST nodes visited per evaluation"),
	)
	if err != nil {
		return nil, err
	}

	calls, err := meter.Int64Counter("logics.call.count",
		metric.WithDescription("Number of function calls"),
	)
	if err != nil {
		return nil, err
	}

	callErrors, err := meter.Int64Counter("logics.call.errors",
		metric.WithDescription("Number of failed function calls"),
	)
	if err != nil {
		return nil, err
	}

	callLatency, err := meter.Float64Histogram("logics.call.latency_ms",
		metric.WithDescription("Function call latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	truncations, err := meter.Int64Counter("logics.comprehension.truncations",
		metric.WithDescription("Comprehensions stopped at the iteration limit"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		runs:        runs,
		runLatency:  runLatency,
		runNodes:    runNodes,
		calls:       calls,
		callErrors:  callErrors,
		callLatency: callLatency,
		truncations: truncations,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder backed by the global OTel
// meter provider, or a no-op recorder if the instruments cannot be created.
// Configure the provider first:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

func (m *otelMetrics) RecordRun(ctx context.Context, success bool, duration time.Duration, nodes int) {
	attrs := metric.WithAttributes(attribute.Bool("success", success))
	m.runs.Add(ctx, 1, attrs)
	m.runLatency.Record(ctx, milliseconds(duration), attrs)
	m.runNodes.Record(ctx, int64(nodes), attrs)
}

func (m *otelMetrics) RecordCall(ctx context.Context, name string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("function", name))
	m.calls.Add(ctx, 1, attrs)
	m.callLatency.Record(ctx, milliseconds(duration), attrs)
	if err != nil {
		m.callErrors.Add(ctx, 1, attrs)
	}
}

func (m *otelMetrics) RecordTruncation(ctx context.Context, limit int) {
	m.truncations.Add(ctx, 1, metric.WithAttributes(attribute.Int("limit", limit)))
}

func milliseconds(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
