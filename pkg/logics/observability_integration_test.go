package logics

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/randalmurphal/logics/pkg/logics/observability"
	"github.com/randalmurphal/logics/pkg/logics/value"
)

// testLogHandler captures log records as JSON lines.
type testLogHandler struct {
	buf   *bytes.Buffer
	attrs []slog.Attr
}

func newTestLogHandler() *testLogHandler {
	return &testLogHandler{buf: &bytes.Buffer{}}
}

func (h *testLogHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *testLogHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, a := range h.attrs {
		data[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})
	return json.NewEncoder(h.buf).Encode(data)
}

func (h *testLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &testLogHandler{buf: h.buf, attrs: merged}
}

func (h *testLogHandler) WithGroup(string) slog.Handler { return h }

func (h *testLogHandler) records() []map[string]any {
	var out []map[string]any
	for _, line := range bytes.Split(h.buf.Bytes(), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(line, &m); err == nil {
			out = append(out, m)
		}
	}
	return out
}

func (h *testLogHandler) messages() []string {
	var msgs []string
	for _, r := range h.records() {
		msgs = append(msgs, r["msg"].(string))
	}
	return msgs
}

func TestRun_WithLogger(t *testing.T) {
	h := newTestLogHandler()
	prog := MustCompile("1 + 2", WithLogger(slog.New(h)), WithRunID("run-42"), WithName("sum"))

	_, _, err := prog.Run(context.Background(), nil)
	require.NoError(t, err)

	records := h.records()
	require.Len(t, records, 2)
	assert.Equal(t, "evaluation starting", records[0]["msg"])
	assert.Equal(t, "evaluation completed", records[1]["msg"])
	for _, r := range records {
		assert.Equal(t, "run-42", r["run_id"])
		assert.Equal(t, "sum", r["program"])
	}
	assert.Equal(t, float64(3), records[1]["nodes_visited"])
}

func TestRun_WithLogger_RunIDOncePerRecord(t *testing.T) {
	for _, src := range []string{"1 + 2", "upper()"} {
		t.Run(src, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			_, _, _ = MustCompile(src, WithLogger(logger), WithRunID("r1")).Run(context.Background(), nil)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.NotEmpty(t, lines)
			for _, line := range lines {
				assert.Equal(t, 1, strings.Count(line, `"run_id":`), line)
			}
		})
	}
}

func TestRun_WithLogger_Failure(t *testing.T) {
	h := newTestLogHandler()
	prog := MustCompile("upper()", WithLogger(slog.New(h)))

	_, _, err := prog.Run(context.Background(), nil)
	require.Error(t, err)

	assert.Equal(t, []string{
		"evaluation starting",
		"function call failed",
		"evaluation failed",
	}, h.messages())
}

func TestRun_WithLogger_Truncation(t *testing.T) {
	h := newTestLogHandler()
	prog := MustCompile("[i for i in range(10)]", WithLogger(slog.New(h)), WithMaxIterations(3))

	_, _, err := prog.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, h.messages(), "comprehension truncated")
}

func TestRun_GeneratesRunIDs(t *testing.T) {
	h := newTestLogHandler()
	prog := MustCompile("1", WithLogger(slog.New(h)))

	for range 2 {
		_, _, err := prog.Run(context.Background(), nil)
		require.NoError(t, err)
	}

	records := h.records()
	require.Len(t, records, 4)
	first, second := records[0]["run_id"], records[2]["run_id"]
	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestRun_WithMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	original := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)
	t.Cleanup(func() {
		otel.SetMeterProvider(original)
		_ = provider.Shutdown(context.Background())
	})

	prog := MustCompile("[upper(s) for s in range(10)]",
		WithMetrics(observability.NewMetricsRecorder()),
		WithMaxIterations(4),
	)
	_, _, err := prog.Run(context.Background(), nil)
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					counts[m.Name] += dp.Value
				}
			}
		}
	}
	assert.GreaterOrEqual(t, counts["logics.run.count"], int64(1))
	assert.GreaterOrEqual(t, counts["logics.call.count"], int64(5), "range once plus upper four times")
	assert.GreaterOrEqual(t, counts["logics.comprehension.truncations"], int64(1))
}

func TestRun_WithTracing(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	})

	fail := func(...value.Value) (any, error) { return nil, assert.AnError }

	t.Run("success", func(t *testing.T) {
		exporter.Reset()
		prog := MustCompile("upper('a')", WithTracing(), WithRunID("r1"), WithName("greeting"))
		_, _, err := prog.Run(context.Background(), nil)
		require.NoError(t, err)

		spans := exporter.GetSpans()
		require.Len(t, spans, 2)
		assert.Equal(t, "logics.call.upper", spans[0].Name)
		assert.Equal(t, "logics.run", spans[1].Name)
		assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
		assert.Equal(t, codes.Ok, spans[1].Status.Code)
	})

	t.Run("failure", func(t *testing.T) {
		exporter.Reset()
		prog := MustCompile("fail()", WithTracing(), WithFunction("fail", fail))
		_, _, err := prog.Run(context.Background(), nil)
		require.Error(t, err)

		spans := exporter.GetSpans()
		require.Len(t, spans, 2)
		for _, s := range spans {
			assert.Equal(t, codes.Error, s.Status.Code, s.Name)
		}
	})

	t.Run("truncation event", func(t *testing.T) {
		exporter.Reset()
		prog := MustCompile("[i for i in [1, 2, 3]]", WithTracing(), WithMaxIterations(1))
		_, _, err := prog.Run(context.Background(), nil)
		require.NoError(t, err)

		spans := exporter.GetSpans()
		require.Len(t, spans, 1)
		require.Len(t, spans[0].Events, 1)
		assert.Equal(t, "comprehension.truncated", spans[0].Events[0].Name)
	})
}
