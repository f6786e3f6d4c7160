package observability

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/lazykit/config"
	"github.com/kbukum/lazykit/errors"
	"github.com/kbukum/lazykit/lazy"
	"github.com/kbukum/lazykit/logger"
)

// runPipeline fuses one step and evaluates one transform node.
func runPipeline(t *testing.T) int {
	t.Helper()
	p, err := lazy.Map(lazy.Of(5), func(x int) int { return x + 1 })
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	q, err := lazy.Map(p, func(x int) int { return x * 2 })
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	return q.Match(0)
}

func counterValue(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("%s: unexpected data type %T", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	return total
}

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-app")

	if cfg.ServiceName != "test-app" {
		t.Errorf("expected ServiceName 'test-app', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-app")

	if cfg.ServiceName != "test-app" {
		t.Errorf("expected ServiceName 'test-app', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestNewPipelineMetrics_Noop(t *testing.T) {
	m, err := NewPipelineMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	m.NodeEvaluated(lazy.KindTransform)
	m.NodeFused(lazy.KindCondition)
	m.Suspended(lazy.KindAsync)
}

func TestPipelineMetrics_CountsGraphEvents(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()

	m, err := NewPipelineMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewPipelineMetrics: %v", err)
	}
	lazy.SetObserver(m)
	defer lazy.SetObserver(nil)

	if got := runPipeline(t); got != 12 {
		t.Fatalf("got %d, want 12", got)
	}

	tests := []struct {
		name string
		want int64
	}{
		{MetricEvaluations, 1},
		{MetricFusions, 1},
		{MetricSuspensions, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := counterValue(t, reader, tc.name); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPrometheusObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := NewPrometheusObserver(reg)
	if err != nil {
		t.Fatalf("NewPrometheusObserver: %v", err)
	}
	lazy.SetObserver(obs)
	defer lazy.SetObserver(nil)

	runPipeline(t)
	filtered, err := lazy.Of(3).Filter(func(x int) bool { return x > 1 })
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	filtered.Force()

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"transform evaluations", obs.Evaluations.WithLabelValues(lazy.KindTransform), 1},
		{"condition evaluations", obs.Evaluations.WithLabelValues(lazy.KindCondition), 1},
		{"transform fusions", obs.Fusions.WithLabelValues(lazy.KindTransform), 1},
		{"async suspensions", obs.Suspensions.WithLabelValues(lazy.KindAsync), 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tc.c); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAwaitSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	lazy.SetTracer(tp.Tracer("test"))
	defer lazy.SetTracer(nil)

	p, err := lazy.Map(lazy.Of(20), func(x int) int { return x/10 + 1 })
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	v, err := p.Await(context.Background())
	if err != nil {
		t.Fatalf("Await: %v", err)
	}
	if v.Match(0) != 3 {
		t.Fatalf("got %v, want Some(3)", v)
	}

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Name() != SpanAwait {
		t.Errorf("got span %q, want %q", spans[0].Name(), SpanAwait)
	}
	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	if attrs[AttrNodeKind] != lazy.KindTransform {
		t.Errorf("got kind %q, want %q", attrs[AttrNodeKind], lazy.KindTransform)
	}
	if attrs[AttrSome] != "true" {
		t.Errorf("got some %q, want true", attrs[AttrSome])
	}
}

func TestSetup_NilSettings(t *testing.T) {
	if _, err := Setup(context.Background(), nil); !stderrors.Is(err, errors.ErrNullArgument) {
		t.Errorf("got %v, want NULL_ARGUMENT", err)
	}
}

func TestSetup_UnknownExporter(t *testing.T) {
	s := &config.Settings{Name: "app", Telemetry: config.TelemetryConfig{Enabled: true, Exporter: "statsd"}}
	if _, err := Setup(context.Background(), s); !stderrors.Is(err, errors.ErrInvalidArgument) {
		t.Errorf("got %v, want INVALID_ARGUMENT", err)
	}
}

func TestSetup_LogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger.Register("lazy", logger.New(&logger.Config{Level: "debug", Format: "json", Writer: &buf}, "lazy"))
	defer logger.Unregister("lazy")

	shutdown, err := Setup(context.Background(), &config.Settings{Name: "app"})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	runPipeline(t)
	if !strings.Contains(buf.String(), "node evaluated") {
		t.Errorf("expected evaluation to be logged, got %q", buf.String())
	}

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	buf.Reset()
	runPipeline(t)
	if buf.Len() != 0 {
		t.Errorf("expected no events after shutdown, got %q", buf.String())
	}
}

func TestSetup_Prometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := &config.Settings{
		Name:      "app",
		Telemetry: config.TelemetryConfig{Enabled: true, Exporter: config.ExporterPrometheus},
	}
	shutdown, err := Setup(context.Background(), s, WithRegisterer(reg), WithoutEventLog())
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	runPipeline(t)
	n, err := testutil.GatherAndCount(reg, "lazykit_lazy_node_evaluations_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d series, want 1", n)
	}
}

func TestPrometheusObserver_ReusesRegisteredCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPrometheusObserver(reg)
	if err != nil {
		t.Fatalf("NewPrometheusObserver: %v", err)
	}
	second, err := NewPrometheusObserver(reg)
	if err != nil {
		t.Fatalf("second NewPrometheusObserver: %v", err)
	}
	if first.Evaluations != second.Evaluations {
		t.Error("expected the registered counter to be reused")
	}
}

func TestPrometheusObserver_ConflictingCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "lazykit",
		Subsystem: "lazy",
		Name:      "node_evaluations_total",
		Help:      "Total number of pipeline nodes evaluated",
	}))
	if _, err := NewPrometheusObserver(reg); err == nil {
		t.Fatal("expected a registration error")
	}
}

func TestSetup_PrometheusTwiceAfterShutdown(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := &config.Settings{
		Name:      "app",
		Telemetry: config.TelemetryConfig{Enabled: true, Exporter: config.ExporterPrometheus},
	}
	for i := 1; i <= 2; i++ {
		shutdown, err := Setup(context.Background(), s, WithRegisterer(reg), WithoutEventLog())
		if err != nil {
			t.Fatalf("Setup #%d: %v", i, err)
		}
		runPipeline(t)
		if got, err := testutil.GatherAndCount(reg, "lazykit_lazy_node_evaluations_total"); err != nil || got != 1 {
			t.Errorf("Setup #%d: got %d series (err %v), want 1", i, got, err)
		}
		if err := shutdown(context.Background()); err != nil {
			t.Fatalf("shutdown #%d: %v", i, err)
		}
		if got, _ := testutil.GatherAndCount(reg, "lazykit_lazy_node_evaluations_total"); got != 0 {
			t.Errorf("after shutdown #%d: got %d series, want 0", i, got)
		}
	}
}

func TestTracerAndMeter(t *testing.T) {
	if Tracer("test-tracer") == nil {
		t.Fatal("expected non-nil tracer")
	}
	if Meter("test-meter") == nil {
		t.Fatal("expected non-nil meter")
	}
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test-operation")
	defer span.End()

	if SpanFromContext(ctx) == nil {
		t.Error("expected span in context")
	}
	SetSpanError(ctx, stderrors.New("ignored on a non-recording span"))
}
