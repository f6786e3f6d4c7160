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

	"github.com/kbukum/lazykit/lazy"
	"github.com/kbukum/lazykit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the application.
	ServiceName string
	// ServiceVersion is the version of the application.
	ServiceVersion string
	// Environment is the deployment environment (development, staging, production).
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
		ServiceVersion: "1.0.0",
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

	logger.Get("observability").Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Instrument names recorded by PipelineMetrics.
const (
	MetricEvaluations = "lazy.node.evaluations"
	MetricFusions     = "lazy.node.fusions"
	MetricSuspensions = "lazy.suspensions"
)

// PipelineMetrics counts lazy pipeline graph events on OpenTelemetry
// instruments. It implements lazy.Observer.
type PipelineMetrics struct {
	evaluations metric.Int64Counter
	fusions     metric.Int64Counter
	suspensions metric.Int64Counter
}

var _ lazy.Observer = (*PipelineMetrics)(nil)

// NewPipelineMetrics creates metric instruments on the given meter.
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	evaluations, err := meter.Int64Counter(MetricEvaluations,
		metric.WithDescription("Number of pipeline nodes evaluated"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricEvaluations, err)
	}

	fusions, err := meter.Int64Counter(MetricFusions,
		metric.WithDescription("Number of steps fused into an existing node"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricFusions, err)
	}

	suspensions, err := meter.Int64Counter(MetricSuspensions,
		metric.WithDescription("Number of continuations registered with a pending source"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricSuspensions, err)
	}

	return &PipelineMetrics{
		evaluations: evaluations,
		fusions:     fusions,
		suspensions: suspensions,
	}, nil
}

func kindAttr(kind string) metric.AddOption {
	return metric.WithAttributes(attribute.String(AttrNodeKind, kind))
}

// NodeEvaluated implements lazy.Observer.
func (m *PipelineMetrics) NodeEvaluated(kind string) {
	m.evaluations.Add(context.Background(), 1, kindAttr(kind))
}

// NodeFused implements lazy.Observer.
func (m *PipelineMetrics) NodeFused(kind string) {
	m.fusions.Add(context.Background(), 1, kindAttr(kind))
}

// Suspended implements lazy.Observer.
func (m *PipelineMetrics) Suspended(kind string) {
	m.suspensions.Add(context.Background(), 1, kindAttr(kind))
}
