package observability

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kbukum/lazykit/config"
	"github.com/kbukum/lazykit/errors"
	"github.com/kbukum/lazykit/lazy"
	"github.com/kbukum/lazykit/logger"
	"github.com/kbukum/lazykit/task"
)

// ShutdownFunc flushes and releases what Setup installed.
type ShutdownFunc func(context.Context) error

type setupOptions struct {
	registerer prometheus.Registerer
	logEvents  bool
}

// SetupOption customizes Setup.
type SetupOption func(*setupOptions)

// WithRegisterer sets the Prometheus registerer used by the prometheus exporter.
func WithRegisterer(reg prometheus.Registerer) SetupOption {
	return func(o *setupOptions) { o.registerer = reg }
}

// WithoutEventLog drops the debug log observer.
func WithoutEventLog() SetupOption {
	return func(o *setupOptions) { o.logEvents = false }
}

// Setup applies settings to the lazy and task packages: the producer
// configuration, a debug log observer, and the configured metrics and
// tracing backend. The returned ShutdownFunc restores the defaults and
// shuts the providers down.
func Setup(ctx context.Context, s *config.Settings, opts ...SetupOption) (ShutdownFunc, error) {
	if s == nil {
		return nil, errors.NullArgument("settings")
	}
	o := setupOptions{registerer: prometheus.DefaultRegisterer, logEvents: true}
	for _, opt := range opts {
		opt(&o)
	}

	task.Configure(s.Tasks)

	var (
		observers []lazy.Observer
		shutdowns []ShutdownFunc
	)
	if o.logEvents {
		observers = append(observers, lazy.NewLogObserver(nil))
	}

	shutdown := func(ctx context.Context) error {
		lazy.SetObserver(nil)
		lazy.SetTracer(nil)
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			if err := shutdowns[i](ctx); err != nil {
				errs = append(errs, err)
			}
		}
		return stderrors.Join(errs...)
	}

	t := s.Telemetry
	if t.Enabled {
		switch t.Exporter {
		case config.ExporterPrometheus:
			prom, err := NewPrometheusObserver(o.registerer)
			if err != nil {
				return nil, fmt.Errorf("observability: %w", err)
			}
			shutdowns = append(shutdowns, func(context.Context) error {
				prom.Unregister()
				return nil
			})
			observers = append(observers, prom)
		case config.ExporterOTLP:
			mp, err := InitMeter(ctx, &MeterConfig{
				ServiceName:    s.Name,
				ServiceVersion: s.Version,
				Environment:    s.Environment,
				Endpoint:       t.Endpoint,
				Insecure:       t.Insecure,
				Interval:       t.Interval,
			})
			if err != nil {
				return nil, fmt.Errorf("observability: %w", err)
			}
			shutdowns = append(shutdowns, mp.Shutdown)

			metrics, err := NewPipelineMetrics(mp.Meter(defaultTracerName))
			if err != nil {
				_ = shutdown(ctx)
				return nil, fmt.Errorf("observability: %w", err)
			}
			observers = append(observers, metrics)

			if t.Tracing {
				tp, err := InitTracer(ctx, TracerConfig{
					ServiceName:    s.Name,
					ServiceVersion: s.Version,
					Environment:    s.Environment,
					Endpoint:       t.Endpoint,
					Insecure:       t.Insecure,
					SampleRate:     t.SampleRate,
				})
				if err != nil {
					_ = shutdown(ctx)
					return nil, fmt.Errorf("observability: %w", err)
				}
				shutdowns = append(shutdowns, tp.Shutdown)
				lazy.SetTracer(tp.Tracer(defaultTracerName))
			}
		default:
			return nil, errors.InvalidArgument("telemetry.exporter", fmt.Sprintf("unknown exporter %q", t.Exporter))
		}
	}

	lazy.SetObserver(lazy.Observers(observers...))

	logger.Get("observability").Debug("pipeline observability configured", logger.Fields(
		"telemetry", t.Enabled,
		"exporter", t.Exporter,
		"observers", len(observers),
	))
	return shutdown, nil
}
