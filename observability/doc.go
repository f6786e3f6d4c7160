// Package observability wires lazy pipelines to OpenTelemetry and
// Prometheus.
//
// Setup reads config.Settings and installs the matching lazy.Observer and
// tracer:
//
//	shutdown, err := observability.Setup(ctx, settings)
//	defer shutdown(ctx)
//
// The pieces can also be used directly:
//
//	mp, err := observability.InitMeter(ctx, &cfg)
//	metrics, err := observability.NewPipelineMetrics(mp.Meter("app"))
//	lazy.SetObserver(metrics)
//
//	prom, err := observability.NewPrometheusObserver(prometheus.DefaultRegisterer)
//	lazy.SetObserver(prom)
//	defer prom.Unregister()
package observability
