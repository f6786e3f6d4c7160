package observability

import (
	stderrors "errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kbukum/lazykit/lazy"
)

// PrometheusObserver counts lazy pipeline graph events on Prometheus
// counters labelled by node kind.
type PrometheusObserver struct {
	Evaluations *prometheus.CounterVec
	Fusions     *prometheus.CounterVec
	Suspensions *prometheus.CounterVec

	reg prometheus.Registerer
}

var _ lazy.Observer = (*PrometheusObserver)(nil)

// NewPrometheusObserver registers the pipeline counters with reg.
// A nil reg uses prometheus.DefaultRegisterer. Counters already registered
// with reg by an earlier observer are reused.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &PrometheusObserver{reg: reg}

	var err error
	if o.Evaluations, err = registerCounterVec(reg, "node_evaluations_total",
		"Total number of pipeline nodes evaluated"); err != nil {
		return nil, err
	}
	if o.Fusions, err = registerCounterVec(reg, "node_fusions_total",
		"Total number of steps fused into an existing node"); err != nil {
		o.Unregister()
		return nil, err
	}
	if o.Suspensions, err = registerCounterVec(reg, "suspensions_total",
		"Total number of continuations registered with a pending source"); err != nil {
		o.Unregister()
		return nil, err
	}
	return o, nil
}

func registerCounterVec(reg prometheus.Registerer, name, help string) (*prometheus.CounterVec, error) {
	c := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lazykit",
			Subsystem: "lazy",
			Name:      name,
			Help:      help,
		},
		[]string{"kind"},
	)
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if stderrors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}

// Unregister removes the counters from the registerer they were added to.
func (o *PrometheusObserver) Unregister() {
	for _, c := range []*prometheus.CounterVec{o.Evaluations, o.Fusions, o.Suspensions} {
		if c != nil {
			o.reg.Unregister(c)
		}
	}
}

// NodeEvaluated implements lazy.Observer.
func (o *PrometheusObserver) NodeEvaluated(kind string) {
	o.Evaluations.WithLabelValues(kind).Inc()
}

// NodeFused implements lazy.Observer.
func (o *PrometheusObserver) NodeFused(kind string) {
	o.Fusions.WithLabelValues(kind).Inc()
}

// Suspended implements lazy.Observer.
func (o *PrometheusObserver) Suspended(kind string) {
	o.Suspensions.WithLabelValues(kind).Inc()
}
