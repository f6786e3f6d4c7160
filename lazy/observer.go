package lazy

import (
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/kbukum/lazykit/logger"
)

// Node kinds reported to observers.
const (
	KindResolved  = "resolved"
	KindTransform = "transform"
	KindCondition = "condition"
	KindAsync     = "async"
	KindFlatten   = "flatten"
)

// Observer receives pipeline graph events. Implementations must be safe
// for concurrent use and must not block.
type Observer interface {
	// NodeEvaluated is called once per node when its cache slot is filled.
	NodeEvaluated(kind string)
	// NodeFused is called when a new step is merged into an existing node.
	NodeFused(kind string)
	// Suspended is called when a continuation is registered with a source
	// that is not ready yet.
	Suspended(kind string)
}

type nopObserver struct{}

func (nopObserver) NodeEvaluated(string) {}
func (nopObserver) NodeFused(string)     {}
func (nopObserver) Suspended(string)     {}

type observerBox struct{ o Observer }

var (
	currentObserver atomic.Pointer[observerBox]
	currentTracer   atomic.Pointer[tracerBox]
)

// SetObserver installs o for all pipelines. nil restores the no-op observer.
func SetObserver(o Observer) {
	if o == nil {
		currentObserver.Store(nil)
		return
	}
	currentObserver.Store(&observerBox{o: o})
}

func observer() Observer {
	if b := currentObserver.Load(); b != nil {
		return b.o
	}
	return nopObserver{}
}

type tracerBox struct{ t trace.Tracer }

// SetTracer installs the tracer used for Await spans. nil disables tracing.
func SetTracer(t trace.Tracer) {
	if t == nil {
		currentTracer.Store(nil)
		return
	}
	currentTracer.Store(&tracerBox{t: t})
}

func tracer() trace.Tracer {
	if b := currentTracer.Load(); b != nil {
		return b.t
	}
	return noop.NewTracerProvider().Tracer("lazykit/lazy")
}

// Observers fans events out to every non-nil observer in order.
func Observers(os ...Observer) Observer {
	list := make(multiObserver, 0, len(os))
	for _, o := range os {
		if o != nil {
			list = append(list, o)
		}
	}
	return list
}

type multiObserver []Observer

func (m multiObserver) NodeEvaluated(kind string) {
	for _, o := range m {
		o.NodeEvaluated(kind)
	}
}

func (m multiObserver) NodeFused(kind string) {
	for _, o := range m {
		o.NodeFused(kind)
	}
}

func (m multiObserver) Suspended(kind string) {
	for _, o := range m {
		o.Suspended(kind)
	}
}

// NewLogObserver returns an Observer writing graph events at debug level.
// A nil logger uses the registered "lazy" component logger.
func NewLogObserver(l *logger.Logger) Observer {
	if l == nil {
		l = logger.Get("lazy")
	}
	return &logObserver{log: l}
}

type logObserver struct {
	log *logger.Logger
}

func (o *logObserver) NodeEvaluated(kind string) {
	if o.log.Enabled("debug") {
		o.log.Debug("node evaluated", logger.Fields(logger.FieldNodeKind, kind))
	}
}

func (o *logObserver) NodeFused(kind string) {
	if o.log.Enabled("debug") {
		o.log.Debug("steps fused", logger.Fields(logger.FieldNodeKind, kind))
	}
}

func (o *logObserver) Suspended(kind string) {
	if o.log.Enabled("debug") {
		o.log.Debug("pipeline suspended", logger.Fields(logger.FieldNodeKind, kind))
	}
}
