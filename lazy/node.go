package lazy

import "github.com/kbukum/lazykit/maybe"

// upstream is the type-erased view a transform keeps of its source, so
// fusion can produce a node of a new output type.
type upstream interface {
	Waiter
	evalAny() (any, bool)
	evaluated() bool
}

// node is one step of the deferred graph. Every node is its own awaiter.
type node[T any] interface {
	upstream
	Awaiter[T]
	evaluate() maybe.Maybe[T]
	kind() string
}

// resolvedNode holds a value known at construction.
type resolvedNode[T any] struct {
	value maybe.Maybe[T]
}

func (n *resolvedNode[T]) evaluate() maybe.Maybe[T] { return n.value }
func (n *resolvedNode[T]) evaluated() bool          { return true }
func (n *resolvedNode[T]) kind() string             { return KindResolved }
func (n *resolvedNode[T]) IsReady() bool            { return true }
func (n *resolvedNode[T]) Result() maybe.Maybe[T]   { return n.value }
func (n *resolvedNode[T]) evalAny() (any, bool)     { return n.value.Get() }

func (n *resolvedNode[T]) OnReady(k func()) {
	if k != nil {
		k()
	}
}

// transformNode maps the value of its source through fn.
type transformNode[T any] struct {
	source upstream
	fn     func(any) T
	cache  memo[T]
}

func (n *transformNode[T]) evaluate() maybe.Maybe[T] {
	if v, ok := n.cache.peek(); ok {
		return v
	}
	waitReady(n)
	return n.cache.get(func() maybe.Maybe[T] {
		var out maybe.Maybe[T]
		if v, ok := n.source.evalAny(); ok {
			out = maybe.Of(n.fn(v))
		}
		observer().NodeEvaluated(KindTransform)
		return out
	})
}

func (n *transformNode[T]) evaluated() bool        { return n.cache.isSet() }
func (n *transformNode[T]) kind() string           { return KindTransform }
func (n *transformNode[T]) Result() maybe.Maybe[T] { return n.evaluate() }

func (n *transformNode[T]) evalAny() (any, bool) {
	return n.evaluate().Get()
}

func (n *transformNode[T]) IsReady() bool {
	return n.cache.isSet() || n.source.IsReady()
}

func (n *transformNode[T]) OnReady(k func()) {
	if k == nil {
		return
	}
	if n.IsReady() {
		k()
		return
	}
	n.source.OnReady(k)
}

// conditionNode keeps the value of its source only when pred holds.
type conditionNode[T any] struct {
	source node[T]
	pred   func(T) bool
	cache  memo[T]
}

func (n *conditionNode[T]) evaluate() maybe.Maybe[T] {
	if v, ok := n.cache.peek(); ok {
		return v
	}
	waitReady(n)
	return n.cache.get(func() maybe.Maybe[T] {
		var out maybe.Maybe[T]
		if v, ok := n.source.evaluate().Get(); ok && n.pred(v) {
			out = maybe.FromOk(v, true)
		}
		observer().NodeEvaluated(KindCondition)
		return out
	})
}

func (n *conditionNode[T]) evaluated() bool        { return n.cache.isSet() }
func (n *conditionNode[T]) kind() string           { return KindCondition }
func (n *conditionNode[T]) Result() maybe.Maybe[T] { return n.evaluate() }

func (n *conditionNode[T]) evalAny() (any, bool) {
	return n.evaluate().Get()
}

func (n *conditionNode[T]) IsReady() bool {
	return n.cache.isSet() || n.source.IsReady()
}

func (n *conditionNode[T]) OnReady(k func()) {
	if k == nil {
		return
	}
	if n.IsReady() {
		k()
		return
	}
	n.source.OnReady(k)
}

// settled returns a resolved node carrying the cached value of an already
// evaluated node, so a new step does not keep the old chain alive.
func settled[T any](n node[T]) node[T] {
	if r, ok := n.(*resolvedNode[T]); ok {
		return r
	}
	return &resolvedNode[T]{value: n.evaluate()}
}

// newTransform builds "n, then f".
func newTransform[T, U any](n node[T], f func(T) U) node[U] {
	erased := func(a any) U {
		v, _ := a.(T)
		return f(v)
	}
	if n.evaluated() {
		return &transformNode[U]{source: settled(n), fn: erased}
	}
	if t, ok := n.(*transformNode[T]); ok {
		observer().NodeFused(KindTransform)
		return &transformNode[U]{source: t.source, fn: Compose(t.fn, f)}
	}
	return &transformNode[U]{source: n, fn: erased}
}

// newCondition builds "n, then keep when p".
func newCondition[T any](n node[T], p func(T) bool) node[T] {
	if n.evaluated() {
		return &conditionNode[T]{source: settled(n), pred: p}
	}
	if c, ok := n.(*conditionNode[T]); ok {
		observer().NodeFused(KindCondition)
		return &conditionNode[T]{source: c.source, pred: And(c.pred, p)}
	}
	return &conditionNode[T]{source: n, pred: p}
}
