package lazy

import "github.com/kbukum/lazykit/maybe"

// flattenNode joins a pipeline of pipelines: it forces the outer value and
// then the inner pipeline it holds.
type flattenNode[T any] struct {
	outer node[*Maybe[T]]
	cache memo[T]
}

func (n *flattenNode[T]) evaluate() maybe.Maybe[T] {
	if v, ok := n.cache.peek(); ok {
		return v
	}
	waitReady(n)
	return n.cache.get(func() maybe.Maybe[T] {
		var out maybe.Maybe[T]
		if inner, ok := n.outer.evaluate().Get(); ok && inner != nil {
			out = inner.node().evaluate()
		}
		observer().NodeEvaluated(KindFlatten)
		return out
	})
}

func (n *flattenNode[T]) evaluated() bool        { return n.cache.isSet() }
func (n *flattenNode[T]) kind() string           { return KindFlatten }
func (n *flattenNode[T]) Result() maybe.Maybe[T] { return n.evaluate() }

func (n *flattenNode[T]) evalAny() (any, bool) {
	return n.evaluate().Get()
}

// inner returns the inner pipeline's node once the outer side is ready.
func (n *flattenNode[T]) inner() (node[T], bool) {
	p, ok := n.outer.evaluate().Get()
	if !ok || p == nil {
		return nil, false
	}
	return p.node(), true
}

func (n *flattenNode[T]) IsReady() bool {
	if n.cache.isSet() {
		return true
	}
	if !n.outer.IsReady() {
		return false
	}
	in, ok := n.inner()
	return !ok || in.IsReady()
}

func (n *flattenNode[T]) OnReady(k func()) {
	if k == nil {
		return
	}
	if n.IsReady() {
		k()
		return
	}
	if !n.outer.IsReady() {
		// Re-dispatch once the outer side resolves so k ends up on the
		// inner pipeline's source.
		n.outer.OnReady(func() { n.OnReady(k) })
		return
	}
	if in, ok := n.inner(); ok {
		in.OnReady(k)
		return
	}
	k()
}
