package lazy

import "github.com/kbukum/lazykit/maybe"

// asyncNode wraps an external producer. It is the only node that can
// make a pipeline wait.
type asyncNode[T any] struct {
	future Future[T]
	cache  memo[T]
}

func (n *asyncNode[T]) evaluate() maybe.Maybe[T] {
	if v, ok := n.cache.peek(); ok {
		return v
	}
	// Wait outside the slot lock so continuations fired by the producer
	// can force this node.
	waitReady(n.future)
	return n.cache.get(func() maybe.Maybe[T] {
		v := n.future.Result()
		observer().NodeEvaluated(KindAsync)
		return v
	})
}

func (n *asyncNode[T]) evaluated() bool        { return n.cache.isSet() }
func (n *asyncNode[T]) kind() string           { return KindAsync }
func (n *asyncNode[T]) Result() maybe.Maybe[T] { return n.evaluate() }

func (n *asyncNode[T]) evalAny() (any, bool) {
	return n.evaluate().Get()
}

func (n *asyncNode[T]) IsReady() bool {
	return n.cache.isSet() || n.future.IsReady()
}

func (n *asyncNode[T]) OnReady(k func()) {
	if k == nil {
		return
	}
	if n.IsReady() {
		k()
		return
	}
	observer().Suspended(KindAsync)
	n.future.OnReady(k)
}
