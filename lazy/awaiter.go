package lazy

import (
	"sync"

	"github.com/kbukum/lazykit/maybe"
)

// Waiter is the readiness half of the suspension protocol.
type Waiter interface {
	// IsReady reports whether a result can be obtained without blocking.
	IsReady() bool
	// OnReady runs k once the result is available. k runs immediately
	// when already ready. A nil k is ignored.
	OnReady(k func())
}

// Awaiter is a Waiter that also yields the result.
type Awaiter[T any] interface {
	Waiter
	// Result returns the value. It blocks when called before IsReady.
	Result() maybe.Maybe[T]
}

// Future is any asynchronous producer of exactly one maybe.Maybe[T].
type Future[T any] = Awaiter[T]

// waitReady blocks until w is ready. Nodes call it before taking their
// cache lock so a continuation fired by the producer can force the same
// node.
func waitReady(w Waiter) {
	if w.IsReady() {
		return
	}
	ch := make(chan struct{})
	var once sync.Once
	w.OnReady(func() { once.Do(func() { close(ch) }) })
	<-ch
}
