package lazy

import (
	"sync"
	"sync/atomic"

	"github.com/kbukum/lazykit/maybe"
)

// memo is a write-once cache slot. Once populated it is never overwritten.
// If compute panics the slot stays empty and the next get retries.
type memo[T any] struct {
	mu    sync.Mutex
	done  atomic.Bool
	value maybe.Maybe[T]
}

func (m *memo[T]) get(compute func() maybe.Maybe[T]) maybe.Maybe[T] {
	if m.done.Load() {
		return m.value
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done.Load() {
		return m.value
	}
	v := compute()
	m.value = v
	m.done.Store(true)
	return v
}

func (m *memo[T]) peek() (maybe.Maybe[T], bool) {
	if m.done.Load() {
		return m.value, true
	}
	return maybe.Maybe[T]{}, false
}

func (m *memo[T]) isSet() bool { return m.done.Load() }
