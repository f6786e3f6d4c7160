package pipeline

import (
	"context"

	"github.com/kbukum/lazykit/lazy"
	"github.com/kbukum/lazykit/maybe"
)

// Lookup starts a deferred lookup for each value. Nothing is awaited; pair
// it with Resolve or ResolveParallel.
func Lookup[K, V any](p *Pipeline[K], fn func(context.Context, K) *lazy.Maybe[V]) *Pipeline[*lazy.Maybe[V]] {
	return Map(p, func(ctx context.Context, k K) (*lazy.Maybe[V], error) {
		return fn(ctx, k), nil
	})
}

func await[T any](ctx context.Context, m *lazy.Maybe[T]) (maybe.Maybe[T], error) {
	return m.Await(ctx)
}

// Resolve awaits each pipeline in stream order. Cancelling ctx ends the
// stream with ctx's error.
func Resolve[T any](p *Pipeline[*lazy.Maybe[T]]) *Pipeline[maybe.Maybe[T]] {
	return Map(p, await[T])
}

// ResolveParallel awaits up to n pipelines at once. Order is NOT preserved.
func ResolveParallel[T any](p *Pipeline[*lazy.Maybe[T]], n int) *Pipeline[maybe.Maybe[T]] {
	return Parallel(p, n, await[T])
}
