// Package lazy provides a deferred, memoized optional value.
//
// A *Maybe[T] wraps the root of a small computation graph. Map and Filter
// record steps instead of running them; nothing happens until the value is
// pulled with Force, Match, MatchErr or Await. Every node caches its result,
// so forcing one pipeline repeatedly runs each step once.
//
// Fan-out shares work up to the last node that is not a fused Map. Two
// pipelines mapped off the same unforced Map each carry their own fused
// copy of its function and run it separately; the source below it is
// still evaluated once. Force the shared Map first to run it once for all.
//
// # Graph shape
//
//   - Map over an unforced Map fuses both functions into one node.
//   - Filter over an unforced Filter fuses both predicates with And.
//   - Any step added to an already forced pipeline is rooted on its cached
//     value, releasing the old chain.
//
// A chain of k maps over one source is therefore a single node deep.
//
// # Suspension
//
// Pipelines built from FromFuture wait on an external producer. Awaiter
// exposes the single suspension point of the pipeline: IsReady and OnReady
// delegate through every step to the nearest asynchronous source, so a
// pipeline suspends once at its root no matter how many steps it has.
//
//	src, _ := lazy.FromFuture[int](task)
//	p, _ := lazy.Map(src, func(x int) int { return x/10 + 1 })
//	v, err := p.Await(ctx)
//
// # Concurrency
//
// Pipelines spawn no goroutines. Forcing a shared node from several
// goroutines is safe and still evaluates it once.
package lazy
