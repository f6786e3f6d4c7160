// Package pipeline provides composable, pull-based sequence pipelines,
// including operators over optional values and deferred lookups.
//
// Pipelines are lazy. No work happens until values are pulled via Collect,
// ForEach or First. Each stage pulls from the previous stage on demand,
// providing natural backpressure without explicit flow control.
//
// # Operators
//
// Synchronous:
//
//   - Map, Filter, Tap, FlatMap, Reduce, Concat
//   - SelectSome, WhereSome: lift plain values into maybe.Maybe
//   - MapMaybe, FilterMaybe, MatchMaybe, Somes: work inside maybe.Maybe values
//   - Lookup, Resolve: start and await lazy.Maybe lookups in order
//
// Concurrent:
//
//   - Buffer: decouple producer/consumer with a buffered channel
//   - Parallel, ResolveParallel: worker pool (order NOT preserved)
//   - Merge: combine multiple pipelines concurrently (order NOT preserved)
//
// # Usage
//
//	ids := pipeline.FromSlice([]string{"a", "b", "c"})
//	cached := pipeline.Lookup(ids, func(ctx context.Context, id string) *lazy.Maybe[string] {
//	    return rediskv.Get(ctx, client, id)
//	})
//	hits, err := pipeline.Collect(ctx, pipeline.Somes(pipeline.ResolveParallel(cached, 8)))
package pipeline
