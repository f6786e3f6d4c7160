package pipeline

import (
	"context"
	"sync"
)

// result carries a value or error through a channel.
type result[T any] struct {
	val T
	err error
}

func send[T any](ctx context.Context, ch chan<- result[T], r result[T]) bool {
	select {
	case ch <- r:
		return true
	case <-ctx.Done():
		return false
	}
}

// pump pulls src until it is exhausted, fails, or emit refuses a value.
func pump[T any](ctx context.Context, src Iterator[T], emit func(T) bool, fail func(error)) {
	for {
		val, ok, err := src.Next(ctx)
		if err != nil {
			fail(err)
			return
		}
		if !ok || !emit(val) {
			return
		}
	}
}

// drainChan reads results until ch is closed. A channel closed because
// ctx ended reports ctx's error.
func drainChan[T any](ch <-chan result[T], closer func() error) Iterator[T] {
	return &funcIter[T]{
		next: func(ctx context.Context) (T, bool, error) {
			var zero T
			select {
			case r, open := <-ch:
				if !open {
					return zero, false, ctx.Err()
				}
				if r.err != nil {
					return zero, false, r.err
				}
				return r.val, true, nil
			case <-ctx.Done():
				return zero, false, ctx.Err()
			}
		},
		close: closer,
	}
}

// Buffer adds a buffered channel between pipeline stages.
// This decouples the production rate from the consumption rate.
func Buffer[T any](p *Pipeline[T], size int) *Pipeline[T] {
	if size <= 0 {
		size = 1
	}
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			src := p.create(ctx)
			bufCtx, cancel := context.WithCancel(ctx)
			ch := make(chan result[T], size)

			go func() {
				defer close(ch)
				pump(bufCtx, src,
					func(v T) bool { return send(bufCtx, ch, result[T]{val: v}) },
					func(err error) { send(bufCtx, ch, result[T]{err: err}) },
				)
			}()

			return drainChan(ch, func() error {
				cancel()
				return src.Close()
			})
		},
	}
}

// Parallel applies fn to each value concurrently with up to n workers.
// Order is NOT preserved. Use Map for ordered processing.
func Parallel[I, O any](p *Pipeline[I], n int, fn func(context.Context, I) (O, error)) *Pipeline[O] {
	if n <= 0 {
		n = 1
	}
	return &Pipeline[O]{
		create: func(ctx context.Context) Iterator[O] {
			src := p.create(ctx)
			workerCtx, cancel := context.WithCancel(ctx)
			out := make(chan result[O], n)
			in := make(chan I, n)

			go func() {
				defer close(in)
				pump(workerCtx, src,
					func(v I) bool {
						select {
						case in <- v:
							return true
						case <-workerCtx.Done():
							return false
						}
					},
					func(err error) { send(workerCtx, out, result[O]{err: err}) },
				)
			}()

			var wg sync.WaitGroup
			for range n {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for val := range in {
						o, err := fn(workerCtx, val)
						if err != nil {
							send(workerCtx, out, result[O]{err: err})
							cancel()
							return
						}
						if !send(workerCtx, out, result[O]{val: o}) {
							return
						}
					}
				}()
			}

			go func() {
				wg.Wait()
				close(out)
			}()

			return drainChan(out, func() error {
				cancel()
				return src.Close()
			})
		},
	}
}

// Merge combines multiple pipelines concurrently.
// Values are yielded as they become available from any source.
// Order is NOT preserved.
func Merge[T any](pipelines ...*Pipeline[T]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			mergeCtx, cancel := context.WithCancel(ctx)
			ch := make(chan result[T], len(pipelines))
			iters := make([]Iterator[T], len(pipelines))

			var wg sync.WaitGroup
			for i, p := range pipelines {
				iters[i] = p.create(mergeCtx)
				wg.Add(1)
				go func(src Iterator[T]) {
					defer wg.Done()
					pump(mergeCtx, src,
						func(v T) bool { return send(mergeCtx, ch, result[T]{val: v}) },
						func(err error) { send(mergeCtx, ch, result[T]{err: err}) },
					)
				}(iters[i])
			}

			go func() {
				wg.Wait()
				close(ch)
			}()

			return drainChan(ch, func() error {
				cancel()
				var firstErr error
				for _, iter := range iters {
					if err := iter.Close(); err != nil && firstErr == nil {
						firstErr = err
					}
				}
				return firstErr
			})
		},
	}
}
