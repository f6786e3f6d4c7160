package pipeline

import "context"

// Map transforms each value using fn.
func Map[I, O any](p *Pipeline[I], fn func(context.Context, I) (O, error)) *Pipeline[O] {
	return derive(p, func(src Iterator[I]) func(context.Context) (O, bool, error) {
		return func(ctx context.Context) (O, bool, error) {
			var zero O
			val, ok, err := src.Next(ctx)
			if err != nil || !ok {
				return zero, false, err
			}
			out, err := fn(ctx, val)
			if err != nil {
				return zero, false, err
			}
			return out, true, nil
		}
	})
}

// Filter keeps only values that satisfy the predicate.
func Filter[T any](p *Pipeline[T], fn func(T) bool) *Pipeline[T] {
	return derive(p, func(src Iterator[T]) func(context.Context) (T, bool, error) {
		return func(ctx context.Context) (T, bool, error) {
			for {
				val, ok, err := src.Next(ctx)
				if err != nil || !ok || fn(val) {
					return val, ok && err == nil, err
				}
			}
		}
	})
}

// Tap calls fn as a side-effect for each value, then passes the value
// through unchanged.
func Tap[T any](p *Pipeline[T], fn func(context.Context, T) error) *Pipeline[T] {
	return Map(p, func(ctx context.Context, v T) (T, error) {
		return v, fn(ctx, v)
	})
}

// FlatMap transforms each value into a pipeline and flattens the results.
func FlatMap[I, O any](p *Pipeline[I], fn func(context.Context, I) (*Pipeline[O], error)) *Pipeline[O] {
	return &Pipeline[O]{
		create: func(ctx context.Context) Iterator[O] {
			src := p.create(ctx)
			var inner Iterator[O]
			closeInner := func() {
				if inner != nil {
					_ = inner.Close()
					inner = nil
				}
			}
			return &funcIter[O]{
				next: func(ctx context.Context) (O, bool, error) {
					var zero O
					for {
						if inner != nil {
							val, ok, err := inner.Next(ctx)
							if err != nil || ok {
								return val, ok, err
							}
							closeInner()
						}
						in, ok, err := src.Next(ctx)
						if err != nil || !ok {
							return zero, false, err
						}
						next, err := fn(ctx, in)
						if err != nil {
							return zero, false, err
						}
						inner = next.create(ctx)
					}
				},
				close: func() error {
					closeInner()
					return src.Close()
				},
			}
		},
	}
}

// Reduce accumulates all values into a single result.
// The pipeline yields exactly one value: the final accumulator.
func Reduce[T, R any](p *Pipeline[T], init R, fn func(R, T) R) *Pipeline[R] {
	return derive(p, func(src Iterator[T]) func(context.Context) (R, bool, error) {
		acc, done := init, false
		return func(ctx context.Context) (R, bool, error) {
			var zero R
			if done {
				return zero, false, nil
			}
			for {
				val, ok, err := src.Next(ctx)
				if err != nil {
					return zero, false, err
				}
				if !ok {
					done = true
					return acc, true, nil
				}
				acc = fn(acc, val)
			}
		}
	})
}

// Concat joins multiple pipelines sequentially.
// All values from the first pipeline are yielded before the second, etc.
func Concat[T any](pipelines ...*Pipeline[T]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			iters := make([]Iterator[T], len(pipelines))
			for i, p := range pipelines {
				iters[i] = p.create(ctx)
			}
			idx := 0
			return &funcIter[T]{
				next: func(ctx context.Context) (T, bool, error) {
					for ; idx < len(iters); idx++ {
						val, ok, err := iters[idx].Next(ctx)
						if err != nil || ok {
							return val, ok, err
						}
					}
					var zero T
					return zero, false, nil
				},
				close: func() error {
					var firstErr error
					for _, iter := range iters {
						if err := iter.Close(); err != nil && firstErr == nil {
							firstErr = err
						}
					}
					return firstErr
				},
			}
		},
	}
}
