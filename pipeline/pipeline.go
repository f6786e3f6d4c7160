package pipeline

import "context"

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Pipeline is a lazy, pull-based sequence. No work happens until values
// are pulled via Collect, ForEach or First.
type Pipeline[T any] struct {
	create func(ctx context.Context) Iterator[T]
}

// Iter returns the raw Iterator for this pipeline. The caller must Close() it.
func (p *Pipeline[T]) Iter(ctx context.Context) Iterator[T] {
	return p.create(ctx)
}

// funcIter adapts a pair of closures to Iterator.
type funcIter[T any] struct {
	next  func(ctx context.Context) (T, bool, error)
	close func() error
}

func (it *funcIter[T]) Next(ctx context.Context) (T, bool, error) { return it.next(ctx) }

func (it *funcIter[T]) Close() error {
	if it.close == nil {
		return nil
	}
	return it.close()
}

// derive builds a one-to-one stage over p. step receives the upstream
// iterator once per run and returns the stage's Next.
func derive[I, O any](p *Pipeline[I], step func(src Iterator[I]) func(context.Context) (O, bool, error)) *Pipeline[O] {
	return &Pipeline[O]{
		create: func(ctx context.Context) Iterator[O] {
			src := p.create(ctx)
			return &funcIter[O]{next: step(src), close: src.Close}
		},
	}
}

// --- Constructors ---

// From creates a pipeline from an existing Iterator. The iterator is
// shared by every run.
func From[T any](iter Iterator[T]) *Pipeline[T] {
	return &Pipeline[T]{create: func(context.Context) Iterator[T] { return iter }}
}

// FromFunc creates a pipeline from a factory that produces an Iterator.
func FromFunc[T any](fn func(ctx context.Context) Iterator[T]) *Pipeline[T] {
	return &Pipeline[T]{create: fn}
}

// FromSlice creates a pipeline over items. Each run starts from the first item.
func FromSlice[T any](items []T) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(context.Context) Iterator[T] {
			return sliceIter(items)
		},
	}
}

func sliceIter[T any](items []T) Iterator[T] {
	i := 0
	return &funcIter[T]{next: func(context.Context) (T, bool, error) {
		if i >= len(items) {
			var zero T
			return zero, false, nil
		}
		i++
		return items[i-1], true, nil
	}}
}

// --- Terminals ---

// ForEach pulls every value and hands it to fn, stopping at the first error.
func ForEach[T any](ctx context.Context, p *Pipeline[T], fn func(context.Context, T) error) error {
	iter := p.create(ctx)
	defer iter.Close()
	for {
		val, ok, err := iter.Next(ctx)
		if err != nil || !ok {
			return err
		}
		if err := fn(ctx, val); err != nil {
			return err
		}
	}
}

// Collect runs the pipeline and returns all values as a slice. On error
// the values pulled so far are returned with it.
func Collect[T any](ctx context.Context, p *Pipeline[T]) ([]T, error) {
	var out []T
	err := ForEach(ctx, p, func(_ context.Context, v T) error {
		out = append(out, v)
		return nil
	})
	return out, err
}
