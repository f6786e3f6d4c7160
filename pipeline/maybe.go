package pipeline

import (
	"context"

	"github.com/kbukum/lazykit/maybe"
)

// SelectSome maps each value through fn. A nil result is None.
func SelectSome[I, O any](p *Pipeline[I], fn func(I) O) *Pipeline[maybe.Maybe[O]] {
	return Map(p, func(_ context.Context, v I) (maybe.Maybe[O], error) {
		return maybe.Of(fn(v)), nil
	})
}

// WhereSome yields Some(v) for values matching pred and None otherwise,
// keeping the stream's length.
func WhereSome[T any](p *Pipeline[T], pred func(T) bool) *Pipeline[maybe.Maybe[T]] {
	return Map(p, func(_ context.Context, v T) (maybe.Maybe[T], error) {
		return maybe.FromOk(v, pred(v)), nil
	})
}

// MapMaybe applies fn inside each present value. None passes through
// without calling fn. A nil fn fails the first pull.
func MapMaybe[I, O any](p *Pipeline[maybe.Maybe[I]], fn func(I) O) *Pipeline[maybe.Maybe[O]] {
	return Map(p, func(_ context.Context, m maybe.Maybe[I]) (maybe.Maybe[O], error) {
		return maybe.Map(m, fn)
	})
}

// FilterMaybe turns present values failing pred into None.
func FilterMaybe[T any](p *Pipeline[maybe.Maybe[T]], pred func(T) bool) *Pipeline[maybe.Maybe[T]] {
	return Map(p, func(_ context.Context, m maybe.Maybe[T]) (maybe.Maybe[T], error) {
		return m.Filter(pred)
	})
}

// MatchMaybe unwraps each value, substituting def for None.
func MatchMaybe[T any](p *Pipeline[maybe.Maybe[T]], def T) *Pipeline[T] {
	return Map(p, func(_ context.Context, m maybe.Maybe[T]) (T, error) {
		return m.Match(def), nil
	})
}

// Somes drops None and unwraps the rest.
func Somes[T any](p *Pipeline[maybe.Maybe[T]]) *Pipeline[T] {
	return MatchMaybe(Filter(p, maybe.Maybe[T].IsSome), *new(T))
}

// First returns the first value matching pred, or None when the stream
// ends without one. Pulling stops at the match.
func First[T any](ctx context.Context, p *Pipeline[T], pred func(T) bool) (maybe.Maybe[T], error) {
	iter := Filter(p, pred).create(ctx)
	defer iter.Close()
	val, ok, err := iter.Next(ctx)
	if err != nil {
		return maybe.None[T](), err
	}
	return maybe.FromOk(val, ok), nil
}
