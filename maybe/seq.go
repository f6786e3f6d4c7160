package maybe

import "github.com/kbukum/lazykit/errors"

// FirstOrNone returns the first item satisfying pred, or None.
func FirstOrNone[T any](items []T, pred func(T) bool) (Maybe[T], error) {
	if pred == nil {
		return Maybe[T]{}, errors.NullArgument("predicate")
	}
	for _, it := range items {
		if pred(it) {
			return Of(it), nil
		}
	}
	return Maybe[T]{}, nil
}

// MapEach applies f to every element of ms, keeping None in place.
func MapEach[T, U any](ms []Maybe[T], f func(T) U) ([]Maybe[U], error) {
	if f == nil {
		return nil, errors.NullArgument("selector")
	}
	out := make([]Maybe[U], len(ms))
	for i, m := range ms {
		if m.ok {
			out[i] = Of(f(m.value))
		}
	}
	return out, nil
}

// FilterEach applies pred to every element of ms.
func FilterEach[T any](ms []Maybe[T], pred func(T) bool) ([]Maybe[T], error) {
	if pred == nil {
		return nil, errors.NullArgument("predicate")
	}
	out := make([]Maybe[T], len(ms))
	for i, m := range ms {
		if m.ok && pred(m.value) {
			out[i] = m
		}
	}
	return out, nil
}

// MatchEach unwraps every element of ms, substituting def for None.
func MatchEach[T any](ms []Maybe[T], def T) []T {
	out := make([]T, len(ms))
	for i, m := range ms {
		out[i] = m.Match(def)
	}
	return out
}

// SomeEach returns the values of the Some elements, dropping None.
func SomeEach[T any](ms []Maybe[T]) []T {
	out := make([]T, 0, len(ms))
	for _, m := range ms {
		if m.ok {
			out = append(out, m.value)
		}
	}
	return out
}
