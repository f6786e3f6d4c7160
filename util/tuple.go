package util

import "github.com/kbukum/lazykit/errors"

// Tuple is a fixed sequence of heterogeneous values addressed by position.
type Tuple struct {
	items []any
}

// TupleOf captures values in order.
func TupleOf(values ...any) Tuple {
	items := make([]any, len(values))
	copy(items, values)
	return Tuple{items: items}
}

// Len returns the number of positions.
func (t Tuple) Len() int { return len(t.items) }

// At returns the value at position i.
func (t Tuple) At(i int) (any, error) {
	if i < 0 || i >= len(t.items) {
		return nil, errors.IndexOutOfRange("position", i, len(t.items))
	}
	return t.items[i], nil
}
