package util

import (
	"github.com/kbukum/lazykit/errors"
)

func resolve(r Range, length int) (int, int, error) {
	if length <= 0 {
		return 0, 0, errors.InvalidArgument("length", "must be positive")
	}
	offset, n, ok := r.ValidRange(length)
	if !ok {
		return 0, 0, errors.IndexOutOfRange("range", r, length)
	}
	return offset, n, nil
}

// Slice returns the elements of s selected by r. The result shares s's
// backing array.
func Slice[T any](s []T, r Range) ([]T, error) {
	offset, n, err := resolve(r, len(s))
	if err != nil {
		return nil, err
	}
	return s[offset : offset+n : offset+n], nil
}

// Subslice is Slice returning a copy.
func Subslice[T any](s []T, r Range) ([]T, error) {
	view, err := Slice(s, r)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(view))
	copy(out, view)
	return out, nil
}

// At returns the element of s at i.
func At[T any](s []T, i Index) (T, error) {
	pos := i.Offset(len(s))
	if pos < 0 || pos >= len(s) {
		var zero T
		return zero, errors.IndexOutOfRange("index", i, len(s))
	}
	return s[pos], nil
}

// Substring returns the runes of s selected by r.
func Substring(s string, r Range) (string, error) {
	view, err := Slice([]rune(s), r)
	if err != nil {
		return "", err
	}
	return string(view), nil
}
