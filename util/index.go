package util

import (
	"fmt"

	"github.com/kbukum/lazykit/errors"
)

// Index is a position counted either from the start of a sequence or
// backwards from its end. FromEnd(0) points one past the last element.
type Index struct {
	value   int
	fromEnd bool
}

// Indexes that bound every sequence.
var (
	StartIndex = Index{}
	EndIndex   = Index{fromEnd: true}
)

// FromStart returns the index n elements after the start.
func FromStart(n int) (Index, error) {
	if n < 0 {
		return Index{}, errors.InvalidArgument("value", "cannot be negative")
	}
	return Index{value: n}, nil
}

// FromEnd returns the index n elements before the end.
func FromEnd(n int) (Index, error) {
	if n < 0 {
		return Index{}, errors.InvalidArgument("value", "cannot be negative")
	}
	return Index{value: n, fromEnd: true}, nil
}

// IndexAt converts n to an Index. A negative n counts -n elements back
// from the end, so IndexAt(-1) is the last element.
func IndexAt(n int) Index {
	if n < 0 {
		return Index{value: -n, fromEnd: true}
	}
	return Index{value: n}
}

// Value returns the distance from the start or the end.
func (i Index) Value() int { return i.value }

// IsFromEnd reports whether the index counts from the end.
func (i Index) IsFromEnd() bool { return i.fromEnd }

// Offset returns the position of i in a sequence of the given length.
// The result is not bounds checked.
func (i Index) Offset(length int) int {
	if i.fromEnd {
		return length - i.value
	}
	return i.value
}

// IsStart reports whether i resolves to the first position.
func (i Index) IsStart(length int) bool { return i.Offset(length) == 0 }

// IsEnd reports whether i resolves to one past the last position.
func (i Index) IsEnd(length int) bool { return i.Offset(length) == length }

// Shift moves i n positions towards the end, keeping its anchor. It fails
// when the result would cross the anchor.
func (i Index) Shift(n int) (Index, error) {
	v := i.value + n
	if i.fromEnd {
		v = i.value - n
	}
	if v < 0 {
		return Index{}, errors.InvalidArgument("n", fmt.Sprintf("moves %s past its anchor", i))
	}
	return Index{value: v, fromEnd: i.fromEnd}, nil
}

func (i Index) String() string {
	if i.fromEnd {
		return fmt.Sprintf("^%d", i.value)
	}
	return fmt.Sprintf("%d", i.value)
}

// AddIndex resolves both indexes against length and returns their sum as
// a start-anchored index. The sum must lie within [0, length].
func AddIndex(a, b Index, length int) (Index, error) {
	return combine(a.Offset(length)+b.Offset(length), length)
}

// SubIndex is AddIndex for the difference a - b.
func SubIndex(a, b Index, length int) (Index, error) {
	return combine(a.Offset(length)-b.Offset(length), length)
}

func combine(pos, length int) (Index, error) {
	if length <= 0 {
		return Index{}, errors.InvalidArgument("length", "must be positive")
	}
	if pos < 0 || pos > length {
		return Index{}, errors.IndexOutOfRange("index", pos, length)
	}
	return Index{value: pos}, nil
}
