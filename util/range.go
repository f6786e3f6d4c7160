package util

import (
	"fmt"

	"github.com/kbukum/lazykit/errors"
)

// Range is a half-open interval [Start, End) over a sequence.
type Range struct {
	Start Index
	End   Index
}

// All covers a whole sequence.
var All = Range{Start: StartIndex, End: EndIndex}

// NewRange builds a range from two ints using IndexAt.
func NewRange(start, end int) Range {
	return Range{Start: IndexAt(start), End: IndexAt(end)}
}

// StartAt returns the range from start to the end of the sequence.
func StartAt(start Index) Range { return Range{Start: start, End: EndIndex} }

// EndAt returns the range from the start of the sequence to end.
func EndAt(end Index) Range { return Range{Start: StartIndex, End: end} }

func (r Range) String() string {
	return fmt.Sprintf("[%s..%s]", r.Start, r.End)
}

// OffsetAndLength resolves r against a sequence of the given length. It
// fails when the start resolves before the sequence or the range is empty.
func (r Range) OffsetAndLength(length int) (int, int, error) {
	start := r.Start.Offset(length)
	end := r.End.Offset(length)
	if start < 0 {
		return 0, 0, errors.InvalidArgument("offset", "cannot be negative")
	}
	if end-start <= 0 {
		return 0, 0, errors.InvalidArgument("length", "must be positive")
	}
	return start, end - start, nil
}

// IsValid reports whether r selects at least one element of a sequence of
// the given length.
func (r Range) IsValid(length int) bool {
	_, _, ok := r.ValidRange(length)
	return ok
}

// ValidRange resolves r against length and reports whether the result is
// a non-empty range within the sequence.
func (r Range) ValidRange(length int) (offset, n int, ok bool) {
	if length <= 0 {
		return 0, 0, false
	}
	start := r.Start.Offset(length)
	if start < 0 || start >= length {
		return 0, 0, false
	}
	end := r.End.Offset(length)
	if end <= start || end > length {
		return 0, 0, false
	}
	return start, end - start, true
}

// SliceFromStart returns a range of size elements beginning at r.Start.
func (r Range) SliceFromStart(size, length int) (Range, error) {
	if size < 0 {
		return Range{}, errors.InvalidArgument("size", "cannot be negative")
	}
	end, err := AddIndex(r.Start, IndexAt(size), length)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: r.Start, End: end}, nil
}

// SliceFromEnd returns a range of size elements ending at r.End.
func (r Range) SliceFromEnd(size, length int) (Range, error) {
	if size < 0 {
		return Range{}, errors.InvalidArgument("size", "cannot be negative")
	}
	start, err := SubIndex(r.End, IndexAt(size), length)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: start, End: r.End}, nil
}
