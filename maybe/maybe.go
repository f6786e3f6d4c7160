package maybe

import (
	"fmt"
	"reflect"

	"github.com/kbukum/lazykit/errors"
)

// Maybe holds either a value (Some) or nothing (None).
// The zero value is None.
type Maybe[T any] struct {
	value T
	ok    bool
}

// Some wraps v. It returns a NULL_ARGUMENT error when v is a nil pointer,
// map, slice, channel, function or interface.
func Some[T any](v T) (Maybe[T], error) {
	if IsNil(v) {
		return Maybe[T]{}, errors.NullArgument("value")
	}
	return Maybe[T]{value: v, ok: true}, nil
}

// Of wraps v, treating a nil reference as None.
func Of[T any](v T) Maybe[T] {
	if IsNil(v) {
		return Maybe[T]{}
	}
	return Maybe[T]{value: v, ok: true}
}

// None returns the empty Maybe for T.
func None[T any]() Maybe[T] {
	return Maybe[T]{}
}

// FromOk builds a Maybe from the comma-ok idiom.
func FromOk[T any](v T, ok bool) Maybe[T] {
	if !ok {
		return Maybe[T]{}
	}
	return Maybe[T]{value: v, ok: true}
}

// FromPtr dereferences p, treating nil as None.
func FromPtr[T any](p *T) Maybe[T] {
	if p == nil {
		return Maybe[T]{}
	}
	return Maybe[T]{value: *p, ok: true}
}

// IsSome reports whether m holds a value.
func (m Maybe[T]) IsSome() bool { return m.ok }

// IsNone reports whether m is empty.
func (m Maybe[T]) IsNone() bool { return !m.ok }

// Get returns the value and whether it is present.
func (m Maybe[T]) Get() (T, bool) { return m.value, m.ok }

// Match returns the contained value, or def when m is None.
func (m Maybe[T]) Match(def T) T {
	if m.ok {
		return m.value
	}
	return def
}

// MatchErr returns the contained value, or err when m is None.
// A nil err is replaced by an EMPTY_VALUE error so absence is never silent.
func (m Maybe[T]) MatchErr(err error) (T, error) {
	if m.ok {
		return m.value, nil
	}
	if err == nil {
		err = errors.EmptyValue()
	}
	var zero T
	return zero, err
}

// Filter keeps the value only when pred holds.
func (m Maybe[T]) Filter(pred func(T) bool) (Maybe[T], error) {
	if pred == nil {
		return Maybe[T]{}, errors.NullArgument("predicate")
	}
	if !m.ok || !pred(m.value) {
		return Maybe[T]{}, nil
	}
	return m, nil
}

// Or returns m when it is Some, otherwise other.
func (m Maybe[T]) Or(other Maybe[T]) Maybe[T] {
	if m.ok {
		return m
	}
	return other
}

// Ptr returns a pointer to a copy of the value, or nil for None.
func (m Maybe[T]) Ptr() *T {
	if !m.ok {
		return nil
	}
	v := m.value
	return &v
}

// String implements fmt.Stringer.
func (m Maybe[T]) String() string {
	if !m.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", m.value)
}

// Map applies f to the value of m. None is returned unchanged and f is not called.
func Map[T, U any](m Maybe[T], f func(T) U) (Maybe[U], error) {
	if f == nil {
		return Maybe[U]{}, errors.NullArgument("selector")
	}
	if !m.ok {
		return Maybe[U]{}, nil
	}
	return Of(f(m.value)), nil
}

// MatchWith returns sel applied to the value, or def when m is None.
func MatchWith[T, U any](m Maybe[T], sel func(T) U, def U) (U, error) {
	if sel == nil {
		return def, errors.NullArgument("selector")
	}
	if !m.ok {
		return def, nil
	}
	return sel(m.value), nil
}

// Bind chains a Maybe-producing function (monadic bind).
func Bind[T, U any](m Maybe[T], f func(T) Maybe[U]) (Maybe[U], error) {
	if f == nil {
		return Maybe[U]{}, errors.NullArgument("binder")
	}
	if !m.ok {
		return Maybe[U]{}, nil
	}
	return f(m.value), nil
}

// SelectMany binds m through mapper and combines both values with selector.
func SelectMany[T, M, R any](m Maybe[T], mapper func(T) Maybe[M], selector func(T, M) R) (Maybe[R], error) {
	if mapper == nil {
		return Maybe[R]{}, errors.NullArgument("mapper")
	}
	if selector == nil {
		return Maybe[R]{}, errors.NullArgument("selector")
	}
	if !m.ok {
		return Maybe[R]{}, nil
	}
	inner := mapper(m.value)
	if !inner.ok {
		return Maybe[R]{}, nil
	}
	return Of(selector(m.value, inner.value)), nil
}

// OfType narrows the value of m to U, yielding None when the dynamic type differs.
func OfType[U, T any](m Maybe[T]) Maybe[U] {
	if !m.ok {
		return Maybe[U]{}
	}
	u, ok := any(m.value).(U)
	return FromOk(u, ok)
}

// Flatten collapses a nested Maybe.
func Flatten[T any](m Maybe[Maybe[T]]) Maybe[T] {
	if !m.ok {
		return Maybe[T]{}
	}
	return m.value
}

// IsNil reports whether v is nil or a nil reference held in an interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
