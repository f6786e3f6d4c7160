// Package maybe provides Maybe, an immutable container holding zero or one
// value.
//
// A Maybe is either Some(value) or None. The zero value is None, so Maybe
// fields need no initialization. All operations are pure: they return new
// values and never mutate the receiver.
//
// # Construction
//
//	m, err := maybe.Some(user)     // NULL_ARGUMENT if user is a nil reference
//	m := maybe.Of(ptr)             // nil reference becomes None
//	m := maybe.None[int]()
//
// # Transformation
//
// Go methods cannot introduce type parameters, so type-changing operations
// are package functions:
//
//	n, err := maybe.Map(m, func(u User) string { return u.Name })
//	name := n.Match("anonymous")
//
// Passing a nil function returns an error wrapping errors.ErrNullArgument
// before anything is evaluated.
package maybe
