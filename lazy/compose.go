package lazy

// Compose returns a function applying f then g.
func Compose[A, B, C any](f func(A) B, g func(B) C) func(A) C {
	return func(a A) C { return g(f(a)) }
}

// And returns a predicate that holds when both p1 and p2 hold.
// p2 is not called when p1 fails.
func And[T any](p1, p2 func(T) bool) func(T) bool {
	return func(v T) bool { return p1(v) && p2(v) }
}
