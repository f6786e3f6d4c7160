package lazy

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/kbukum/lazykit/errors"
	"github.com/kbukum/lazykit/maybe"
)

// Maybe is a deferred optional value. Steps added with Map and Filter are
// recorded, not run; the value is computed on the first Force, Match or
// Await and cached from then on.
//
// The zero value and a nil *Maybe both behave as None when forced.
// Combinators reject a nil receiver with a NULL_ARGUMENT error.
type Maybe[T any] struct {
	root node[T]
}

// Of returns a forced pipeline holding v. A nil reference yields None.
func Of[T any](v T) *Maybe[T] {
	return &Maybe[T]{root: &resolvedNode[T]{value: maybe.Of(v)}}
}

// From lifts a strict optional value.
func From[T any](m maybe.Maybe[T]) *Maybe[T] {
	return &Maybe[T]{root: &resolvedNode[T]{value: m}}
}

// None returns an empty pipeline.
func None[T any]() *Maybe[T] {
	return &Maybe[T]{root: &resolvedNode[T]{}}
}

// FromFuture wraps an asynchronous producer.
func FromFuture[T any](f Future[T]) (*Maybe[T], error) {
	if maybe.IsNil(f) {
		return nil, errors.NullArgument("future")
	}
	return &Maybe[T]{root: &asyncNode[T]{future: f}}, nil
}

func (p *Maybe[T]) node() node[T] {
	if p == nil || p.root == nil {
		return &resolvedNode[T]{}
	}
	return p.root
}

// Map records f as the next step. f is never called for None.
func Map[T, U any](p *Maybe[T], f func(T) U) (*Maybe[U], error) {
	if p == nil {
		return nil, errors.NullArgument("source")
	}
	if f == nil {
		return nil, errors.NullArgument("selector")
	}
	return &Maybe[U]{root: newTransform(p.node(), f)}, nil
}

// Filter records pred as the next step.
func (p *Maybe[T]) Filter(pred func(T) bool) (*Maybe[T], error) {
	if p == nil {
		return nil, errors.NullArgument("source")
	}
	if pred == nil {
		return nil, errors.NullArgument("predicate")
	}
	return &Maybe[T]{root: newCondition(p.node(), pred)}, nil
}

// Flatten joins a pipeline of pipelines.
func Flatten[T any](pp *Maybe[*Maybe[T]]) (*Maybe[T], error) {
	if pp == nil {
		return nil, errors.NullArgument("source")
	}
	return &Maybe[T]{root: &flattenNode[T]{outer: pp.node()}}, nil
}

// FlatMap is Map followed by Flatten. A nil pipeline returned by f is None.
func FlatMap[T, U any](p *Maybe[T], f func(T) *Maybe[U]) (*Maybe[U], error) {
	if f == nil {
		return nil, errors.NullArgument("selector")
	}
	outer, err := Map(p, f)
	if err != nil {
		return nil, err
	}
	return Flatten(outer)
}

// SelectMany binds p through mapper and combines both values with selector.
func SelectMany[T, M, R any](p *Maybe[T], mapper func(T) *Maybe[M], selector func(T, M) R) (*Maybe[R], error) {
	if mapper == nil {
		return nil, errors.NullArgument("mapper")
	}
	if selector == nil {
		return nil, errors.NullArgument("selector")
	}
	return FlatMap(p, func(t T) *Maybe[R] {
		m := mapper(t)
		if m == nil {
			return None[R]()
		}
		r, _ := Map(m, func(v M) R { return selector(t, v) })
		return r
	})
}

// Force evaluates the pipeline, waiting for an asynchronous source if needed.
func (p *Maybe[T]) Force() maybe.Maybe[T] {
	n := p.node()
	if !n.evaluated() {
		waitReady(n)
	}
	return n.evaluate()
}

// Match forces the pipeline and returns its value or def.
func (p *Maybe[T]) Match(def T) T {
	return p.Force().Match(def)
}

// MatchErr forces the pipeline and returns its value, or err when it is None.
// A nil err is replaced by an EMPTY_VALUE error.
func (p *Maybe[T]) MatchErr(err error) (T, error) {
	return p.Force().MatchErr(err)
}

// MatchWith forces p and returns sel applied to its value, or def.
func MatchWith[T, U any](p *Maybe[T], sel func(T) U, def U) (U, error) {
	if p == nil {
		return def, errors.NullArgument("source")
	}
	return maybe.MatchWith(p.Force(), sel, def)
}

// IsForced reports whether the value has been computed.
func (p *Maybe[T]) IsForced() bool {
	return p.node().evaluated()
}

// Awaiter exposes the pipeline's single suspension point.
func (p *Maybe[T]) Awaiter() Awaiter[T] {
	return p.node()
}

// Await suspends until the pipeline can be evaluated, then forces it.
// Cancelling ctx stops the wait only; the pipeline stays unforced and can
// still be awaited or forced later.
func (p *Maybe[T]) Await(ctx context.Context) (maybe.Maybe[T], error) {
	n := p.node()
	ctx, span := tracer().Start(ctx, "lazy.Await")
	defer span.End()
	span.SetAttributes(attribute.String("lazy.node_kind", n.kind()))

	if !n.IsReady() {
		ch := make(chan struct{})
		var once sync.Once
		n.OnReady(func() { once.Do(func() { close(ch) }) })
		select {
		case <-ch:
		case <-ctx.Done():
			span.RecordError(ctx.Err())
			span.SetStatus(codes.Error, "await abandoned")
			return maybe.Maybe[T]{}, ctx.Err()
		}
	}
	v := n.evaluate()
	span.SetAttributes(attribute.Bool("lazy.some", v.IsSome()))
	return v, nil
}

// String describes the pipeline without forcing it.
func (p *Maybe[T]) String() string {
	n := p.node()
	if !n.evaluated() {
		return fmt.Sprintf("Lazy(%s, unforced)", n.kind())
	}
	return fmt.Sprintf("Lazy(%s)", n.evaluate())
}
