package util

import (
	"strings"
	"sync"
)

// BuilderPool recycles strings.Builders between uses.
type BuilderPool struct {
	pool sync.Pool
}

// NewBuilderPool creates a pool whose builders start with capacity bytes
// preallocated.
func NewBuilderPool(capacity int) *BuilderPool {
	return &BuilderPool{pool: sync.Pool{New: func() any {
		b := &strings.Builder{}
		if capacity > 0 {
			b.Grow(capacity)
		}
		return b
	}}}
}

// Get returns an empty builder.
func (p *BuilderPool) Get() *strings.Builder {
	return p.pool.Get().(*strings.Builder)
}

// Put returns b to the pool.
func (p *BuilderPool) Put(b *strings.Builder) {
	if b == nil {
		return
	}
	b.Reset()
	p.pool.Put(b)
}

// Build runs fn with a pooled builder and returns what it wrote.
func (p *BuilderPool) Build(fn func(*strings.Builder)) string {
	b := p.Get()
	defer p.Put(b)
	fn(b)
	return b.String()
}

var defaultPool = NewBuilderPool(64)

// Join writes the string form of items separated by sep.
func Join[T any](items []T, sep string, format func(T) string) string {
	return defaultPool.Build(func(b *strings.Builder) {
		for i, item := range items {
			if i > 0 {
				b.WriteString(sep)
			}
			b.WriteString(format(item))
		}
	})
}

// CountRune counts occurrences of r in s.
func CountRune(s []rune, r rune) int {
	n := 0
	for _, c := range s {
		if c == r {
			n++
		}
	}
	return n
}
