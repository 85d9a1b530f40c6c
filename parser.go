package reparse

import (
	"iter"
	"sync"
)

// Parser matches a prefix of the input at a cursor's position.
type Parser[T, V any] interface {
	// Parse applies the parser at c's position and returns the lazy sequence
	// of matches. Parse must not move c; alternatives are explored on
	// branches. Each yielded result is independently consumable.
	Parse(c *Cursor[T]) iter.Seq[Result[V]]

	// Next returns the shared element-reading primitive the parser is built
	// over.
	Next() Parser[T, T]
}

type nextParser[T any] struct{}

// Next returns the primitive parser that matches exactly one input element.
// Every rule of a grammar reduces to it.
func Next[T any]() Parser[T, T] { return nextParser[T]{} }

func (nextParser[T]) Next() Parser[T, T] { return nextParser[T]{} }

func (nextParser[T]) Parse(c *Cursor[T]) iter.Seq[Result[T]] {
	return func(yield func(Result[T]) bool) {
		if v, ok := c.peek(); ok {
			yield(Success(v, 1))
		}
	}
}

type funcParser[T, V any] struct {
	next func() Parser[T, T]
	fn   func(*Cursor[T]) iter.Seq[Result[V]]
}

// Rule builds a parser from a parse function. next is the element primitive
// the rule reads through, usually Next[T]() or the primitive handed to the
// grammar thunk by the driver.
func Rule[T, V any](next Parser[T, T], fn func(*Cursor[T]) iter.Seq[Result[V]]) Parser[T, V] {
	if next == nil || fn == nil {
		panic(ErrUnsupportedOperation)
	}
	return funcParser[T, V]{next: func() Parser[T, T] { return next }, fn: fn}
}

// lazyRule defers resolution of the element primitive until it is asked for,
// so wrapping a composite whose primitive is not yet known (e.g. an unmatched
// Any) stays legal.
func lazyRule[T, V any](next func() Parser[T, T], fn func(*Cursor[T]) iter.Seq[Result[V]]) Parser[T, V] {
	return funcParser[T, V]{next: next, fn: fn}
}

func (p funcParser[T, V]) Next() Parser[T, T] { return p.next() }

func (p funcParser[T, V]) Parse(c *Cursor[T]) iter.Seq[Result[V]] { return p.fn(c) }

type deferredParser[T, V any] struct {
	resolve func() Parser[T, V]
	once    sync.Once
	p       Parser[T, V]
}

// Deferred wraps a rule that is not available yet, resolving the thunk on
// first use. It is the supported way to define recursive rules; left
// recursion is not supported and will not terminate.
func Deferred[T, V any](resolve func() Parser[T, V]) Parser[T, V] {
	if resolve == nil {
		panic(ErrUnsupportedOperation)
	}
	return &deferredParser[T, V]{resolve: resolve}
}

func (d *deferredParser[T, V]) resolved() Parser[T, V] {
	d.once.Do(func() { d.p = d.resolve() })
	if d.p == nil {
		panic(ErrUnsupportedOperation)
	}
	return d.p
}

func (d *deferredParser[T, V]) Next() Parser[T, T] { return d.resolved().Next() }

func (d *deferredParser[T, V]) Parse(c *Cursor[T]) iter.Seq[Result[V]] {
	return func(yield func(Result[V]) bool) {
		for r := range d.resolved().Parse(c) {
			if !yield(r) {
				return
			}
		}
	}
}

// Map projects every result of p through f, preserving lengths and look-ahead
// linkage.
func Map[T, V, U any](p Parser[T, V], f func(V) U) Parser[T, U] {
	return lazyRule(p.Next, func(c *Cursor[T]) iter.Seq[Result[U]] {
		return func(yield func(Result[U]) bool) {
			for r := range p.Parse(c) {
				if !yield(Yield(r, f(r.Value), r.Length)) {
					return
				}
			}
		}
	})
}
