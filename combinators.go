package reparse

import (
	"iter"
	"slices"
)

// All matches the given parsers in order at consecutive positions. The value
// is the sequence of child values; the length is the sum of child lengths.
// All with no parsers is the empty match.
func All[T, V any](parsers ...Parser[T, V]) Parser[T, []V] {
	return allParser[T, V]{parsers: parsers}
}

type allParser[T, V any] struct {
	parsers []Parser[T, V]
}

func (p allParser[T, V]) Next() Parser[T, T] {
	if len(p.parsers) == 0 {
		panic(ErrUnsupportedOperation)
	}
	return p.parsers[0].Next()
}

func (p allParser[T, V]) Parse(c *Cursor[T]) iter.Seq[Result[[]V]] {
	return func(yield func(Result[[]V]) bool) {
		root, err := c.Branch()
		if err != nil {
			return
		}
		defer root.Dispose()
		p.walk(root, 0, SuccessMany[V](0), yield)
	}
}

// walk applies parsers[i:] at b, extending acc with every child match. The
// branch stack discipline: an intermediate child result gets a remainder
// branch owned by this frame and popped when its subtree is exhausted; the
// final result of a child's sequence reuses b itself, which avoids one branch
// per link when the child matched exactly once. Returns false when the
// downstream consumer stopped.
func (p allParser[T, V]) walk(b *Cursor[T], i int, acc Result[[]V], yield func(Result[[]V]) bool) bool {
	if i == len(p.parsers) {
		return yield(acc)
	}

	ok := true
	eachWithLast(p.parsers[i].Parse(b), func(r Result[V], last bool) bool {
		ok = sequenceStep(b, r, last, func(target *Cursor[T], step Result[V], emitted *bool) bool {
			next := Concat(acc, Yield(step, []V{step.Value}, step.Length))
			return p.walk(target, i+1, next, func(out Result[[]V]) bool {
				*emitted = true
				return yield(out)
			})
		})
		return ok && !committed(r)
	})
	return ok
}

// sequenceStep runs one link of a sequence: it positions a cursor after the
// child result r (reusing b when r is the last alternative, branching
// otherwise), invokes the continuation, releases the remainder branch, and
// settles a look-ahead child with whether the continuation emitted anything.
func sequenceStep[T, V any](
	b *Cursor[T],
	r Result[V],
	last bool,
	cont func(target *Cursor[T], step Result[V], emitted *bool) bool,
) bool {
	step := Success(r.Value, r.Length) // look-ahead-ness resolves here, not downstream

	target := b
	if last {
		if b.Move(step.Length) != nil {
			return false
		}
	} else {
		rem, err := b.Branch()
		if err != nil {
			return false
		}
		if rem.Move(step.Length) != nil {
			rem.Dispose()
			return false
		}
		target = rem
	}

	var emitted bool
	ok := cont(target, step, &emitted)
	if target != b {
		target.Dispose()
	}
	if r.IsLookAhead() {
		r.OnCompleted(emitted)
	}
	return ok
}

// committed reports whether a look-ahead child was accepted, in which case
// the engine stops exploring its later alternatives.
func committed[V any](r Result[V]) bool {
	success, settled := r.Outcome()
	return settled && success
}

// Any matches the first of the given parsers that matches at the cursor's
// position; that child's entire result sequence is emitted and the remaining
// parsers are skipped. The matched child becomes the source of Next.
func Any[T, V any](parsers ...Parser[T, V]) Parser[T, V] {
	return &anyParser[T, V]{parsers: parsers}
}

type anyParser[T, V any] struct {
	parsers []Parser[T, V]
	chosen  Parser[T, V]
}

func (p *anyParser[T, V]) Next() Parser[T, T] {
	if p.chosen == nil {
		panic(ErrUnsupportedOperation)
	}
	return p.chosen.Next()
}

func (p *anyParser[T, V]) Parse(c *Cursor[T]) iter.Seq[Result[V]] {
	return func(yield func(Result[V]) bool) {
		for _, child := range p.parsers {
			b, err := c.Branch()
			if err != nil {
				return
			}

			matched := false
			for r := range child.Parse(b) {
				matched = true
				p.chosen = child
				if !yield(r) {
					b.Dispose()
					return
				}
			}
			b.Dispose()
			if matched {
				return
			}
		}
	}
}

// AllUnordered matches every given parser exactly once, in any order, at
// consecutive positions. At each step the still-unmatched children are tried
// in order and the first that matches is removed from the candidate set. The
// value is the sequence of child values in the order they matched.
func AllUnordered[T, V any](parsers ...Parser[T, V]) Parser[T, []V] {
	return allUnorderedParser[T, V]{parsers: parsers}
}

type allUnorderedParser[T, V any] struct {
	parsers []Parser[T, V]
}

func (p allUnorderedParser[T, V]) Next() Parser[T, T] {
	if len(p.parsers) == 0 {
		panic(ErrUnsupportedOperation)
	}
	return p.parsers[0].Next()
}

func (p allUnorderedParser[T, V]) Parse(c *Cursor[T]) iter.Seq[Result[[]V]] {
	return func(yield func(Result[[]V]) bool) {
		root, err := c.Branch()
		if err != nil {
			return
		}
		defer root.Dispose()

		remaining := make([]int, len(p.parsers))
		for i := range remaining {
			remaining[i] = i
		}
		p.walk(root, remaining, SuccessMany[V](0), yield)
	}
}

// walk is All's walk with an exclusion set: the ordered choice over the
// still-unmatched children commits to the first one that matches at this
// position.
func (p allUnorderedParser[T, V]) walk(
	b *Cursor[T],
	remaining []int,
	acc Result[[]V],
	yield func(Result[[]V]) bool,
) bool {
	if len(remaining) == 0 {
		return yield(acc)
	}

	for pos, idx := range remaining {
		child := p.parsers[idx]
		rest := slices.Concat(remaining[:pos], remaining[pos+1:])

		matched := false
		ok := true
		eachWithLast(child.Parse(b), func(r Result[V], last bool) bool {
			matched = true
			ok = sequenceStep(b, r, last, func(target *Cursor[T], step Result[V], emitted *bool) bool {
				next := Concat(acc, Yield(step, []V{step.Value}, step.Length))
				return p.walk(target, rest, next, func(out Result[[]V]) bool {
					*emitted = true
					return yield(out)
				})
			})
			return ok && !committed(r)
		})
		if matched {
			return ok
		}
	}
	return true
}
