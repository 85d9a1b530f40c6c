package reparse

import (
	"iter"
	"slices"
)

// Optional matches p if it matches, and the empty sequence otherwise.
func Optional[T, V any](p Parser[T, V]) Parser[T, []V] {
	return lazyRule(p.Next, func(c *Cursor[T]) iter.Seq[Result[[]V]] {
		return func(yield func(Result[[]V]) bool) {
			b, err := c.Branch()
			if err != nil {
				return
			}
			defer b.Dispose()

			matched := false
			for r := range p.Parse(b) {
				matched = true
				if !yield(Yield(r, []V{r.Value}, r.Length)) {
					return
				}
			}
			if !matched {
				yield(SuccessMany[V](0))
			}
		}
	})
}

// Many matches p as many times as possible at consecutive positions,
// producing all repetitions as one result. Each step commits to p's first
// alternative, and repetition stops at the first empty match. Zero
// repetitions is the empty match.
func Many[T, V any](p Parser[T, V]) Parser[T, []V] {
	return lazyRule(p.Next, func(c *Cursor[T]) iter.Seq[Result[[]V]] {
		return func(yield func(Result[[]V]) bool) {
			b, err := c.Branch()
			if err != nil {
				return
			}
			defer b.Dispose()

			vals := []V{}
			length := 0
			for {
				r, ok := firstResult(p.Parse(b))
				if !ok || r.Length == 0 {
					break
				}
				vals = append(vals, r.Value)
				length += r.Length
				if b.Move(r.Length) != nil {
					break
				}
			}
			yield(Success(vals, length))
		}
	})
}

// AtLeastOne is Many requiring at least one repetition.
func AtLeastOne[T, V any](p Parser[T, V]) Parser[T, []V] {
	return lazyRule(p.Next, func(c *Cursor[T]) iter.Seq[Result[[]V]] {
		return func(yield func(Result[[]V]) bool) {
			for r := range Many(p).Parse(c) {
				if len(r.Value) == 0 {
					return
				}
				if !yield(r) {
					return
				}
			}
		}
	})
}

// NonGreedy matches zero or more repetitions of p, emitting each boundary as
// a look-ahead result in increasing length order: first the empty match, then
// one repetition, and so on. The engine settles each look-ahead with whether
// the downstream parser accepted the boundary; acceptance commits the match
// and stops the expansion, rejection tries the next longer prefix. An
// unsettled boundary is treated as rejected.
func NonGreedy[T, V any](p Parser[T, V]) Parser[T, []V] {
	return lazyRule(p.Next, func(c *Cursor[T]) iter.Seq[Result[[]V]] {
		return func(yield func(Result[[]V]) bool) {
			b, err := c.Branch()
			if err != nil {
				return
			}
			defer b.Dispose()

			vals := []V{}
			length := 0
			for {
				la := NewLookAhead(slices.Clone(vals), length)
				if !yield(la) {
					return
				}
				if committed(la) {
					return
				}

				r, ok := firstResult(p.Parse(b))
				if !ok || r.Length == 0 {
					return
				}
				vals = append(vals, r.Value)
				length += r.Length
				if b.Move(r.Length) != nil {
					return
				}
			}
		}
	})
}

// NonGreedyUntil matches the shortest run of p repetitions after which stop
// matches. The value is the run of p values; the length spans the run and the
// stop match, so the driver advances past both.
func NonGreedyUntil[T, V, W any](p Parser[T, V], stop Parser[T, W]) Parser[T, []V] {
	return lazyRule(p.Next, func(c *Cursor[T]) iter.Seq[Result[[]V]] {
		return func(yield func(Result[[]V]) bool) {
			for la := range NonGreedy(p).Parse(c) {
				b, err := c.Branch()
				if err != nil {
					la.OnCompleted(false)
					return
				}
				if b.Move(la.Length) != nil {
					b.Dispose()
					la.OnCompleted(false)
					return
				}

				end, ok := firstResult(stop.Parse(b))
				b.Dispose()
				if !ok {
					la.OnCompleted(false)
					continue
				}

				la.OnCompleted(true)
				yield(Success(la.Value, la.Length+end.Length))
				return
			}
		}
	})
}
