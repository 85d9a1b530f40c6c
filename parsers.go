package reparse

import "iter"

// AnyElement matches any single input element.
func AnyElement[T any]() Parser[T, T] { return Next[T]() }

// Satisfy matches a single element for which pred holds.
func Satisfy[T any](pred func(T) bool) Parser[T, T] {
	if pred == nil {
		panic(ErrUnsupportedOperation)
	}
	return lazyRule(Next[T], func(c *Cursor[T]) iter.Seq[Result[T]] {
		return func(yield func(Result[T]) bool) {
			for r := range Next[T]().Parse(c) {
				if pred(r.Value) && !yield(r) {
					return
				}
			}
		}
	})
}

// Eq matches a single element equal to v.
func Eq[T comparable](v T) Parser[T, T] {
	return Satisfy(func(x T) bool { return x == v })
}

// Literal matches the given elements in order, producing them as the value.
// An empty literal is the empty match.
func Literal[T comparable](word ...T) Parser[T, []T] {
	return lazyRule(Next[T], func(c *Cursor[T]) iter.Seq[Result[[]T]] {
		return func(yield func(Result[[]T]) bool) {
			if len(word) == 0 {
				yield(SuccessMany[T](0))
				return
			}

			b, err := c.Branch()
			if err != nil {
				return
			}
			defer b.Dispose()

			vals := make([]T, 0, len(word))
			for _, w := range word {
				v, ok := b.peek()
				if !ok || v != w {
					return
				}
				vals = append(vals, v)
				if b.Move(1) != nil {
					return
				}
			}
			yield(Success(vals, len(word)))
		}
	})
}

// Word matches the runes of s in order, producing s as the value.
func Word(s string) Parser[rune, string] {
	return Map(Literal([]rune(s)...), func(rs []rune) string { return string(rs) })
}
