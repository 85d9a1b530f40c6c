package reparse

import "iter"

// ParseAll executes the grammar produced by build over src and collects the
// full match stream. It owns the cursor and driver lifecycle: it creates
// both, runs the parse to completion, and returns the matches together with
// the first error, if any. Matches collected before the error are returned
// with it.
func ParseAll[T, V any](
	build func(next Parser[T, T]) Parser[T, V],
	src Source[T],
	opts ...StartOption,
) ([]Result[V], error) {
	s := NewParserStart(build, opts...)
	c := NewCursor(src)
	defer c.Dispose()
	return Collect(s.Parse(c))
}

// ParseValues is ParseAll returning match values only.
func ParseValues[T, V any](
	build func(next Parser[T, T]) Parser[T, V],
	src Source[T],
	opts ...StartOption,
) ([]V, error) {
	results, err := ParseAll(build, src, opts...)
	return Values(results), err
}

// ParseString is ParseAll over the runes of s.
func ParseString[V any](
	build func(next Parser[rune, rune]) Parser[rune, V],
	s string,
	opts ...StartOption,
) ([]Result[V], error) {
	return ParseAll(build, FromString(s), opts...)
}

// Collect drains a driver result stream into a slice, stopping at the first
// error.
func Collect[V any](stream iter.Seq2[Result[V], error]) ([]Result[V], error) {
	var out []Result[V]
	for r, err := range stream {
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Values projects collected results to their values.
func Values[V any](results []Result[V]) []V {
	out := make([]V, 0, len(results))
	for _, r := range results {
		out = append(out, r.Value)
	}
	return out
}
