package reparse

import "slices"

// Result is one parser match: Length source elements were consumed to produce
// Value. A Length of zero is a valid (empty) match; failure is the absence of
// results, never a distinguished value.
//
// A look-ahead result is provisional: the engine settles it exactly once with
// OnCompleted to tell the producing parser whether the tentative match was
// accepted downstream.
type Result[V any] struct {
	Value  V
	Length int

	look *lookAhead
}

// lookAhead is a one-shot acceptance token. Settling fans the outcome out to
// registered observers and then to the chained source tokens, so a multi-step
// pipeline propagates the signal back to the original lazy producer.
type lookAhead struct {
	settled   bool
	success   bool
	observers []func(bool)
	parents   []*lookAhead
}

func (l *lookAhead) settle(success bool) {
	if l == nil || l.settled {
		return
	}
	l.settled = true
	l.success = success

	obs := l.observers
	l.observers = nil
	for _, f := range obs {
		f(success)
	}
	for _, p := range l.parents {
		p.settle(success)
	}
}

// Success constructs an ordinary match. It panics on a negative length.
func Success[V any](v V, length int) Result[V] {
	if length < 0 {
		panic(Namespace + ": negative result length")
	}
	return Result[V]{Value: v, Length: length}
}

// SuccessMany constructs an empty-sequence match of the given length.
func SuccessMany[V any](length int) Result[[]V] {
	return Success([]V{}, length)
}

// NewLookAhead constructs a provisional match awaiting an acceptance signal.
func NewLookAhead[V any](v V, length int) Result[V] {
	r := Success(v, length)
	r.look = &lookAhead{}
	return r
}

// IsLookAhead reports whether the result is provisional.
func (r Result[V]) IsLookAhead() bool { return r.look != nil }

// OnCompleted settles a look-ahead result with the acceptance outcome. The
// first call wins; later calls and calls on ordinary results are no-ops.
func (r Result[V]) OnCompleted(success bool) { r.look.settle(success) }

// Observe registers f to receive the acceptance outcome. If the result is
// already settled, f runs immediately; on ordinary results Observe is a
// no-op.
func (r Result[V]) Observe(f func(success bool)) {
	if r.look == nil || f == nil {
		return
	}
	if r.look.settled {
		f(r.look.success)
		return
	}
	r.look.observers = append(r.look.observers, f)
}

// Outcome returns the acceptance outcome of a look-ahead result. settled is
// false until OnCompleted has been called, and always false for ordinary
// results.
func (r Result[V]) Outcome() (success, settled bool) {
	if r.look == nil || !r.look.settled {
		return false, false
	}
	return r.look.success, true
}

// Yield derives a new result from r, preserving look-ahead linkage: settling
// the derived result settles r with the same outcome.
func Yield[V, U any](r Result[V], value U, length int) Result[U] {
	out := Success(value, length)
	if r.look != nil {
		out.look = &lookAhead{parents: []*lookAhead{r.look}}
		if r.look.settled {
			out.look.settled, out.look.success = true, r.look.success
		}
	}
	return out
}

// Add combines two sequential results: the value is f over both values, the
// length is the sum. Look-ahead linkage of both operands is preserved.
func Add[A, B, C any](a Result[A], b Result[B], f func(A, B) C) Result[C] {
	out := Success(f(a.Value, b.Value), a.Length+b.Length)
	out.look = chainLooks(a.look, b.look)
	return out
}

// Concat is Add for sequence-valued results.
func Concat[V any](a, b Result[[]V]) Result[[]V] {
	return Add(a, b, func(x, y []V) []V { return slices.Concat(x, y) })
}

func chainLooks(looks ...*lookAhead) *lookAhead {
	var parents []*lookAhead
	for _, l := range looks {
		if l != nil {
			parents = append(parents, l)
		}
	}
	if parents == nil {
		return nil
	}
	return &lookAhead{parents: parents}
}

// ResultsEqual reports result equivalence: equal values and equal lengths. A
// look-ahead result is never equal to an ordinary one.
func ResultsEqual[V comparable](a, b Result[V]) bool {
	return a.Value == b.Value && a.Length == b.Length && a.IsLookAhead() == b.IsLookAhead()
}
