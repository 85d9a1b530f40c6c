package reparse

import "iter"

// eachWithLast drives seq, handing every result to f together with a flag
// reporting whether it is the final one. Detecting the flag requires a
// one-element look-ahead on the iterator, so teardown of the upstream is
// owned by this call (through the pull's stop), not by a per-element
// finalizer. f returning false stops the iteration.
func eachWithLast[V any](seq iter.Seq[V], f func(v V, last bool) bool) {
	next, stop := iter.Pull(seq)
	defer stop()

	cur, ok := next()
	if !ok {
		return
	}
	for {
		nxt, more := next()
		if !f(cur, !more) || !more {
			return
		}
		cur = nxt
	}
}

// firstResult pulls the first match of a result sequence, releasing the rest.
// Repetition steps use it to commit to a child's first alternative.
func firstResult[V any](seq iter.Seq[Result[V]]) (Result[V], bool) {
	for r := range seq {
		return r, true
	}
	return Result[V]{}, false
}
