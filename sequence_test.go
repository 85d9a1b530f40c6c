package reparse

import (
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEachWithLast(t *testing.T) {
	seqOf := func(vals ...int) iter.Seq[int] { return slices.Values(vals) }

	type step struct {
		v    int
		last bool
	}
	var steps []step
	record := func(v int, last bool) bool {
		steps = append(steps, step{v, last})
		return true
	}

	t.Run("empty", func(t *testing.T) {
		steps = nil
		eachWithLast(seqOf(), record)
		require.Empty(t, steps)
	})

	t.Run("single element is last", func(t *testing.T) {
		steps = nil
		eachWithLast(seqOf(7), record)
		require.Equal(t, []step{{7, true}}, steps)
	})

	t.Run("only the final element is flagged", func(t *testing.T) {
		steps = nil
		eachWithLast(seqOf(1, 2, 3), record)
		require.Equal(t, []step{{1, false}, {2, false}, {3, true}}, steps)
	})

	t.Run("consumer stop releases the upstream", func(t *testing.T) {
		released := false
		seq := func(yield func(int) bool) {
			defer func() { released = true }()
			for i := range 10 {
				if !yield(i) {
					return
				}
			}
		}
		eachWithLast(seq, func(v int, last bool) bool { return v < 2 })
		require.True(t, released, "teardown is driven by the consumer's disposal")
	})
}

func TestFirstResult(t *testing.T) {
	pulled := 0
	seq := func(yield func(Result[int]) bool) {
		pulled++
		if !yield(Success(1, 1)) {
			return
		}
		pulled++
		yield(Success(2, 2))
	}

	r, ok := firstResult(seq)
	require.True(t, ok)
	require.Equal(t, 1, r.Value)
	require.Equal(t, 1, pulled, "later alternatives are not produced")

	_, ok = firstResult(func(yield func(Result[int]) bool) {})
	require.False(t, ok)
}
