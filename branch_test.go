package reparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBranch_StartsAtParentPosition(t *testing.T) {
	c := NewCursor(FromString("abcd"))
	require.NoError(t, c.Move(1))

	b, err := c.Branch()
	require.NoError(t, err)
	require.Equal(t, 1, b.CurrentIndex())

	rec := &recording[rune]{}
	_, err = b.SubscribeN(rec, 2)
	require.NoError(t, err)
	require.Equal(t, []rune("bc"), rec.values)
}

func TestBranch_MovesIndependently(t *testing.T) {
	c := NewCursor(FromString("abcd"))
	b, err := c.Branch()
	require.NoError(t, err)

	require.NoError(t, b.Move(3))
	require.Equal(t, 3, b.CurrentIndex())
	require.Equal(t, 0, c.CurrentIndex())

	// Elements pulled through the branch are observable from the parent.
	_, err = b.SubscribeN(&recording[rune]{}, 1)
	require.NoError(t, err)

	rec := &recording[rune]{}
	_, err = c.SubscribeN(rec, 4)
	require.NoError(t, err)
	require.Equal(t, []rune("abcd"), rec.values)
}

func TestBranch_DisposeDoesNotAffectParent(t *testing.T) {
	c := NewCursor(FromString("abc"))
	b, err := c.Branch()
	require.NoError(t, err)
	require.NoError(t, b.Move(2))

	b.Dispose()
	require.True(t, b.IsDisposed())
	require.ErrorIs(t, b.Move(1), ErrDisposed)

	require.Equal(t, 0, c.CurrentIndex())
	rec := &recording[rune]{}
	_, err = c.SubscribeN(rec, 3)
	require.NoError(t, err)
	require.Equal(t, []rune("abc"), rec.values)
}

func TestBranch_OfBranch(t *testing.T) {
	c := NewCursor(FromString("abcd"))
	b, err := c.Branch()
	require.NoError(t, err)
	require.NoError(t, b.Move(1))

	bb, err := b.Branch()
	require.NoError(t, err)
	require.Equal(t, 1, bb.CurrentIndex())
	require.NoError(t, bb.Move(2))
	require.Equal(t, 3, bb.CurrentIndex())
	require.Equal(t, 1, b.CurrentIndex())

	// Disposing the intermediate branch disposes its children too.
	b.Dispose()
	require.True(t, bb.IsDisposed())
}

func TestBranch_RootDisposeCascades(t *testing.T) {
	c := NewCursor(FromString("ab"))
	b, err := c.Branch()
	require.NoError(t, err)

	c.Dispose()
	require.True(t, b.IsDisposed())
	require.ErrorIs(t, b.Move(1), ErrDisposed)
}

func TestTruncation_PostponedUntilBranchesDisposed(t *testing.T) {
	c := NewCursor(FromString("abcd"), WithForwardOnly())
	_, err := c.SubscribeN(&recording[rune]{}, 4)
	require.NoError(t, err)
	require.Equal(t, 4, c.BufferedCount())

	b, err := c.Branch()
	require.NoError(t, err)

	// The branch still needs the prefix, so the forward move keeps the
	// buffer intact.
	require.NoError(t, c.Move(2))
	require.Equal(t, 0, c.FirstElementIndex())
	require.Equal(t, 4, c.BufferedCount())

	// Disposing the last branch holding the prefix advances the buffer head.
	b.Dispose()
	require.Equal(t, 2, c.FirstElementIndex())
	require.Equal(t, 2, c.BufferedCount())
}

func TestTruncation_WhileBranched(t *testing.T) {
	c := NewCursor(FromString("abcd"), WithForwardOnly(), WithTruncateWhileBranched())
	_, err := c.SubscribeN(&recording[rune]{}, 4)
	require.NoError(t, err)

	b, err := c.Branch()
	require.NoError(t, err)
	require.NoError(t, b.Move(3))

	// The head advances to the lowest position across the root and all
	// branches.
	require.NoError(t, c.Move(2))
	require.Equal(t, 2, c.FirstElementIndex())
	require.Equal(t, 2, c.BufferedCount())

	// A forward-only cursor cannot re-read truncated input.
	require.ErrorIs(t, c.Move(-1), ErrBackwardMove)
	b.Dispose()
}

func TestTruncation_NeverOnBidirectionalCursors(t *testing.T) {
	c := NewCursor(FromString("abcd"))
	_, err := c.SubscribeN(&recording[rune]{}, 4)
	require.NoError(t, err)

	require.NoError(t, c.Move(3))
	require.Equal(t, 0, c.FirstElementIndex())
	require.Equal(t, 4, c.BufferedCount())
}

func TestBranch_ClampedOnTermination(t *testing.T) {
	c := NewCursor(FromString("ab"))
	b, err := c.Branch()
	require.NoError(t, err)
	require.NoError(t, b.Move(10))

	// Draining the source clamps every branch position past the end.
	_, err = c.SubscribeN(&recording[rune]{}, 3)
	require.NoError(t, err)
	require.Equal(t, 2, b.CurrentIndex())
	require.True(t, b.AtEndOfSequence())
}
