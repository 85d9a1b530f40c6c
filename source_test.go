package reparse

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromSlice_ReopensFromTheStart(t *testing.T) {
	src := FromSlice([]int{1, 2, 3})

	for range 2 {
		f := src.Open()
		var got []int
		for {
			v, ok, err := f.Next()
			require.NoError(t, err)
			if !ok {
				break
			}
			got = append(got, v)
		}
		f.Close()
		require.Equal(t, []int{1, 2, 3}, got)
	}
}

func TestFromBytes(t *testing.T) {
	c := NewCursor(FromBytes([]byte("ab")))
	rec := &recording[byte]{}
	_, err := c.SubscribeN(rec, 2)
	require.NoError(t, err)
	require.Equal(t, []byte("ab"), rec.values)
}

func TestFromSeq(t *testing.T) {
	src := FromSeq(slices.Values([]rune("ab")))
	c := NewCursor(src)

	rec := &recording[rune]{}
	_, err := c.SubscribeN(rec, 3)
	require.NoError(t, err)
	require.Equal(t, []rune("ab"), rec.values)
	require.Equal(t, 1, rec.completed)
}

func TestFromChannel(t *testing.T) {
	ch := make(chan rune, 3)
	ch <- 'a'
	ch <- 'b'
	close(ch)

	c := NewCursor(FromChannel(context.Background(), ch))
	rec := &recording[rune]{}
	_, err := c.SubscribeN(rec, 3)
	require.NoError(t, err)
	require.Equal(t, []rune("ab"), rec.values)
	require.Equal(t, 1, rec.completed)
}

func TestFromChannel_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCursor(FromChannel[rune](ctx, make(chan rune)))
	rec := &recording[rune]{}
	_, err := c.SubscribeN(rec, 1)
	require.NoError(t, err)
	require.Empty(t, rec.values)
	require.ErrorIs(t, c.Err(), context.Canceled)
}

func TestParseAll_OverChannelSource(t *testing.T) {
	ch := make(chan rune, 4)
	for _, r := range "abab" {
		ch <- r
	}
	close(ch)

	values, err := ParseValues(
		func(next Parser[rune, rune]) Parser[rune, string] { return Word("ab") },
		FromChannel(context.Background(), ch),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"ab", "ab"}, values)
}
