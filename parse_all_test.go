package reparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAll(t *testing.T) {
	results, err := ParseAll(abcGrammar, FromString("abcabc"))
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, []rune("abc"), results[0].Value)
}

func TestParseValues(t *testing.T) {
	values, err := ParseValues(
		func(next Parser[rune, rune]) Parser[rune, string] { return Word("ab") },
		FromString("abab"),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"ab", "ab"}, values)
}

func TestParseString(t *testing.T) {
	results, err := ParseString(
		func(next Parser[rune, rune]) Parser[rune, []rune] {
			return AllUnordered(Eq('a'), Eq('b'))
		},
		"ba",
	)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, []rune("ba"), results[0].Value)
}

func TestParseAll_PropagatesErrors(t *testing.T) {
	results, err := ParseAll(
		func(next Parser[rune, rune]) Parser[rune, rune] { return Eq('a') },
		failingSource('a'),
	)
	require.Len(t, results, 1)
	require.ErrorIs(t, err, errBoom)
}

func TestValues(t *testing.T) {
	require.Empty(t, Values[rune](nil))
	require.Equal(t, []rune("ab"),
		Values([]Result[rune]{Success('a', 1), Success('b', 1)}))
}
