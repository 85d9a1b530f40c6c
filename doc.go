// Package reparse provides backtracking parser combinators over arbitrary
// input sequences (bytes, runes, or generic tokens), together with the
// memoizing replay cursor the parsers operate on.
//
// Constructors
//   - NewCursor(src, opts ...CursorOption): wraps an input Source in a
//     positional, replaying view. Branch the cursor to explore alternatives
//     without consuming the main position.
//   - NewParserStart(build, opts ...StartOption): the top-level driver. It
//     compiles the grammar once and repeatedly applies it against a cursor,
//     emitting matches until end of input.
//   - ParseAll / ParseValues / ParseString: one-call conveniences that own the
//     cursor and driver lifecycle for you.
//
// Defaults
// Unless overridden, a newly created cursor:
//   - is not forward-only (backward moves are permitted),
//   - keeps its whole buffer (no truncation),
//   - is not synchronized (single-goroutine use only).
//
// A newly created ParserStart records diagnostics into a no-op trace provider;
// inject trace.NewBasicProvider (or your own) via WithTraceProvider.
//
// Parsers
// A Parser[T, V] matches a prefix of the input at the cursor's position and
// produces a lazy sequence of Result[V] values, each pairing a value with the
// number of source elements it consumed. Failure is the empty sequence, never
// an error. Parsers compose with All (ordered sequence), Any (ordered choice),
// AllUnordered (unordered sequence), the quantifiers (Optional, Many,
// AtLeastOne, NonGreedyUntil) and Map; recursive rules go through Deferred.
//
// Lifecycle
// Every branch a combinator creates is released on all exit paths, including
// early termination by the consumer of the lazy result sequence. The driver
// resets the cursor when a parse completes, so a cursor over a re-openable
// source can be parsed again and produce an identical stream.
//
// Concurrency
// The core is single-threaded and cooperative: all work happens on the
// goroutine that iterates the results. A ParserStart refuses concurrent
// parses. The only way to share a cursor across goroutines is the
// synchronized variant (WithSynchronized), which serializes every operation
// through one lock; observer callbacks must not re-enter a synchronized
// cursor.
package reparse
