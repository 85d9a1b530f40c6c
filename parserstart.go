package reparse

import (
	"iter"
	"sync"
	"sync/atomic"

	"github.com/ygrebnov/reparse/trace"
)

const (
	stateIdle int32 = iota
	stateParsing
)

// ParserStart is the top-level driver: it compiles the grammar once, then
// repeatedly applies it against a cursor, advancing by each match's length
// and emitting matches until end of input.
//
// A ParserStart is reusable but not re-entrant: a Parse while another is
// active fails with ErrReentrantParse.
type ParserStart[T, V any] struct {
	state   atomic.Int32
	build   func(next Parser[T, T]) Parser[T, V]
	compile sync.Once
	grammar Parser[T, V]

	parses   trace.Counter
	matches  trace.Counter
	consumed trace.Counter
	forced   trace.Counter
	perParse trace.Histogram
}

// NewParserStart creates a driver for the grammar produced by build. The
// thunk receives the cursor-reading primitive and is resolved once, on the
// first parse.
func NewParserStart[T, V any](
	build func(next Parser[T, T]) Parser[T, V],
	opts ...StartOption,
) *ParserStart[T, V] {
	cfg := defaultStartConfig()
	for _, opt := range opts {
		if opt == nil {
			panic("nil parser start option")
		}
		opt(&cfg)
	}

	tr := cfg.Trace
	return &ParserStart[T, V]{
		build: build,
		parses: tr.Counter("parses_started",
			trace.WithDescription("number of Parse invocations")),
		matches: tr.Counter("matches_emitted",
			trace.WithDescription("matches yielded to the consumer")),
		consumed: tr.Counter("elements_consumed", trace.WithUnit("elements")),
		forced: tr.Counter("forced_terminations",
			trace.WithDescription("parses terminated because the grammar stopped matching")),
		perParse: tr.Histogram("matches_per_parse"),
	}
}

// Parse runs the grammar against c until end of input, yielding every match.
// Failure to match is expressed by stream emptiness; the error position of
// the pair is non-nil only for driver misuse (re-entry, disposed cursor) or
// an upstream source error, reported as a ParseError with the failing index.
// The cursor is reset when the parse completes, so a cursor over a
// re-openable source yields an identical stream on a second call.
func (s *ParserStart[T, V]) Parse(c *Cursor[T]) iter.Seq2[Result[V], error] {
	return func(yield func(Result[V], error) bool) {
		var zero Result[V]
		if !s.state.CompareAndSwap(stateIdle, stateParsing) {
			yield(zero, ErrReentrantParse)
			return
		}
		defer s.state.Store(stateIdle)

		if s.build == nil {
			yield(zero, ErrUnsupportedOperation)
			return
		}
		if c.IsDisposed() {
			yield(zero, ErrDisposed)
			return
		}

		s.compile.Do(func() { s.grammar = s.build(Next[T]()) })
		s.parses.Add(1)
		defer func() { _ = c.Reset() }()

		emitted := int64(0)
		defer func() { s.perParse.Record(float64(emitted)) }()

		for !c.AtEndOfSequence() {
			had := false
			advanced := false
			for r := range s.grammar.Parse(c) {
				// A look-ahead that reaches the top level is accepted
				// unconditionally and not emitted.
				if r.IsLookAhead() {
					r.OnCompleted(true)
					continue
				}

				had = true
				emitted++
				s.matches.Add(1)
				if !yield(r, nil) {
					return
				}
				if !c.AtEndOfSequence() {
					if err := c.Move(r.Length); err != nil {
						yield(zero, err)
						return
					}
					if r.Length > 0 {
						advanced = true
						s.consumed.Add(int64(r.Length))
					}
				}
			}

			// A matchless iteration, or one that cannot advance, would loop
			// forever; drain the input and stop.
			if !had || !advanced {
				if !c.AtEndOfSequence() {
					if c.Err() == nil {
						s.forced.Add(1)
					}
					c.forceEnd()
				}
				break
			}
		}

		if err := c.Err(); err != nil {
			yield(zero, &ParseError{Index: c.LatestIndex() + 1, Err: err})
		}
	}
}
