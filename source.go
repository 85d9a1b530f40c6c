package reparse

import (
	"context"
	"iter"
)

// Source produces input elements for a cursor. Open starts a pass over the
// input; sources backed by immutable data may be opened any number of times,
// one-shot feeds (channels) resume where the previous pass stopped.
type Source[T any] interface {
	Open() Feed[T]
}

// Feed is one pass over a source's elements.
type Feed[T any] interface {
	// Next returns the next element. ok reports whether an element was
	// produced; a non-nil err terminates the sequence with that error.
	Next() (value T, ok bool, err error)

	// Close releases the pass. The feed must not be used afterwards.
	Close()
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc[T any] func() Feed[T]

func (f SourceFunc[T]) Open() Feed[T] { return f() }

// FromSlice returns a source over the given elements. The slice is not
// copied; it must not be mutated while a cursor reads from it.
func FromSlice[T any](els []T) Source[T] {
	return SourceFunc[T](func() Feed[T] { return &sliceFeed[T]{els: els} })
}

// FromString returns a rune source over s.
func FromString(s string) Source[rune] { return FromSlice([]rune(s)) }

// FromBytes returns a byte source over b.
func FromBytes(b []byte) Source[byte] { return FromSlice(b) }

// FromSeq returns a source over an iterator sequence. Each Open starts a new
// pass of seq.
func FromSeq[T any](seq iter.Seq[T]) Source[T] {
	return SourceFunc[T](func() Feed[T] {
		next, stop := iter.Pull(seq)
		return &seqFeed[T]{next: next, stop: stop}
	})
}

// FromChannel returns a source that reads from ch. Pulling blocks the calling
// goroutine until an element arrives, ch is closed, or ctx is done; a context
// error terminates the sequence with that error. The channel is a one-shot
// feed: every Open resumes the same stream.
func FromChannel[T any](ctx context.Context, ch <-chan T) Source[T] {
	f := &chanFeed[T]{ctx: ctx, ch: ch}
	return SourceFunc[T](func() Feed[T] { return f })
}

type sliceFeed[T any] struct {
	els []T
	pos int
}

func (f *sliceFeed[T]) Next() (T, bool, error) {
	if f.pos >= len(f.els) {
		var zero T
		return zero, false, nil
	}
	v := f.els[f.pos]
	f.pos++
	return v, true, nil
}

func (f *sliceFeed[T]) Close() {}

type seqFeed[T any] struct {
	next func() (T, bool)
	stop func()
}

func (f *seqFeed[T]) Next() (T, bool, error) {
	v, ok := f.next()
	return v, ok, nil
}

func (f *seqFeed[T]) Close() { f.stop() }

type chanFeed[T any] struct {
	ctx context.Context
	ch  <-chan T
}

func (f *chanFeed[T]) Next() (T, bool, error) {
	var zero T
	select {
	case <-f.ctx.Done():
		return zero, false, f.ctx.Err()
	case v, ok := <-f.ch:
		if !ok {
			return zero, false, nil
		}
		return v, true, nil
	}
}

func (f *chanFeed[T]) Close() {}
