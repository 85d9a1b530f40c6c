package reparse

import (
	"slices"
	"sync"
)

// Cursor is a positional, replaying view over an input sequence. It buffers
// elements pulled from its source so that branches can re-read them while
// alternatives are explored, and truncates the buffer head once configured to
// and safe to do so.
//
// A cursor is not safe for concurrent use unless constructed with
// WithSynchronized.
type Cursor[T any] struct {
	cfg cursorConfig

	// mu serializes operations for synchronized cursors. The pointer is
	// shared by the root and every branch so that all positions interleave
	// through a single point.
	mu *sync.Mutex

	root   *Cursor[T] // nil for the root cursor
	parent *Cursor[T] // nil for the root cursor

	currentIndex int
	disposed     bool

	children []*Cursor[T]

	// Root-only state; branches reach it through base().
	source            Source[T]
	feed              Feed[T]
	latestIndex       int
	firstElementIndex int
	stopped           bool
	terminator        notification[T]
	buffer            []T
	subs              []*subscription[T]
	branches          []*Cursor[T] // every live descendant branch
}

// NewCursor wraps src in a root cursor. It panics on an invalid option
// combination.
func NewCursor[T any](src Source[T], opts ...CursorOption) *Cursor[T] {
	cfg := defaultCursorConfig()
	for _, opt := range opts {
		if opt == nil {
			panic("nil cursor option")
		}
		opt(&cfg)
	}
	if err := validateCursorConfig(&cfg); err != nil {
		panic(err)
	}

	c := &Cursor[T]{cfg: cfg, source: src, latestIndex: -1}
	if cfg.Synchronized {
		c.mu = &sync.Mutex{}
	}
	return c
}

// Subscription is a handle on a registered observer.
type Subscription interface {
	Dispose()
}

type subscription[T any] struct {
	root      *Cursor[T]
	obs       Observer[T]
	index     int // next index to deliver
	bounded   bool
	remaining int
	disposed  bool
}

func (s *subscription[T]) Dispose() {
	s.root.lock()
	defer s.root.unlock()
	s.unregister()
}

func (s *subscription[T]) unregister() {
	if s.disposed {
		return
	}
	s.disposed = true
	if i := slices.Index(s.root.subs, s); i >= 0 {
		s.root.subs = slices.Delete(s.root.subs, i, i+1)
	}
}

func (c *Cursor[T]) lock() {
	if c.mu != nil {
		c.mu.Lock()
	}
}

func (c *Cursor[T]) unlock() {
	if c.mu != nil {
		c.mu.Unlock()
	}
}

// base returns the root cursor holding the shared buffer state.
func (c *Cursor[T]) base() *Cursor[T] {
	if c.root != nil {
		return c.root
	}
	return c
}

func (c *Cursor[T]) unusable() bool { return c.disposed || c.base().disposed }

// Subscribe registers o to receive notifications starting at the cursor's
// current index. Buffered notifications in range are replayed synchronously
// before Subscribe returns; notifications pulled later are pushed in order.
// If the sequence has already stopped, the terminator is delivered after the
// replay and the subscription completes.
func (c *Cursor[T]) Subscribe(o Observer[T]) (Subscription, error) {
	c.lock()
	defer c.unlock()
	return c.subscribe(o, false, 0)
}

// SubscribeN is Subscribe with bounded demand: the subscription completes
// after delivering n values, pulling from the source as needed. n must be at
// least 1.
func (c *Cursor[T]) SubscribeN(o Observer[T], n int) (Subscription, error) {
	c.lock()
	defer c.unlock()
	return c.subscribe(o, true, n)
}

func (c *Cursor[T]) subscribe(o Observer[T], bounded bool, n int) (Subscription, error) {
	if o == nil {
		return nil, ErrInvalidConfig
	}
	if bounded && n < 1 {
		return nil, ErrInvalidConfig
	}
	if c.unusable() {
		return nil, ErrDisposed
	}

	r := c.base()
	s := &subscription[T]{root: r, obs: o, index: c.currentIndex, bounded: bounded, remaining: n}
	r.subs = append(r.subs, s)

	// Replay the buffered window. The copy keeps observer callbacks that
	// add or remove subscriptions from invalidating the iteration.
	if s.index <= r.latestIndex {
		start := max(s.index-r.firstElementIndex, 0)
		replay := slices.Clone(r.buffer[start:])
		for _, v := range replay {
			if s.disposed {
				return s, nil
			}
			r.deliver(s, v)
		}
	}

	// Bounded demand beyond the buffer pulls from the source; this may block
	// on a cold input.
	for bounded && !s.disposed && !r.stopped {
		r.pullOne()
	}

	if !s.disposed && r.stopped {
		s.unregister()
		r.terminate(s)
	}
	return s, nil
}

// deliver hands the value at s.index to s. A bounded subscription that
// reaches zero remaining demand is unregistered before the final value is
// delivered, then receives the completion terminator.
func (r *Cursor[T]) deliver(s *subscription[T], v T) {
	s.index++
	if s.bounded {
		s.remaining--
		if s.remaining == 0 {
			s.unregister()
			s.obs.OnNext(v)
			s.obs.OnCompleted()
			return
		}
	}
	s.obs.OnNext(v)
}

func (r *Cursor[T]) terminate(s *subscription[T]) {
	if r.terminator.kind == kindError {
		s.obs.OnError(r.terminator.err)
		return
	}
	s.obs.OnCompleted()
}

// pullOne pulls a single element from the feed, buffers it, and delivers it
// to every subscription waiting at that index.
func (r *Cursor[T]) pullOne() {
	if r.stopped {
		return
	}
	if r.feed == nil {
		if r.source == nil {
			r.stop(notification[T]{kind: kindCompleted})
			return
		}
		r.feed = r.source.Open()
	}

	v, ok, err := r.feed.Next()
	switch {
	case err != nil:
		r.stop(notification[T]{kind: kindError, err: err})
	case !ok:
		r.stop(notification[T]{kind: kindCompleted})
	default:
		r.latestIndex++
		if r.firstElementIndex <= r.latestIndex {
			r.buffer = append(r.buffer, v)
		}
		for _, s := range slices.Clone(r.subs) {
			if !s.disposed && s.index == r.latestIndex {
				r.deliver(s, v)
			}
		}
	}
}

// stop is the single transition that terminates the sequence: it records the
// terminator, clamps every position past the end back to latestIndex+1, and
// completes all subscriptions.
func (r *Cursor[T]) stop(note notification[T]) {
	r.stopped = true
	r.terminator = note
	if r.feed != nil {
		r.feed.Close()
		r.feed = nil
	}

	end := r.latestIndex + 1
	r.currentIndex = min(r.currentIndex, end)
	r.firstElementIndex = min(r.firstElementIndex, end)
	for _, b := range r.branches {
		b.currentIndex = min(b.currentIndex, end)
	}

	subs := r.subs
	r.subs = nil
	for _, s := range subs {
		if s.disposed {
			continue
		}
		s.disposed = true
		r.terminate(s)
	}
}

// Move adjusts the cursor's position by delta. Forward-only cursors reject
// negative deltas; every cursor rejects moves before its first retained
// element. Positive moves on a forward-only cursor may truncate the buffer.
func (c *Cursor[T]) Move(delta int) error {
	c.lock()
	defer c.unlock()
	return c.move(delta)
}

func (c *Cursor[T]) move(delta int) error {
	if c.unusable() {
		return ErrDisposed
	}
	if c.cfg.ForwardOnly && delta < 0 {
		return ErrBackwardMove
	}

	r := c.base()
	target := c.currentIndex + delta
	low := 0
	if c.cfg.ForwardOnly {
		low = r.firstElementIndex
	}
	if target < low {
		return ErrBackwardMove
	}

	c.currentIndex = target
	if r.stopped {
		c.currentIndex = min(c.currentIndex, r.latestIndex+1)
	}
	if delta > 0 {
		r.truncate()
	}
	return nil
}

// Connect idempotently starts pulling from the source. Disposing the returned
// handle stops pulling and resets the cursor. Cursors over explicitly
// buffered inputs connect implicitly on first demand, so calling Connect is
// optional for them.
func (c *Cursor[T]) Connect() (release func(), err error) {
	c.lock()
	defer c.unlock()
	if c.unusable() {
		return nil, ErrDisposed
	}

	r := c.base()
	if r.feed == nil && !r.stopped && r.source != nil {
		r.feed = r.source.Open()
	}
	return func() { _ = r.Reset() }, nil
}

// Reset returns a root cursor to its pre-connect state: branches disposed,
// buffer cleared, position zero, terminator forgotten. A source that can be
// re-opened may then be parsed again.
func (c *Cursor[T]) Reset() error {
	c.lock()
	defer c.unlock()
	return c.reset()
}

func (c *Cursor[T]) reset() error {
	if c.root != nil {
		return ErrUnsupportedOperation
	}
	if c.disposed {
		return ErrDisposed
	}

	for _, b := range slices.Clone(c.branches) {
		b.dispose()
	}
	c.branches = nil
	c.subs = nil
	c.buffer = nil
	if c.feed != nil {
		c.feed.Close()
		c.feed = nil
	}
	c.currentIndex = 0
	c.latestIndex = -1
	c.firstElementIndex = 0
	c.stopped = false
	c.terminator = notification[T]{}
	return nil
}

// forceEnd drains the remaining input and parks the cursor at the end of the
// sequence. The driver uses it to guarantee termination when the grammar
// stops matching.
func (c *Cursor[T]) forceEnd() {
	c.lock()
	defer c.unlock()
	if c.unusable() {
		return
	}
	r := c.base()
	for !r.stopped {
		r.pullOne()
	}
	c.currentIndex = r.latestIndex + 1
}

// peek returns the element at the cursor's position without moving it.
func (c *Cursor[T]) peek() (T, bool) {
	var (
		v   T
		got bool
	)
	_, err := c.SubscribeN(On(func(x T) { v, got = x, true }, nil, nil), 1)
	if err != nil {
		var zero T
		return zero, false
	}
	return v, got
}

// CurrentIndex returns the position at which the next element will be read.
func (c *Cursor[T]) CurrentIndex() int {
	c.lock()
	defer c.unlock()
	return c.currentIndex
}

// LatestIndex returns the highest index for which the input has produced a
// value, or -1 before the first element arrives.
func (c *Cursor[T]) LatestIndex() int {
	c.lock()
	defer c.unlock()
	return c.base().latestIndex
}

// FirstElementIndex returns the source index of the first element still kept
// in the buffer. It is always 0 for cursors that are not forward-only.
func (c *Cursor[T]) FirstElementIndex() int {
	c.lock()
	defer c.unlock()
	return c.base().firstElementIndex
}

// AtEndOfSequence reports whether the input has terminated and the cursor's
// position is past the last produced element.
func (c *Cursor[T]) AtEndOfSequence() bool {
	c.lock()
	defer c.unlock()
	r := c.base()
	return r.stopped && c.currentIndex == r.latestIndex+1
}

// IsSequenceTerminated reports whether the input has terminated, successfully
// or with an error.
func (c *Cursor[T]) IsSequenceTerminated() bool {
	c.lock()
	defer c.unlock()
	return c.base().stopped
}

// Err returns the upstream error that terminated the sequence, if any.
func (c *Cursor[T]) Err() error {
	c.lock()
	defer c.unlock()
	r := c.base()
	if r.terminator.kind == kindError {
		return r.terminator.err
	}
	return nil
}

// IsDisposed reports whether the cursor, or the root it was branched from,
// has been disposed.
func (c *Cursor[T]) IsDisposed() bool {
	c.lock()
	defer c.unlock()
	return c.unusable()
}

// IsForwardOnly reports whether the cursor rejects backward moves.
func (c *Cursor[T]) IsForwardOnly() bool { return c.cfg.ForwardOnly }

// IsSynchronized reports whether operations are serialized under one lock.
func (c *Cursor[T]) IsSynchronized() bool { return c.cfg.Synchronized }

// BufferedCount returns the number of values currently retained in the
// replay buffer.
func (c *Cursor[T]) BufferedCount() int {
	c.lock()
	defer c.unlock()
	return len(c.base().buffer)
}
