package reparse

import "slices"

// Branch returns a child cursor positioned at this cursor's current index.
// The branch shares the root's buffer and subscriptions, participates in
// truncation decisions, and is disposed with its parent.
func (c *Cursor[T]) Branch() (*Cursor[T], error) {
	c.lock()
	defer c.unlock()
	return c.branch()
}

func (c *Cursor[T]) branch() (*Cursor[T], error) {
	if c.unusable() {
		return nil, ErrDisposed
	}

	r := c.base()
	b := &Cursor[T]{
		cfg:          c.cfg,
		mu:           c.mu,
		root:         r,
		parent:       c,
		currentIndex: c.currentIndex,
	}
	c.children = append(c.children, b)
	r.branches = append(r.branches, b)
	return b, nil
}

// Dispose drops the cursor. Disposing a branch removes it from the root's
// branch set, which may let a forward-only root truncate buffered elements no
// remaining position needs. Disposing the root drops all subscriptions,
// clears the buffer, and detaches every branch. Dispose is idempotent.
func (c *Cursor[T]) Dispose() {
	c.lock()
	defer c.unlock()
	c.dispose()
}

func (c *Cursor[T]) dispose() {
	if c.disposed {
		return
	}
	c.disposed = true

	for _, ch := range slices.Clone(c.children) {
		ch.dispose()
	}
	c.children = nil

	if c.root == nil {
		c.branches = nil
		c.subs = nil
		c.buffer = nil
		if c.feed != nil {
			c.feed.Close()
			c.feed = nil
		}
		return
	}

	r := c.root
	if i := slices.Index(r.branches, c); i >= 0 {
		r.branches = slices.Delete(r.branches, i, i+1)
	}
	if c.parent != nil {
		if i := slices.Index(c.parent.children, c); i >= 0 {
			c.parent.children = slices.Delete(c.parent.children, i, i+1)
		}
	}
	r.truncate()
}

// truncate advances the buffer head to the lowest position any live cursor
// still holds. It runs after forward moves and branch disposals; cursors not
// configured TruncateWhileBranched postpone it until no branches remain.
func (r *Cursor[T]) truncate() {
	if !r.cfg.ForwardOnly || r.disposed {
		return
	}
	if len(r.branches) > 0 && !r.cfg.TruncateWhileBranched {
		return
	}

	lowest := r.currentIndex
	for _, b := range r.branches {
		lowest = min(lowest, b.currentIndex)
	}
	if r.firstElementIndex >= lowest {
		return
	}

	drop := min(lowest-r.firstElementIndex, len(r.buffer))
	r.buffer = slices.Delete(r.buffer, 0, drop)
	r.firstElementIndex = lowest
}
