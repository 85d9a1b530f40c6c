package reparse

import "github.com/ygrebnov/reparse/trace"

// CursorOption configures a Cursor. Use NewCursor(src, opts...) to construct
// a cursor via options.
type CursorOption func(*cursorConfig)

// WithForwardOnly makes the cursor reject backward moves and enables buffer
// truncation.
func WithForwardOnly() CursorOption {
	return func(cfg *cursorConfig) { cfg.ForwardOnly = true }
}

// WithTruncateWhileBranched lets a forward-only cursor truncate its buffer
// even while branches exist. NewCursor panics if the cursor is not also
// forward-only.
func WithTruncateWhileBranched() CursorOption {
	return func(cfg *cursorConfig) { cfg.TruncateWhileBranched = true }
}

// WithSynchronized serializes every cursor operation through one lock.
func WithSynchronized() CursorOption {
	return func(cfg *cursorConfig) { cfg.Synchronized = true }
}

// StartOption configures a ParserStart.
type StartOption func(*startConfig)

// WithTraceProvider injects the diagnostics provider the driver records into.
func WithTraceProvider(p trace.Provider) StartOption {
	if p == nil {
		panic("nil trace provider")
	}
	return func(cfg *startConfig) { cfg.Trace = p }
}
