package reparse

import (
	"fmt"

	"github.com/ygrebnov/reparse/trace"
)

// cursorConfig holds Cursor configuration.
type cursorConfig struct {
	// ForwardOnly makes the cursor reject moves to a lower index, which
	// enables buffer truncation once no branch needs the prefix.
	// Default: false
	ForwardOnly bool

	// TruncateWhileBranched allows a forward-only cursor to truncate its
	// buffer even while branches exist; without it, truncation is postponed
	// until the last branch is disposed. Requires ForwardOnly.
	// Default: false
	TruncateWhileBranched bool

	// Synchronized serializes every cursor operation, including branch
	// operations, through one lock. The only supported way to share a cursor
	// across goroutines.
	// Default: false
	Synchronized bool
}

// defaultCursorConfig centralizes default values for cursorConfig.
func defaultCursorConfig() cursorConfig {
	return cursorConfig{
		ForwardOnly:           false,
		TruncateWhileBranched: false,
		Synchronized:          false,
	}
}

// validateCursorConfig performs lightweight invariants checks.
func validateCursorConfig(cfg *cursorConfig) error {
	if cfg.TruncateWhileBranched && !cfg.ForwardOnly {
		return fmt.Errorf(
			"%w: truncation while branched requires a forward-only cursor", ErrInvalidConfig,
		)
	}
	return nil
}

// startConfig holds ParserStart configuration.
type startConfig struct {
	// Trace receives driver diagnostics. Default: a no-op provider.
	Trace trace.Provider
}

func defaultStartConfig() startConfig {
	return startConfig{Trace: trace.NewNoopProvider()}
}
