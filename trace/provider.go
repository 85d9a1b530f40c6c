// Package trace defines the diagnostics surface the parse driver records
// into. The default provider discards everything; inject a BasicProvider (or
// your own implementation) to observe a driver.
package trace

// Provider constructs instruments used to record parse diagnostics.
// Implementations must be safe for concurrent use.
//
// Keep this interface minimal and stable; add separate optional interfaces
// rather than expanding this surface.
type Provider interface {
	Counter(name string, opts ...InstrumentOption) Counter
	Histogram(name string, opts ...InstrumentOption) Histogram
}

// Counter records monotonic counts (matches emitted, elements consumed).
// Methods must be safe for concurrent use.
type Counter interface {
	Add(n int64)
}

// Histogram records a distribution of float64 measurements (matches per
// parse). Methods must be safe for concurrent use.
type Histogram interface {
	Record(v float64)
}

// InstrumentConfig carries optional instrument metadata. It is advisory
// only; implementations may ignore it.
type InstrumentConfig struct {
	Description string
	Unit        string
}

// InstrumentOption mutates InstrumentConfig.
type InstrumentOption func(*InstrumentConfig)

// WithDescription sets an advisory description for the instrument.
func WithDescription(desc string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Description = desc }
}

// WithUnit sets an advisory unit for the instrument (e.g. "1", "elements").
func WithUnit(unit string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Unit = unit }
}

func applyOptions(opts []InstrumentOption) InstrumentConfig {
	var cfg InstrumentConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}
