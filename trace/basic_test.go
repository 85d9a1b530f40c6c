package trace

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBasicProvider_Counter(t *testing.T) {
	p := NewBasicProvider()

	c := p.Counter("matches", WithDescription("emitted matches"), WithUnit("1"))
	c.Add(2)
	c.Add(3)
	require.Equal(t, int64(5), p.CounterValue("matches"))

	// The same name returns the same instrument.
	p.Counter("matches").Add(1)
	require.Equal(t, int64(6), p.CounterValue("matches"))

	cfg, ok := p.Config("matches")
	require.True(t, ok)
	require.Equal(t, "emitted matches", cfg.Description)
	require.Equal(t, "1", cfg.Unit)

	require.Zero(t, p.CounterValue("unknown"))
}

func TestBasicProvider_Histogram(t *testing.T) {
	p := NewBasicProvider()

	h := p.Histogram("per_parse")
	count, sum, minV, maxV := p.HistogramStats("per_parse")
	require.Zero(t, count)
	require.Zero(t, sum)
	require.True(t, math.IsInf(minV, 1))
	require.True(t, math.IsInf(maxV, -1))

	h.Record(3)
	h.Record(1)
	h.Record(2)

	count, sum, minV, maxV = p.HistogramStats("per_parse")
	require.Equal(t, int64(3), count)
	require.Equal(t, 6.0, sum)
	require.Equal(t, 1.0, minV)
	require.Equal(t, 3.0, maxV)
}

func TestBasicProvider_ConcurrentUse(t *testing.T) {
	p := NewBasicProvider()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				p.Counter("c").Add(1)
				p.Histogram("h").Record(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(800), p.CounterValue("c"))
	count, sum, _, _ := p.HistogramStats("h")
	require.Equal(t, int64(800), count)
	require.Equal(t, 800.0, sum)
}

func TestNoopProvider(t *testing.T) {
	p := NewNoopProvider()
	p.Counter("anything").Add(1)
	p.Histogram("anything").Record(1)
}
