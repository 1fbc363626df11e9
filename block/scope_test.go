package block_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/blockprof/block"
)

func TestScope(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	s := h.session

	func() {
		defer s.Scope(1, "outer").End()

		h.clk.Advance(1 * time.Millisecond)

		inner := s.Scope(2, "inner")
		defer inner.End()

		inner.AddBytes(64)
		h.clk.Advance(2 * time.Millisecond)

		// Ending early must not end the parent when the deferred call runs.
		inner.End()
		h.clk.Advance(4 * time.Millisecond)
	}()

	assert.Zero(t, s.Depth())

	outer := h.lookup(t, 1)
	inner := h.lookup(t, 2)

	assert.Equal(t, ms(5), outer.TimeEx)
	assert.Equal(t, ms(7), outer.TimeInc)
	assert.Equal(t, ms(2), inner.TimeEx)
	assert.Equal(t, uint64(64), inner.BytesProcessed)
	assert.NotContains(t, h.logs.String(), "end with no open block")
}

func TestScopeEarlyReturn(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	s := h.session

	work := func(fail bool) error {
		defer s.Scope(1, "work").End()

		h.clk.Advance(1 * time.Millisecond)

		if fail {
			return assert.AnError
		}

		h.clk.Advance(1 * time.Millisecond)

		return nil
	}

	require.ErrorIs(t, work(true), assert.AnError)
	require.NoError(t, work(false))

	assert.Zero(t, s.Depth())

	b := h.lookup(t, 1)
	assert.Equal(t, uint64(2), b.Iterations)
	assert.Equal(t, ms(3), b.TimeEx)
}

func TestTimeEndsOnPanic(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	s := h.session

	s.Begin(1, "outer")

	assert.Panics(t, func() {
		s.Time(2, "explode", func() {
			h.clk.Advance(3 * time.Millisecond)
			panic("boom")
		})
	})

	assert.Equal(t, 1, s.Depth(), "only the outer block remains open")
	s.End()

	b := h.lookup(t, 2)
	assert.Equal(t, uint64(1), b.Iterations)
	assert.Equal(t, ms(3), b.TimeInc)
}

func TestFunction(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	s := h.session

	sc := s.Function(5)
	sc.End()

	b := h.lookup(t, 5)
	assert.Equal(t, "TestFunction", b.Label)
}

func TestScopeOnClosedSession(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	s := h.session

	require.NoError(t, s.Close())

	assert.NotPanics(t, func() {
		sc := s.Scope(1, "late")
		sc.AddBytes(1)
		sc.End()
	})

	_, ok := s.Lookup(1)
	assert.False(t, ok)

	var zero block.Scope
	assert.NotPanics(t, func() { zero.End() }, "a zero Scope is inert")
}
