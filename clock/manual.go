package clock

import "time"

// Manual is a [Source] that only moves when told to. Not safe for concurrent
// use.
//
// Create instances with [NewManual].
type Manual struct {
	now  uint64
	freq uint64
}

// NewManual creates a [Manual] source ticking at freq Hz, starting at tick 0.
func NewManual(freq uint64) *Manual {
	return &Manual{freq: freq}
}

// Now returns the current tick.
func (m *Manual) Now() uint64 {
	return m.now
}

// Frequency returns the configured tick rate.
func (m *Manual) Frequency() uint64 {
	return m.freq
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.now += Ticks(d, m.freq)
}

// AdvanceTicks moves the clock forward by n ticks.
func (m *Manual) AdvanceTicks(n uint64) {
	m.now += n
}

// Name identifies the source in reports.
func (*Manual) Name() string {
	return "manual"
}
