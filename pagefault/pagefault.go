// Package pagefault reads the cumulative page-fault count of the current
// process.
package pagefault

// Source reports a cumulative page-fault count.
type Source interface {
	PageFaults() uint64
}

// Process reads page faults of the running process from the operating
// system. On platforms without a supported API it always reports 0.
type Process struct{}

// PageFaults returns the number of minor and major faults incurred by the
// process so far.
func (Process) PageFaults() uint64 {
	return readProcessFaults()
}

// Func adapts a plain function to [Source].
type Func func() uint64

// PageFaults calls f.
func (f Func) PageFaults() uint64 {
	return f()
}

// Fixed is a [Source] whose count only changes when assigned.
type Fixed struct {
	Count uint64
}

// PageFaults returns the current count.
func (f *Fixed) PageFaults() uint64 {
	return f.Count
}
