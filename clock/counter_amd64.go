//go:build amd64

package clock

const counterName = "rdtsc"

// rdtsc reads the time-stamp counter. Implemented in counter_amd64.s.
//
//go:noescape
func rdtsc() uint64

func readCounter() uint64 {
	return rdtsc()
}

func counterFrequency() uint64 {
	return calibratedFrequency()
}
