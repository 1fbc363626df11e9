//go:build !amd64

package clock

import "time"

const counterName = "monotonic"

var epoch = time.Now()

// readCounter returns monotonic nanoseconds since package initialization.
func readCounter() uint64 {
	return uint64(time.Since(epoch))
}

func counterFrequency() uint64 {
	return uint64(time.Second)
}
