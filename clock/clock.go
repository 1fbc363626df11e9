package clock

import (
	"sync"
	"time"
)

// DefaultCalibration is how long [Estimate] busy-waits when calibrating
// [Counter].
const DefaultCalibration = 100 * time.Millisecond

// Source is a monotonic tick counter.
type Source interface {
	// Now returns the current counter value.
	Now() uint64
	// Frequency returns the number of ticks per second.
	Frequency() uint64
}

// Counter is the process's high-resolution counter.
//
// The zero value is ready to use. On architectures where the counter runs at
// an unknown rate, the first call to [Counter.Frequency] calibrates it with
// [Estimate], which blocks for [DefaultCalibration].
type Counter struct{}

// Now returns the current counter value.
func (Counter) Now() uint64 {
	return readCounter()
}

// Frequency returns the counter rate in ticks per second.
func (Counter) Frequency() uint64 {
	return counterFrequency()
}

// Name returns the instruction or API the counter reads.
func (Counter) Name() string {
	return counterName
}

var (
	calibrateOnce sync.Once
	calibrated    uint64
)

// calibratedFrequency calibrates the counter once per process.
func calibratedFrequency() uint64 {
	calibrateOnce.Do(func() {
		calibrated = Estimate(Counter{}, DefaultCalibration)
	})

	return calibrated
}

// Estimate measures the tick rate of src in Hz by busy-waiting against the
// wall clock for wait. It returns 0 if no wall time elapsed.
func Estimate(src Source, wait time.Duration) uint64 {
	start := src.Now()
	wallStart := time.Now()

	var wall time.Duration
	for wall < wait {
		wall = time.Since(wallStart)
	}

	ticks := src.Now() - start

	if wall <= 0 {
		return 0
	}

	return uint64(float64(ticks) * float64(time.Second) / float64(wall))
}

// Seconds converts ticks at freq Hz to seconds. A zero freq yields 0.
func Seconds(ticks, freq uint64) float64 {
	if freq == 0 {
		return 0
	}

	return float64(ticks) / float64(freq)
}

// Ticks converts d to ticks at freq Hz.
// Negative durations yield 0.
func Ticks(d time.Duration, freq uint64) uint64 {
	if d <= 0 {
		return 0
	}

	whole := uint64(d / time.Second)
	frac := uint64(d % time.Second)

	return whole*freq + frac*freq/uint64(time.Second)
}
