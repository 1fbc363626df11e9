//go:build unix

package pagefault

import "golang.org/x/sys/unix"

func readProcessFaults() uint64 {
	var ru unix.Rusage

	err := unix.Getrusage(unix.RUSAGE_SELF, &ru)
	if err != nil {
		return 0
	}

	return uint64(ru.Minflt) + uint64(ru.Majflt) //nolint:gosec // Counters are never negative.
}
