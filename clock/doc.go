// Package clock provides the high-resolution timestamp source used by the
// block and repetition profilers.
//
// All durations are kept as raw counter ticks. Use [Source.Frequency] to
// convert ticks to seconds at report time.
//
// [Counter] reads the CPU time-stamp counter on amd64 and monotonic
// nanoseconds on other architectures. [Manual] is a deterministic source for
// tests:
//
//	clk := clock.NewManual(1_000_000_000)
//	start := clk.Now()
//	clk.Advance(10 * time.Millisecond)
//	elapsed := clk.Now() - start // 10_000_000 ticks
package clock
