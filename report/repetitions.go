package report

import (
	"fmt"
	"io"
	"strings"
)

// Repetitions summarizes a finished repetition profiler.
type Repetitions struct {
	Name       string  `json:"name"       yaml:"name"`
	Repeats    uint64  `json:"repeats"    yaml:"repeats"`
	MaxRepeats uint64  `json:"maxRepeats" yaml:"maxRepeats"`
	Initial    Trial   `json:"initial"    yaml:"initial"`
	Fastest    Trial   `json:"fastest"    yaml:"fastest"`
	Slowest    Trial   `json:"slowest"    yaml:"slowest"`
	Average    Average `json:"average"    yaml:"average"`
}

// Trial is one recorded trial in a [Repetitions] report.
type Trial struct {
	Milliseconds float64 `json:"milliseconds" yaml:"milliseconds"`
	Throughput   float64 `json:"throughput"   yaml:"throughput"`
	Bytes        uint64  `json:"bytes"        yaml:"bytes"`
	PageFaults   uint64  `json:"pageFaults"   yaml:"pageFaults"`
}

// Average is the mean over all trials in a [Repetitions] report.
type Average struct {
	Milliseconds float64 `json:"milliseconds" yaml:"milliseconds"`
	Throughput   float64 `json:"throughput"   yaml:"throughput"`
	Bytes        float64 `json:"bytes"        yaml:"bytes"`
	PageFaults   float64 `json:"pageFaults"   yaml:"pageFaults"`
}

// WriteText writes one row each for the initial, fastest, slowest and
// average trial.
func (r Repetitions) WriteText(w io.Writer) error {
	var sb strings.Builder

	rows := []struct {
		name  string
		trial Trial
	}{
		{"Initial", r.Initial},
		{"Fastest", r.Fastest},
		{"Slowest", r.Slowest},
	}

	for _, row := range rows {
		fmt.Fprintf(&sb, "\t> %s: \t%.3f ms\t%.3f GB/s\t%d pf\n",
			row.name, row.trial.Milliseconds, row.trial.Throughput, row.trial.PageFaults)
	}

	fmt.Fprintf(&sb, "\t> Average: \t%.3f ms\t%.3f GB/s\t%.2f pf\n",
		r.Average.Milliseconds, r.Average.Throughput, r.Average.PageFaults)

	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("write repetition table: %w", err)
	}

	return nil
}
