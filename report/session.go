package report

import (
	"fmt"
	"io"
	"strings"
)

// ruleWidth is the width of the dashed line under the session table header.
const ruleWidth = 111

// Session summarizes a finished block profiling session.
type Session struct {
	Name         string  `json:"name"         yaml:"name"`
	Counter      string  `json:"counter"      yaml:"counter"`
	Frequency    uint64  `json:"frequency"    yaml:"frequency"`
	TotalSeconds float64 `json:"totalSeconds" yaml:"totalSeconds"`
	Blocks       []Block `json:"blocks"       yaml:"blocks"`
}

// Block is one row of a [Session] report.
type Block struct {
	Label            string  `json:"label"                yaml:"label"`
	File             string  `json:"file,omitempty"       yaml:"file,omitempty"`
	ID               int     `json:"id"                   yaml:"id"`
	Line             int     `json:"line,omitempty"       yaml:"line,omitempty"`
	Iterations       uint64  `json:"iterations"           yaml:"iterations"`
	ExclusiveSeconds float64 `json:"exclusiveSeconds"     yaml:"exclusiveSeconds"`
	ExclusivePercent float64 `json:"exclusivePercent"     yaml:"exclusivePercent"`
	InclusiveSeconds float64 `json:"inclusiveSeconds"     yaml:"inclusiveSeconds"`
	InclusivePercent float64 `json:"inclusivePercent"     yaml:"inclusivePercent"`
	BytesProcessed   uint64  `json:"bytesProcessed"       yaml:"bytesProcessed"`
	Throughput       float64 `json:"throughput,omitempty" yaml:"throughput,omitempty"`
}

// WriteText writes the session table. Blocks without processed bytes leave
// the bandwidth column empty.
func (s Session) WriteText(w io.Writer) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, " %-24s \t| %-25s \t| %-25s \t| %-12s\n",
		"Name[n]", "Time (Ex)", "Time (Inc)", "Bandwidth")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteByte('\n')

	for _, b := range s.Blocks {
		fmt.Fprintf(&sb, " %-20s [%d] \t| %.5f secs\t(%.2f%%) \t| %.5f secs\t(%.2f%%) \t|",
			b.Label,
			b.Iterations,
			b.ExclusiveSeconds,
			b.ExclusivePercent,
			b.InclusiveSeconds,
			b.InclusivePercent,
		)

		if b.BytesProcessed > 0 {
			fmt.Fprintf(&sb, " %.3f GB/s", b.Throughput)
		}

		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("write session table: %w", err)
	}

	return nil
}
