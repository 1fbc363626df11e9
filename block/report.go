package block

import (
	"fmt"
	"log/slog"

	"go.jacobcolvin.com/blockprof/clock"
	"go.jacobcolvin.com/blockprof/report"
)

// Close ends the session and writes its report. Only the first call has any
// effect; later calls return nil. After Close the session ignores further
// Begin and End calls.
func (s *Session) Close() error {
	if s == nil || s.ended {
		return nil
	}

	now := s.clock.Now()
	s.ended = true
	s.stop = now

	if depth := len(s.stack) + s.overflow; depth > 0 {
		s.logger.Warn("session closed with open blocks",
			slog.String("session", s.name), slog.Int("open", depth))
	}

	doc := s.report(now)

	s.logger.Info("finished session",
		slog.String("session", s.name),
		slog.String("total", fmt.Sprintf("%.6fs", doc.TotalSeconds)),
	)

	err := report.Write(s.out, s.format, doc)
	if err != nil {
		return fmt.Errorf("session %s: %w", s.name, err)
	}

	return nil
}

// Report summarizes the session as of now without ending it. After
// [Session.Close] it returns the report as of the close.
func (s *Session) Report() report.Session {
	if s == nil {
		return report.Session{}
	}

	if s.ended {
		return s.report(s.stop)
	}

	return s.report(s.clock.Now())
}

func (s *Session) report(now uint64) report.Session {
	freq := s.clock.Frequency()
	total := clock.Seconds(now-s.start, freq)

	doc := report.Session{
		Name:         s.name,
		Counter:      counterName(s.clock),
		Frequency:    freq,
		TotalSeconds: total,
	}

	for _, b := range s.Blocks() {
		ex := clock.Seconds(b.TimeEx, freq)
		inc := clock.Seconds(b.TimeInc, freq)

		row := report.Block{
			ID:               int(b.ID),
			Label:            b.Label,
			File:             b.File,
			Line:             b.Line,
			Iterations:       b.Iterations,
			ExclusiveSeconds: ex,
			ExclusivePercent: report.Percent(ex, total),
			InclusiveSeconds: inc,
			InclusivePercent: report.Percent(inc, total),
			BytesProcessed:   b.BytesProcessed,
		}

		if b.BytesProcessed > 0 {
			row.Throughput = report.Throughput(float64(b.BytesProcessed), ex)
		}

		doc.Blocks = append(doc.Blocks, row)
	}

	return doc
}

func counterName(src clock.Source) string {
	if n, ok := src.(interface{ Name() string }); ok {
		return n.Name()
	}

	return fmt.Sprintf("%T", src)
}
