// Package repetition times repeated trials of a single operation.
//
// A [Profiler] is driven through a caller-owned loop of [Profiler.BeginRep]
// and [Profiler.EndRep] calls. It tracks the first, fastest and slowest
// trial, a running sum for the average, and the page faults incurred by each
// trial:
//
//	p := repetition.New("checksum", 100)
//	defer p.Close()
//
//	for !p.Done() {
//		p.BeginRep()
//		p.AddBytes(uint64(len(data)))
//		checksum(data)
//		p.EndRep()
//	}
//
// [Profiler.Run] wraps the same loop. A Profiler is not safe for concurrent
// use.
package repetition

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.jacobcolvin.com/blockprof/clock"
	"go.jacobcolvin.com/blockprof/pagefault"
	"go.jacobcolvin.com/blockprof/report"
)

// DefaultRepeats is the default number of trials.
const DefaultRepeats = 100

// Trial is one measured run. After [Profiler.EndRep], Time is the elapsed
// ticks and PageFaults the faults incurred during the trial.
type Trial struct {
	Time       uint64
	Bytes      uint64
	PageFaults uint64
}

// Profiler runs and summarizes repeated trials.
//
// Create instances with [New].
type Profiler struct {
	clock  clock.Source
	faults pagefault.Source
	logger *slog.Logger
	out    io.Writer
	name   string
	format report.Format

	// First is the first completed trial.
	First Trial
	// Min is the fastest trial.
	Min Trial
	// Max is the slowest trial. Ties go to the later trial.
	Max Trial

	current Trial
	sum     Trial

	// Repeats counts completed trials.
	Repeats uint64
	// MaxRepeats is the number of trials the caller intends to run.
	MaxRepeats uint64

	hasMin  bool
	running bool
	closed  bool
}

// Option configures a [Profiler].
type Option func(*Profiler)

// WithClock sets the timestamp source. The default is [clock.Counter].
func WithClock(src clock.Source) Option {
	return func(p *Profiler) {
		p.clock = src
	}
}

// WithFaults sets the page-fault source. The default is
// [pagefault.Process].
func WithFaults(src pagefault.Source) Option {
	return func(p *Profiler) {
		p.faults = src
	}
}

// WithLogger sets the logger. The default is [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(p *Profiler) {
		p.logger = l
	}
}

// WithOutput sets where [Profiler.Close] writes the report. The default is
// [os.Stdout].
func WithOutput(w io.Writer) Option {
	return func(p *Profiler) {
		p.out = w
	}
}

// WithFormat sets the report format. The default is [report.FormatText].
func WithFormat(f report.Format) Option {
	return func(p *Profiler) {
		p.format = f
	}
}

// New creates a [Profiler] named name that intends to run maxRepeats trials.
func New(name string, maxRepeats uint64, opts ...Option) *Profiler {
	p := &Profiler{
		name:       name,
		MaxRepeats: maxRepeats,
		clock:      clock.Counter{},
		faults:     pagefault.Process{},
		logger:     slog.Default(),
		out:        os.Stdout,
		format:     report.FormatText,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the profiler name.
func (p *Profiler) Name() string {
	return p.name
}

// Done reports whether MaxRepeats trials have completed.
func (p *Profiler) Done() bool {
	return p.Repeats >= p.MaxRepeats
}

// BeginRep starts a trial, snapshotting the clock and the page-fault count.
// Calling it while a trial is running restarts that trial.
func (p *Profiler) BeginRep() {
	p.current = Trial{
		PageFaults: p.faults.PageFaults(),
		Time:       p.clock.Now(),
	}
	p.running = true
}

// AddBytes attributes bytes of work to the running trial.
func (p *Profiler) AddBytes(bytes uint64) {
	p.current.Bytes += bytes
}

// EndRep finishes the running trial and folds it into the statistics.
func (p *Profiler) EndRep() {
	now := p.clock.Now()
	faults := p.faults.PageFaults()

	if !p.running {
		p.logger.Warn("end repetition without begin", slog.String("profiler", p.name))
		return
	}

	p.running = false

	p.current.Time = now - p.current.Time
	p.current.PageFaults = faults - p.current.PageFaults

	if !p.hasMin || p.current.Time < p.Min.Time {
		p.Min = p.current
		p.hasMin = true
	}

	if p.current.Time >= p.Max.Time {
		p.Max = p.current
	}

	p.sum.Time += p.current.Time
	p.sum.Bytes += p.current.Bytes
	p.sum.PageFaults += p.current.PageFaults

	if p.Repeats == 0 {
		p.First = p.current
	}

	p.Repeats++
}

// Run calls fn once per trial until MaxRepeats trials have completed. fn
// runs between BeginRep and EndRep and may call [Profiler.AddBytes].
func (p *Profiler) Run(fn func(*Profiler)) {
	for !p.Done() {
		p.BeginRep()
		fn(p)
		p.EndRep()
	}
}

// Average is the mean of all completed trials.
type Average struct {
	Time       float64
	Bytes      float64
	PageFaults float64
}

// Average returns the mean trial. It is zero when no trial has completed.
func (p *Profiler) Average() Average {
	if p.Repeats == 0 {
		return Average{}
	}

	n := float64(p.Repeats)

	return Average{
		Time:       float64(p.sum.Time) / n,
		Bytes:      float64(p.sum.Bytes) / n,
		PageFaults: float64(p.sum.PageFaults) / n,
	}
}

// Report summarizes the completed trials.
func (p *Profiler) Report() report.Repetitions {
	freq := p.clock.Frequency()
	avg := p.Average()

	avgSeconds := 0.0
	if freq > 0 {
		avgSeconds = avg.Time / float64(freq)
	}

	return report.Repetitions{
		Name:       p.name,
		Repeats:    p.Repeats,
		MaxRepeats: p.MaxRepeats,
		Initial:    trialReport(p.First, freq),
		Fastest:    trialReport(p.Min, freq),
		Slowest:    trialReport(p.Max, freq),
		Average: report.Average{
			Milliseconds: avgSeconds * 1000,
			Throughput:   report.Throughput(avg.Bytes, avgSeconds),
			Bytes:        avg.Bytes,
			PageFaults:   avg.PageFaults,
		},
	}
}

func trialReport(t Trial, freq uint64) report.Trial {
	seconds := clock.Seconds(t.Time, freq)

	return report.Trial{
		Milliseconds: seconds * 1000,
		Throughput:   report.Throughput(float64(t.Bytes), seconds),
		Bytes:        t.Bytes,
		PageFaults:   t.PageFaults,
	}
}

// Close logs completion and writes the report. With no completed trials it
// only logs a warning. Later calls return nil.
func (p *Profiler) Close() error {
	if p.closed {
		return nil
	}

	p.closed = true

	if p.running {
		p.logger.Warn("closing with a repetition in progress", slog.String("profiler", p.name))
	}

	if p.Repeats == 0 {
		p.logger.Warn("no repetitions recorded", slog.String("profiler", p.name))
		return nil
	}

	p.logger.Info("finished repetitions",
		slog.String("profiler", p.name),
		slog.Uint64("repeats", p.Repeats),
	)

	err := report.Write(p.out, p.format, p.Report())
	if err != nil {
		return fmt.Errorf("profiler %s: %w", p.name, err)
	}

	return nil
}
