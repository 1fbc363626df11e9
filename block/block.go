package block

import (
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"

	"go.jacobcolvin.com/blockprof/clock"
	"go.jacobcolvin.com/blockprof/report"
)

// DefaultCapacity is the default number of block table slots. It also bounds
// the nesting depth of open blocks.
const DefaultCapacity = 64

// ID identifies a [Block] within a [Session]. ID 0 is reserved.
type ID int

var lastID atomic.Int64

// NextID returns a new process-wide unique ID, starting at 1. Call it once per
// call site, usually while initializing a package-level variable.
func NextID() ID {
	return ID(lastID.Add(1))
}

// Block holds the accumulated measurements of one instrumented region.
// Times are in counter ticks.
type Block struct {
	Label string
	File  string

	ID   ID
	Line int

	// Iterations counts how many times the block was opened.
	Iterations uint64
	// TimeEx is the time spent in the block, excluding nested blocks.
	TimeEx uint64
	// TimeInc is the time spent in the block, including nested blocks.
	TimeInc uint64
	// BytesProcessed is the number of bytes attributed to the block.
	BytesProcessed uint64

	// from is the tick at which the current exclusive slice began.
	from uint64
}

// Session is one block profiling run.
//
// Create instances with [New].
type Session struct {
	clock  clock.Source
	logger *slog.Logger
	out    io.Writer
	name   string
	format report.Format

	blocks []Block
	stack  []ID

	start uint64
	// stop is the tick at which Close ended the session.
	stop uint64
	// overflow counts begins dropped because the stack was full.
	overflow int
	ended    bool
}

// Option configures a [Session].
type Option func(*Session)

// WithCapacity sets the number of block table slots, which also bounds the
// nesting depth. Values less than 2 are clamped to 2.
func WithCapacity(n int) Option {
	return func(s *Session) {
		if n < 2 {
			n = 2
		}

		s.blocks = make([]Block, n)
		s.stack = make([]ID, 0, n)
	}
}

// WithClock sets the timestamp source. The default is [clock.Counter].
func WithClock(src clock.Source) Option {
	return func(s *Session) {
		s.clock = src
	}
}

// WithLogger sets the logger used for warnings and the completion message.
// The default is [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithOutput sets where [Session.Close] writes the report. The default is
// [os.Stdout].
func WithOutput(w io.Writer) Option {
	return func(s *Session) {
		s.out = w
	}
}

// WithFormat sets the report format. The default is [report.FormatText].
func WithFormat(f report.Format) Option {
	return func(s *Session) {
		s.format = f
	}
}

// New starts a profiling session named name.
func New(name string, opts ...Option) *Session {
	s := &Session{
		name:   name,
		clock:  clock.Counter{},
		logger: slog.Default(),
		out:    os.Stdout,
		format: report.FormatText,
	}

	WithCapacity(DefaultCapacity)(s)

	for _, opt := range opts {
		opt(s)
	}

	s.start = s.clock.Now()

	return s
}

// Name returns the session name.
func (s *Session) Name() string {
	if s == nil {
		return ""
	}

	return s.name
}

// Begin opens block id, recording the caller's file and line.
func (s *Session) Begin(id ID, label string) {
	if s == nil {
		return
	}

	_, file, line, _ := runtime.Caller(1)
	s.BeginBlock(id, label, file, line, 0)
}

// BeginBlock opens block id and attributes bytes to it. The label, file and
// line overwrite whatever an earlier Begin with the same id recorded.
//
// An id outside the table, or a begin beyond the maximum nesting depth, is
// logged and dropped. The matching [Session.End] is still expected and is
// absorbed without touching any block.
func (s *Session) BeginBlock(id ID, label, file string, line int, bytes uint64) {
	if s == nil {
		return
	}

	if s.ended {
		s.logger.Debug("begin after session closed",
			slog.String("session", s.name), slog.String("label", label))

		return
	}

	if len(s.stack) == cap(s.stack) {
		s.overflow++
		s.logger.Warn("block nesting too deep, dropping begin",
			slog.String("session", s.name),
			slog.String("label", label),
			slog.Int("max_depth", cap(s.stack)),
		)

		return
	}

	if id <= 0 || int(id) >= len(s.blocks) {
		// Keep the stack paired with the caller's End calls.
		s.stack = append(s.stack, 0)
		s.logger.Warn("block id out of range, dropping begin",
			slog.String("session", s.name),
			slog.String("label", label),
			slog.Int("id", int(id)),
			slog.Int("capacity", len(s.blocks)),
		)

		return
	}

	now := s.clock.Now()

	if parent := s.open(); parent != nil {
		parent.TimeEx += now - parent.from
		parent.TimeInc += now - parent.from
	}

	b := &s.blocks[id]
	b.ID = id
	b.from = now
	b.Label = label
	b.File = file
	b.Line = line
	b.BytesProcessed += bytes

	s.stack = append(s.stack, id)

	b.Iterations++
}

// AddBytes attributes bytes to the innermost open block. Bytes added while
// the innermost begin was dropped are discarded.
func (s *Session) AddBytes(bytes uint64) {
	if s == nil || s.ended {
		return
	}

	if len(s.stack) == 0 {
		s.logger.Warn("add bytes with no open block",
			slog.String("session", s.name), slog.Uint64("bytes", bytes))

		return
	}

	// Bytes for a dropped begin belong to no block.
	id := s.stack[len(s.stack)-1]
	if s.overflow > 0 || id == 0 {
		s.logger.Warn("add bytes to dropped block, discarding",
			slog.String("session", s.name), slog.Uint64("bytes", bytes))

		return
	}

	s.blocks[id].BytesProcessed += bytes
}

// End closes the most recently opened block that is still open.
//
// The closed block is charged with the time since its current slice began.
// Its parent resumes exclusive timing from now and absorbs the child's span
// into its inclusive time.
func (s *Session) End() {
	if s == nil || s.ended {
		return
	}

	if s.overflow > 0 {
		s.overflow--
		return
	}

	if len(s.stack) == 0 {
		s.logger.Warn("end with no open block", slog.String("session", s.name))
		return
	}

	now := s.clock.Now()

	id := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]

	if id == 0 {
		return
	}

	b := &s.blocks[id]
	b.TimeEx += now - b.from
	b.TimeInc += now - b.from

	if parent := s.open(); parent != nil {
		// For recursive blocks parent == b, so the child span reads as zero
		// after from is reset.
		parent.from = now
		parent.TimeInc += now - b.from
	}
}

// open returns the innermost open block, skipping placeholders for dropped
// begins, or nil when no block is open.
func (s *Session) open() *Block {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if id := s.stack[i]; id != 0 {
			return &s.blocks[id]
		}
	}

	return nil
}

// Depth returns the number of blocks currently open.
func (s *Session) Depth() int {
	if s == nil {
		return 0
	}

	return len(s.stack) + s.overflow
}

// Capacity returns the number of block table slots.
func (s *Session) Capacity() int {
	if s == nil {
		return 0
	}

	return len(s.blocks)
}

// Ended reports whether [Session.Close] has been called.
func (s *Session) Ended() bool {
	return s == nil || s.ended
}

// Blocks returns a copy of every block that was opened at least once,
// ordered by ID.
func (s *Session) Blocks() []Block {
	if s == nil {
		return nil
	}

	var out []Block

	for i := 1; i < len(s.blocks); i++ {
		if s.blocks[i].Iterations == 0 {
			continue
		}

		out = append(out, s.blocks[i])
	}

	return out
}

// Lookup returns a copy of block id and whether it was ever opened.
func (s *Session) Lookup(id ID) (Block, bool) {
	if s == nil || id <= 0 || int(id) >= len(s.blocks) {
		return Block{}, false
	}

	b := s.blocks[id]

	return b, b.Iterations > 0
}
