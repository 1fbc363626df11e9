package repetition

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/blockprof/report"
)

// Flags holds CLI flag names for repetition profiling configuration.
type Flags struct {
	Repeats string
	Format  string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for a repetition profiler.
//
// Create instances with [NewConfig]. Use [Config.NewProfiler] to create a
// [Profiler].
type Config struct {
	Flags   Flags
	Format  string
	Repeats uint64
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Repeats: "repeats",
		Format:  "report-format",
	}

	return f.NewConfig()
}

// RegisterFlags adds repetition flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.Uint64VarP(&c.Repeats, c.Flags.Repeats, "n", DefaultRepeats, "number of trials to run")
	flags.StringVar(&c.Format, c.Flags.Format, string(report.FormatText),
		fmt.Sprintf("report format, one of: %s", report.GetAllFormatStrings()))
}

// RegisterCompletions registers shell completions for repetition flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(report.GetAllFormatStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Repeats,
		cobra.FixedCompletions(nil, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Repeats, err)
	}

	return nil
}

// NewProfiler creates a [Profiler] named name that reports to w and logs to
// logger.
func (c *Config) NewProfiler(name string, w io.Writer, logger *slog.Logger, opts ...Option) (*Profiler, error) {
	format, err := report.ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}

	all := []Option{
		WithOutput(w),
		WithLogger(logger),
		WithFormat(format),
	}

	return New(name, c.Repeats, append(all, opts...)...), nil
}
