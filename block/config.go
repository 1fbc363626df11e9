package block

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/blockprof/report"
)

// Flags holds CLI flag names for block profiling configuration, allowing
// callers to customize flag names while keeping sensible defaults via
// [NewConfig].
type Flags struct {
	Name     string
	Capacity string
	Format   string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Flags: f,
	}
}

// Config holds CLI flag values for a block profiling session.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewSession] to start a [Session].
type Config struct {
	Flags    Flags
	Name     string
	Format   string
	Capacity int
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Name:     "session-name",
		Capacity: "block-capacity",
		Format:   "report-format",
	}

	return f.NewConfig()
}

// RegisterFlags adds block profiling flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Name, c.Flags.Name, "blockprof", "profiling session name")
	flags.IntVar(&c.Capacity, c.Flags.Capacity, DefaultCapacity,
		"number of block slots, also the maximum nesting depth")
	flags.StringVar(&c.Format, c.Flags.Format, string(report.FormatText),
		fmt.Sprintf("report format, one of: %s", report.GetAllFormatStrings()))
}

// RegisterCompletions registers shell completions for block profiling flags
// on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(report.GetAllFormatStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{c.Flags.Name, c.Flags.Capacity} {
		regErr := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if regErr != nil {
			return fmt.Errorf("registering %s completion: %w", flag, regErr)
		}
	}

	return nil
}

// NewSession starts a [Session] that reports to w and logs to logger, using
// the name, capacity and format stored in c. Additional options are applied
// after the configured ones.
func (c *Config) NewSession(w io.Writer, logger *slog.Logger, opts ...Option) (*Session, error) {
	format, err := report.ParseFormat(c.Format)
	if err != nil {
		return nil, err
	}

	all := []Option{
		WithOutput(w),
		WithLogger(logger),
		WithFormat(format),
	}

	if c.Capacity > 0 {
		all = append(all, WithCapacity(c.Capacity))
	}

	return New(c.Name, append(all, opts...)...), nil
}
