// Package log provides structured logging handler construction for use with
// [log/slog].
//
// It supports three output formats: [FormatText] renders colorized lines for
// people watching a terminal, [FormatLogfmt] and [FormatJSON] are meant for
// machines. Severity levels are [LevelError], [LevelWarn], [LevelInfo], and
// [LevelDebug]. Use [NewHandler] to create a handler directly, or use
// [Config] with CLI flag integration via [github.com/spf13/pflag] and shell
// completion support via [github.com/spf13/cobra].
//
// Typical usage creates a [Config], registers flags, then builds a logger at
// startup and hands it to the profilers:
//
//	cfg := log.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	logger, err := cfg.NewLogger(os.Stderr)
//	session := block.New("import", block.WithLogger(logger))
package log
