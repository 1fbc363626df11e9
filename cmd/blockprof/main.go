// Package main provides the CLI entry point for blockprof, a tool that
// measures sample workloads with the block and repetition profilers.
//
// # Usage
//
//	blockprof run [flags] <file> [file2 ...]
//	blockprof repeat [flags] <file>
//	blockprof schema [block|repetition]
//	blockprof version
//
// Settings may also come from a YAML file passed with --config. Flags given
// on the command line take precedence over the file.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/blockprof/block"
	"go.jacobcolvin.com/blockprof/log"
	"go.jacobcolvin.com/blockprof/repetition"
)

// Sentinel errors returned by the commands.
var (
	ErrReadInput   = errors.New("read input")
	ErrWriteOutput = errors.New("write output")
	ErrConfigFile  = errors.New("config file")
)

func main() {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// app carries configuration shared by all subcommands.
type app struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger

	log        *log.Config
	block      *block.Config
	repetition *repetition.Config

	configFile string
	workload   string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdout:     stdout,
		stderr:     stderr,
		log:        log.NewConfig(),
		block:      block.NewConfig(),
		repetition: repetition.NewConfig(),
	}

	rootCmd := &cobra.Command{
		Use:   "blockprof",
		Short: "Measure nested code blocks and repeated trials",
		Long: `blockprof runs sample workloads under an instrumentation profiler. The run
command times nested blocks with exclusive and inclusive durations; the repeat
command times one workload many times and reports the first, fastest, slowest
and average trial including page faults.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	a.log.RegisterFlags(flags)
	flags.StringVar(&a.configFile, "config", "", "YAML file with default settings")

	completionErr := a.log.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(stderr, "register completions: %v\n", completionErr)
	}

	rootCmd.AddCommand(
		a.newRunCmd(),
		a.newRepeatCmd(),
		newSchemaCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// setup applies the config file and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if a.configFile != "" {
		fc, err := loadFileConfig(a.configFile)
		if err != nil {
			return err
		}

		a.apply(cmd, fc)
	}

	logger, err := a.log.NewLogger(a.stderr)
	if err != nil {
		return err
	}

	a.logger = logger

	return nil
}
