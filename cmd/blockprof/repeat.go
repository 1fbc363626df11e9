package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/blockprof/workload"
)

const defaultWorkload = "checksum"

func (a *app) newRepeatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repeat [flags] <file>",
		Short: "Time one workload over many trials",
		Long: `Repeat reads a file once, then runs the selected workload over its bytes
--repeats times under the repetition profiler. The report lists the first,
fastest, slowest and average trial with throughput and page faults.

Progress is printed to stderr when it is a terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.repeat(args[0])
		},
	}

	a.repetition.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVarP(&a.workload, "workload", "w", defaultWorkload,
		fmt.Sprintf("workload to run, one of: %s", workload.Names()))

	err := a.repetition.RegisterCompletions(cmd)
	if err == nil {
		err = cmd.RegisterFlagCompletionFunc("workload",
			cobra.FixedCompletions(workload.Names(), cobra.ShellCompDirectiveNoFileComp))
	}

	if err != nil {
		fmt.Fprintf(a.stderr, "register completions: %v\n", err)
	}

	return cmd
}

func (a *app) repeat(path string) error {
	op, err := workload.Lookup(a.workload)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path) //nolint:gosec // Input path from CLI args is expected.
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	p, err := a.repetition.NewProfiler(a.workload, a.stdout, a.logger)
	if err != nil {
		return err
	}

	progress := newProgress(a.stderr, p.MaxRepeats)

	for !p.Done() {
		p.BeginRep()
		p.AddBytes(op(data))
		p.EndRep()

		progress.update(p.Repeats)
	}

	progress.done()

	err = p.Close()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

// progress draws a single-line trial counter. It is silent unless w is a
// terminal.
type progress struct {
	w     io.Writer
	total uint64
	step  uint64
	tty   bool
}

func newProgress(w io.Writer, total uint64) *progress {
	p := &progress{w: w, total: total, step: max(total/100, 1)}

	if f, ok := w.(*os.File); ok {
		p.tty = term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int.
	}

	return p
}

func (p *progress) update(n uint64) {
	if !p.tty || (n%p.step != 0 && n != p.total) {
		return
	}

	fmt.Fprintf(p.w, "\rtrial %d/%d", n, p.total)
}

func (p *progress) done() {
	if p.tty {
		fmt.Fprintln(p.w)
	}
}
