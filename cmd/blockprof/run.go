package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/blockprof/block"
	"go.jacobcolvin.com/blockprof/workload"
)

var (
	idFile = block.NextID()
	idRead = block.NextID()

	// One block per workload, assigned in [workload.Names] order.
	workloadIDs = func() map[string]block.ID {
		ids := map[string]block.ID{}
		for _, name := range workload.Names() {
			ids[name] = block.NextID()
		}

		return ids
	}()
)

func (a *app) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] <file> [file2 ...]",
		Short: "Profile every workload over the given files",
		Long: `Run reads each file inside a block profiling session and passes its bytes
through every workload. Each file gets an outer "file" block with nested
"read" and per-workload blocks, and the session report is written to stdout
once all files are processed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.run(args)
		},
	}

	a.block.RegisterFlags(cmd.Flags())

	err := a.block.RegisterCompletions(cmd)
	if err != nil {
		fmt.Fprintf(a.stderr, "register completions: %v\n", err)
	}

	return cmd
}

func (a *app) run(paths []string) error {
	s, err := a.block.NewSession(a.stdout, a.logger)
	if err != nil {
		return err
	}

	for _, path := range paths {
		err = profileFile(s, path)
		if err != nil {
			break
		}
	}

	closeErr := s.Close()
	if err != nil {
		return err
	}

	if closeErr != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, closeErr)
	}

	return nil
}

func profileFile(s *block.Session, path string) error {
	defer s.Scope(idFile, "file").End()

	var (
		data []byte
		err  error
	)

	s.Time(idRead, "read", func() {
		data, err = os.ReadFile(path) //nolint:gosec // Input path from CLI args is expected.
		s.AddBytes(uint64(len(data)))
	})

	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrReadInput, filepath.Base(path), err)
	}

	for _, name := range workload.Names() {
		op, lookupErr := workload.Lookup(name)
		if lookupErr != nil {
			return lookupErr
		}

		s.Time(workloadIDs[name], name, func() {
			s.AddBytes(op(data))
		})
	}

	return nil
}
