package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

// fileConfig is the layout of the --config YAML file.
//
//	log:
//	  level: debug
//	  format: logfmt
//	session: import
//	capacity: 32
//	repeats: 500
//	format: json
//	workload: scale
type fileConfig struct {
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Session  string `yaml:"session"`
	Format   string `yaml:"format"`
	Workload string `yaml:"workload"`
	Capacity int    `yaml:"capacity"`
	Repeats  uint64 `yaml:"repeats"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Config path from CLI flag is expected.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigFile, err)
	}

	var fc fileConfig

	err = yaml.UnmarshalWithOptions(data, &fc, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigFile, path, err)
	}

	return &fc, nil
}

// apply copies non-empty file values into the flag-bound configuration,
// skipping any flag the user set explicitly.
func (a *app) apply(cmd *cobra.Command, fc *fileConfig) {
	flags := cmd.Flags()

	set := func(name string, ok bool, assign func()) {
		if ok && !flags.Changed(name) {
			assign()
		}
	}

	set(a.log.Flags.Level, fc.Log.Level != "", func() { a.log.Level = fc.Log.Level })
	set(a.log.Flags.Format, fc.Log.Format != "", func() { a.log.Format = fc.Log.Format })
	set(a.block.Flags.Name, fc.Session != "", func() { a.block.Name = fc.Session })
	set(a.block.Flags.Capacity, fc.Capacity > 0, func() { a.block.Capacity = fc.Capacity })
	set(a.block.Flags.Format, fc.Format != "", func() {
		a.block.Format = fc.Format
		a.repetition.Format = fc.Format
	})
	set(a.repetition.Flags.Repeats, fc.Repeats > 0, func() { a.repetition.Repeats = fc.Repeats })
	set("workload", fc.Workload != "", func() { a.workload = fc.Workload })
}
