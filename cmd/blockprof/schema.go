package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"

	"go.jacobcolvin.com/blockprof/report"
	"go.jacobcolvin.com/blockprof/version"
)

// ErrUnknownSchema indicates an unrecognized schema name.
var ErrUnknownSchema = errors.New("unknown schema")

var schemas = map[string]func() (*jsonschema.Schema, error){
	"block":      report.SessionSchema,
	"repetition": report.RepetitionsSchema,
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "schema [block|repetition]",
		Short:     "Print the JSON Schema of a structured report",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"block", "repetition"},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "block"
			if len(args) > 0 {
				name = args[0]
			}

			return writeSchema(cmd.OutOrStdout(), name)
		},
	}
}

func writeSchema(w io.Writer, name string) error {
	gen, ok := schemas[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}

	schema, err := gen()
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	out = append(out, '\n')

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}
