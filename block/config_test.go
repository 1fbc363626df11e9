package block_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/blockprof/block"
	"go.jacobcolvin.com/blockprof/clock"
	"go.jacobcolvin.com/blockprof/report"
)

func TestConfig_RegisterFlags_Defaults(t *testing.T) {
	t.Parallel()

	cfg := block.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	cfg.RegisterFlags(flags)

	err := flags.Parse([]string{})
	require.NoError(t, err)

	assert.Equal(t, "blockprof", cfg.Name)
	assert.Equal(t, block.DefaultCapacity, cfg.Capacity)
	assert.Equal(t, "text", cfg.Format)
}

func TestConfig_RegisterFlags_Parsing(t *testing.T) {
	t.Parallel()

	cfg := block.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	cfg.RegisterFlags(flags)

	err := flags.Parse([]string{
		"--session-name=import",
		"--block-capacity=16",
		"--report-format=json",
	})
	require.NoError(t, err)

	assert.Equal(t, "import", cfg.Name)
	assert.Equal(t, 16, cfg.Capacity)
	assert.Equal(t, "json", cfg.Format)
}

func TestConfig_CustomFlagNames(t *testing.T) {
	t.Parallel()

	cfg := block.Flags{
		Name:     "name",
		Capacity: "slots",
		Format:   "format",
	}.NewConfig()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	for _, name := range []string{"name", "slots", "format"} {
		require.NotNil(t, flags.Lookup(name), "flag %s should be registered", name)
	}
}

func TestConfig_RegisterCompletions(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		flag string
		want []string
	}{
		"report-format completions": {
			flag: "report-format",
			want: report.GetAllFormatStrings(),
		},
		"block-capacity completions": {
			flag: "block-capacity",
			want: nil,
		},
		"session-name completions": {
			flag: "session-name",
			want: nil,
		},
	}

	cfg := block.NewConfig()

	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	err := cfg.RegisterCompletions(cmd)
	require.NoError(t, err)

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			completionFn, ok := cmd.GetFlagCompletionFunc(tc.flag)
			require.True(t, ok)

			values, directive := completionFn(cmd, nil, "")
			assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
			assert.Equal(t, tc.want, values)
		})
	}
}

func TestConfig_NewSession(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		cfg := block.NewConfig()
		cfg.Name = "cfg"
		cfg.Capacity = 8
		cfg.Format = "yaml"

		var out bytes.Buffer

		s, err := cfg.NewSession(&out, slog.New(slog.DiscardHandler), block.WithClock(clock.NewManual(ghz)))
		require.NoError(t, err)

		assert.Equal(t, "cfg", s.Name())
		assert.Equal(t, 8, s.Capacity())

		s.Begin(1, "step")
		s.End()
		require.NoError(t, s.Close())

		assert.Contains(t, out.String(), "name: cfg")
		assert.Contains(t, out.String(), "label: step")
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()

		cfg := block.NewConfig()
		cfg.Format = "xml"

		s, err := cfg.NewSession(&bytes.Buffer{}, slog.New(slog.DiscardHandler))
		require.ErrorIs(t, err, report.ErrUnknownFormat)
		assert.Nil(t, s)
	})
}
