package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/blockprof/report"
	"go.jacobcolvin.com/blockprof/stringtest"
)

func sampleSession() report.Session {
	return report.Session{
		Name:         "demo",
		Counter:      "manual",
		Frequency:    1_000_000_000,
		TotalSeconds: 0.015,
		Blocks: []report.Block{
			{
				ID:               1,
				Label:            "outer",
				Iterations:       1,
				ExclusiveSeconds: 0.005,
				ExclusivePercent: 33.333333,
				InclusiveSeconds: 0.015,
				InclusivePercent: 100,
			},
			{
				ID:               2,
				Label:            "inner",
				Iterations:       3,
				ExclusiveSeconds: 0.01,
				ExclusivePercent: 66.666667,
				InclusiveSeconds: 0.01,
				InclusivePercent: 66.666667,
				BytesProcessed:   report.GiB / 100,
				Throughput:       1,
			},
		},
	}
}

func TestSessionWriteText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := sampleSession().WriteText(&buf)
	require.NoError(t, err)

	want := stringtest.JoinLF(
		" Name[n]                  \t| Time (Ex)                 \t| Time (Inc)                \t| Bandwidth   ",
		"---------------------------------------------------------------------------------------------------------------",
		" outer                [1] \t| 0.00500 secs\t(33.33%) \t| 0.01500 secs\t(100.00%) \t|",
		" inner                [3] \t| 0.01000 secs\t(66.67%) \t| 0.01000 secs\t(66.67%) \t| 1.000 GB/s",
	)
	assert.Equal(t, want, buf.String())
}

func TestRepetitionsWriteText(t *testing.T) {
	t.Parallel()

	r := report.Repetitions{
		Name:       "sum",
		Repeats:    3,
		MaxRepeats: 3,
		Initial:    report.Trial{Milliseconds: 3, Throughput: 0.5, PageFaults: 4},
		Fastest:    report.Trial{Milliseconds: 1, Throughput: 1.5, PageFaults: 0},
		Slowest:    report.Trial{Milliseconds: 3, Throughput: 0.5, PageFaults: 4},
		Average:    report.Average{Milliseconds: 2, Throughput: 0.75, PageFaults: 1.3333},
	}

	var buf bytes.Buffer

	require.NoError(t, r.WriteText(&buf))

	want := stringtest.JoinLF(
		"\t> Initial: \t3.000 ms\t0.500 GB/s\t4 pf",
		"\t> Fastest: \t1.000 ms\t1.500 GB/s\t0 pf",
		"\t> Slowest: \t3.000 ms\t0.500 GB/s\t4 pf",
		"\t> Average: \t2.000 ms\t0.750 GB/s\t1.33 pf",
	)
	assert.Equal(t, want, buf.String())
}

func TestWrite(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		checkFunc func(*testing.T, []byte)
		format    report.Format
	}{
		"text": {
			format: report.FormatText,
			checkFunc: func(t *testing.T, out []byte) {
				t.Helper()

				lines := stringtest.Lines(string(out))
				require.Len(t, lines, 4)
				assert.Equal(t, []string{"outer", "[1]"}, strings.Fields(stringtest.Columns(lines[2])[0]))
			},
		},
		"empty format is text": {
			format: "",
			checkFunc: func(t *testing.T, out []byte) {
				t.Helper()

				assert.Contains(t, string(out), "Name[n]")
			},
		},
		"json": {
			format: report.FormatJSON,
			checkFunc: func(t *testing.T, out []byte) {
				t.Helper()

				var got report.Session

				require.NoError(t, json.Unmarshal(out, &got))
				assert.Equal(t, "demo", got.Name)
				require.Len(t, got.Blocks, 2)
				assert.Equal(t, "inner", got.Blocks[1].Label)
				assert.Equal(t, uint64(3), got.Blocks[1].Iterations)
			},
		},
		"yaml": {
			format: report.FormatYAML,
			checkFunc: func(t *testing.T, out []byte) {
				t.Helper()

				var got map[string]any

				require.NoError(t, yaml.Unmarshal(out, &got))
				assert.Equal(t, "demo", got["name"])
				assert.Len(t, got["blocks"], 2)
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			err := report.Write(&buf, tc.format, sampleSession())
			require.NoError(t, err)

			tc.checkFunc(t, buf.Bytes())
		})
	}
}

func TestWriteErrors(t *testing.T) {
	t.Parallel()

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		err := report.Write(&buf, "xml", sampleSession())
		require.ErrorIs(t, err, report.ErrUnknownFormat)
		assert.Empty(t, buf.Bytes())
	})

	t.Run("failing writer", func(t *testing.T) {
		t.Parallel()

		err := report.Write(failWriter{}, report.FormatJSON, sampleSession())
		require.ErrorIs(t, err, report.ErrWriteOutput)
	})
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expected    report.Format
		expectError bool
	}{
		"text":             {input: "text", expected: report.FormatText},
		"json":             {input: "json", expected: report.FormatJSON},
		"yaml":             {input: "yaml", expected: report.FormatYAML},
		"case insensitive": {input: "YAML", expected: report.FormatYAML},
		"unknown":          {input: "csv", expectError: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := report.ParseFormat(tc.input)
			if tc.expectError {
				require.ErrorIs(t, err, report.ErrUnknownFormat)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	assert.Equal(t, []string{"text", "json", "yaml"}, report.GetAllFormatStrings())
}

func TestThroughputAndPercent(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.0, report.Throughput(2*report.GiB, 1), 1e-12)
	assert.InDelta(t, 4.0, report.Throughput(report.GiB, 0.25), 1e-12)
	assert.Zero(t, report.Throughput(report.GiB, 0))

	assert.InDelta(t, 25.0, report.Percent(1, 4), 1e-12)
	assert.Zero(t, report.Percent(1, 0))
}

func TestSchemas(t *testing.T) {
	t.Parallel()

	s, err := report.SessionSchema()
	require.NoError(t, err)
	assert.Equal(t, "block profiling session report", s.Title)
	assert.Contains(t, s.Properties, "blocks")
	assert.Contains(t, s.Properties, "totalSeconds")

	r, err := report.RepetitionsSchema()
	require.NoError(t, err)
	assert.Contains(t, r.Properties, "fastest")
	assert.Contains(t, r.Properties, "average")
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}
