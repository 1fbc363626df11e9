package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format represents the report output format.
type Format string

const (
	// FormatText outputs the human-readable console table.
	FormatText Format = "text"
	// FormatJSON outputs an indented JSON document.
	FormatJSON Format = "json"
	// FormatYAML outputs a YAML document.
	FormatYAML Format = "yaml"
)

// GiB is the number of bytes in one "GB" of reported throughput.
const GiB = 1024 * 1024 * 1024

var (
	// ErrUnknownFormat indicates an unrecognized report format string.
	ErrUnknownFormat = errors.New("unknown report format")
	// ErrWriteOutput indicates the report could not be written.
	ErrWriteOutput = errors.New("write report")
)

// Document is a report that can render itself as text.
type Document interface {
	WriteText(w io.Writer) error
}

// GetAllFormats returns all supported [Format] values.
func GetAllFormats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML}
}

// GetAllFormatStrings returns all supported format names.
func GetAllFormatStrings() []string {
	formats := GetAllFormats()
	out := make([]string, 0, len(formats))

	for _, f := range formats {
		out = append(out, string(f))
	}

	return out
}

// ParseFormat parses a report format string and returns the corresponding
// [Format].
func ParseFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	if slices.Contains(GetAllFormats(), f) {
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Write renders doc to w in the given format. An empty format is treated as
// [FormatText].
func Write(w io.Writer, f Format, doc Document) error {
	var err error

	switch f {
	case FormatText, "":
		err = doc.WriteText(w)

	case FormatJSON:
		var out []byte

		out, err = json.MarshalIndent(doc, "", "  ")
		if err == nil {
			out = append(out, '\n')
			_, err = w.Write(out)
		}

	case FormatYAML:
		var out []byte

		out, err = yaml.Marshal(doc)
		if err == nil {
			_, err = w.Write(out)
		}

	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

// Throughput returns bytes per second expressed in GiB/s. It returns 0 when
// seconds is not positive.
func Throughput(bytes, seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}

	return bytes / seconds / GiB
}

// Percent returns part as a percentage of total, or 0 when total is not
// positive.
func Percent(part, total float64) float64 {
	if total <= 0 {
		return 0
	}

	return part / total * 100
}
