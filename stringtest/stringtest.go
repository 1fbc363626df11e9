// Package stringtest holds helpers for asserting on rendered report text.
package stringtest

import "strings"

// JoinLF joins lines with LF line endings and terminates the result with a
// final LF, matching how reports end every row.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"row1",
//		"row2",
//	) // -> "row1\nrow2\n"
func JoinLF(lines ...string) string {
	var sb strings.Builder
	for _, s := range lines {
		sb.WriteString(s)
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Lines splits text into rows, dropping the trailing empty row left by a
// final LF.
func Lines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}

	return strings.Split(text, "\n")
}

// Columns splits a table row on its "|" separators and trims surrounding
// whitespace from each cell.
//
// Example:
//
//	stringtest.Columns(" a [1] \t| 0.5 secs \t|") // -> ["a [1]", "0.5 secs", ""]
func Columns(row string) []string {
	cells := strings.Split(row, "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}

	return cells
}
