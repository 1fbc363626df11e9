// Package report renders profiling results.
//
// A [Session] is the end-of-session summary of a block profiler, and
// [Repetitions] summarizes a repetition profiler. Both implement [Document]
// and can be written with [Write] in any [Format]:
//
//	err := report.Write(os.Stdout, report.FormatText, doc)
//
// [FormatText] is the tab-aligned console table.
// [FormatJSON] and [FormatYAML] emit the same data for machine consumption;
// their shape is described by [SessionSchema] and [RepetitionsSchema].
package report
