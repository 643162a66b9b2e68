// Package batch runs one reconciliation batch end to end.
//
// A Runner loads roster and submission files in parallel, isolates files
// that fail to parse, assembles the roster in input order, extracts claims,
// reconciles them and lays the verdicts out as completion matrices. Every run
// carries a run id that is attached to its log lines and to the Report.
//
// Failures are classified with the sentinel markers in errors.go so callers
// can tell configuration problems (an empty roster) from bad input files.
package batch
