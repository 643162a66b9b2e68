// Package export writes completion matrices to disk.
//
// Supported formats are JSON (one document per run), CSV (one file per room)
// and XLSX (one workbook, one worksheet per room). Writes into the export
// directory are serialized with an advisory file lock so concurrent runs do
// not interleave their output, and every file is written to a temporary name
// and renamed into place.
package export
