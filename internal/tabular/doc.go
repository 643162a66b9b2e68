// Package tabular turns spreadsheet and CSV files into header-addressed rows.
//
// It is the boundary between uploaded files and the reconciliation core: a
// Table carries its ordered headers and rows mapping header to cell value,
// and a file that cannot be read as tabular data yields a *FileParseError so
// the batch runner can skip it without aborting.
package tabular
