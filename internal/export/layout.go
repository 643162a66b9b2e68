package export

import (
	"strconv"

	"classcheck/internal/config"
	"classcheck/internal/matrix"
	"classcheck/internal/reconcile"
)

// Symbols are the cell renderings of each verdict.
type Symbols struct {
	Verified string
	Flagged  string
	Missing  string
}

// DefaultSymbols returns the symbols used when nothing is configured.
func DefaultSymbols() Symbols {
	return SymbolsFromConfig(config.Default().Export)
}

// SymbolsFromConfig reads the verdict symbols from the export section.
func SymbolsFromConfig(cfg config.Export) Symbols {
	return Symbols{Verified: cfg.VerifiedSymbol, Flagged: cfg.FlaggedSymbol, Missing: cfg.MissingSymbol}
}

// Symbol renders v.
func (s Symbols) Symbol(v reconcile.Verdict) string {
	switch v {
	case reconcile.Verified:
		return s.Verified
	case reconcile.Flagged:
		return s.Flagged
	default:
		return s.Missing
	}
}

// Header returns the column headers of a rendered room matrix.
func Header(m matrix.Matrix) []string {
	header := make([]string, 0, len(m.Activities)+3)
	header = append(header, "No.", "Name")
	header = append(header, m.Activities...)
	return append(header, "Submitted")
}

// Records renders the rows of a room matrix as strings in Header order.
func Records(m matrix.Matrix, symbols Symbols) [][]string {
	records := make([][]string, 0, len(m.Rows))
	for _, row := range m.Rows {
		record := make([]string, 0, len(row.Cells)+3)
		record = append(record, strconv.Itoa(row.StudentNumber), row.DisplayName)
		for _, v := range row.Cells {
			record = append(record, symbols.Symbol(v))
		}
		records = append(records, append(record, strconv.Itoa(row.SubmittedCount)))
	}
	return records
}
