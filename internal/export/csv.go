package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"classcheck/internal/matrix"
	"classcheck/internal/textutil"
)

// utf8BOM lets spreadsheet applications detect UTF-8 for Thai names.
const utf8BOM = "\ufeff"

// WriteCSV writes one room matrix as CSV.
func WriteCSV(w io.Writer, m matrix.Matrix, symbols Symbols) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(m)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(Records(m, symbols)); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

// CSVFileNames maps each room to a unique file name. Names are compared
// case-insensitively so exports survive case-folding file systems.
func CSVFileNames(rooms []string) map[string]string {
	names := make(map[string]string, len(rooms))
	used := make(map[string]bool, len(rooms))
	for _, room := range rooms {
		base := textutil.SanitizeFileName(room)
		name := base
		for i := 2; used[strings.ToLower(name)]; i++ {
			name = base + "_" + strconv.Itoa(i)
		}
		used[strings.ToLower(name)] = true
		names[room] = name + csvFileSuffix
	}
	return names
}
