package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Load reads every table in path. CSV files yield one table named after the
// file; workbooks yield one table per non-empty sheet, named after the file
// when the workbook has a single sheet and after the sheet otherwise.
func Load(path string) ([]Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".tsv", ".txt":
		table, err := loadCSV(path, ext == ".tsv")
		if err != nil {
			return nil, err
		}
		return []Table{table}, nil
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return loadWorkbook(path)
	default:
		return nil, parseError(path, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext))
	}
}

// Supported reports whether Load has a reader for the file extension of path.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt", ".xlsx", ".xlsm", ".xltx", ".xltm":
		return true
	}
	return false
}

// Label derives the table label from a file path: the base name without its
// extension.
func Label(path string) string {
	base := filepath.Base(path)
	return strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
}

func loadCSV(path string, tabs bool) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, parseError(path, err)
	}
	defer file.Close()
	return readCSV(file, Label(path), path, tabs)
}

func readCSV(r io.Reader, name, source string, tabs bool) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	if tabs {
		reader.Comma = '\t'
	}

	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, parseError(source, err)
	}
	return fromRecords(name, source, records)
}

func loadWorkbook(path string) ([]Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, parseError(path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	tables := make([]Table, 0, len(sheets))
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, parseError(path, fmt.Errorf("sheet %q: %w", sheet, err))
		}
		name := sheet
		if len(sheets) == 1 {
			name = Label(path)
		}
		table, err := fromRecords(name, path, rows)
		if err != nil {
			if errors.Is(err, errNoHeader) {
				continue
			}
			return nil, err
		}
		tables = append(tables, table)
	}
	if len(tables) == 0 {
		return nil, parseError(path, errNoHeader)
	}
	return tables, nil
}

var errNoHeader = errors.New("no header row found")

// fromRecords treats the first non-blank record as the header line.
func fromRecords(name, source string, records [][]string) (Table, error) {
	for i, record := range records {
		if blank(record) {
			continue
		}
		return NewTable(name, source, record, records[i+1:]), nil
	}
	return Table{}, parseError(source, errNoHeader)
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
