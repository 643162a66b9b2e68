package tabular

import (
	"strconv"
	"strings"
)

// Row maps a column header to its cell value.
type Row map[string]string

// Table is one sheet of tabular data.
type Table struct {
	// Name labels the table; for roster files it is the room label.
	Name string
	// Source is the path the table was read from.
	Source  string
	Headers []string
	Rows    []Row
}

// Values returns the row's cells in header order, skipping blank cells.
func (t Table) Values(row Row) []string {
	values := make([]string, 0, len(t.Headers))
	for _, header := range t.Headers {
		if v := strings.TrimSpace(row[header]); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// NewTable builds a table from a header line and raw records. Blank headers
// receive positional names, duplicate headers are suffixed, and records that
// contain no values are dropped.
func NewTable(name, source string, header []string, records [][]string) Table {
	headers := uniqueHeaders(header)
	rows := make([]Row, 0, len(records))
	for _, record := range records {
		row := make(Row, len(headers))
		empty := true
		for i, h := range headers {
			if i >= len(record) {
				break
			}
			value := strings.TrimSpace(record[i])
			if value != "" {
				empty = false
			}
			row[h] = value
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}
	return Table{Name: name, Source: source, Headers: headers, Rows: rows}
}

func uniqueHeaders(header []string) []string {
	seen := make(map[string]int, len(header))
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if h == "" {
			h = "column_" + strconv.Itoa(i+1)
		}
		if n, ok := seen[h]; ok {
			seen[h] = n + 1
			h = h + "_" + strconv.Itoa(n+1)
		} else {
			seen[h] = 1
		}
		out[i] = h
	}
	return out
}
