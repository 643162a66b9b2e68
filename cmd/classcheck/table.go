package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"classcheck/internal/export"
	"classcheck/internal/matrix"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
	alignCenter
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment, footer []string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(toRow(headers, columns))
	for _, row := range rows {
		tw.AppendRow(toRow(row, columns))
	}
	if len(footer) > 0 {
		tw.AppendFooter(toRow(footer, columns))
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) {
			switch aligns[i] {
			case alignRight:
				align = text.AlignRight
			case alignCenter:
				align = text.AlignCenter
			}
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			AlignFooter: align,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func toRow(values []string, columns int) table.Row {
	r := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		if i < len(values) {
			r[i] = values[i]
		} else {
			r[i] = ""
		}
	}
	return r
}

// renderMatrix lays out one room as a table with a per-activity totals footer.
func renderMatrix(m matrix.Matrix, symbols export.Symbols, colorize bool) string {
	headers := export.Header(m)
	aligns := make([]columnAlignment, len(headers))
	aligns[0] = alignRight
	aligns[1] = alignLeft
	for i := 2; i < len(headers)-1; i++ {
		aligns[i] = alignCenter
	}
	aligns[len(headers)-1] = alignRight

	rows := make([][]string, 0, len(m.Rows))
	for _, r := range m.Rows {
		row := make([]string, 0, len(headers))
		row = append(row, strconv.Itoa(r.StudentNumber), r.DisplayName)
		for _, v := range r.Cells {
			row = append(row, verdictSymbol(symbols, v, colorize))
		}
		rows = append(rows, append(row, strconv.Itoa(r.SubmittedCount)))
	}

	footer := make([]string, 0, len(headers))
	footer = append(footer, "", "Total")
	total := 0
	for _, n := range m.Totals() {
		footer = append(footer, strconv.Itoa(n))
		total += n
	}
	footer = append(footer, strconv.Itoa(total))
	return renderTable(headers, rows, aligns, footer)
}
