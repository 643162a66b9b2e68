package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"classcheck/internal/matrix"
	"classcheck/internal/reconcile"
	"classcheck/internal/textutil"
)

const defaultSheet = "Sheet1"

var (
	verifiedFill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"C6EFCE"}}
	flaggedFill  = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFEB9C"}}
)

// SheetNames assigns each room a unique worksheet name in room order.
// Worksheet names compare case-insensitively and the workbook's default
// sheet name is reserved.
func SheetNames(rooms []string) map[string]string {
	names := make(map[string]string, len(rooms))
	used := map[string]bool{strings.ToLower(defaultSheet): true}
	for _, room := range rooms {
		base := textutil.SanitizeSheetName(room)
		name := base
		for i := 2; used[strings.ToLower(name)]; i++ {
			suffix := "_" + strconv.Itoa(i)
			name = truncateRunes(base, 31-utf8.RuneCountInString(suffix)) + suffix
		}
		used[strings.ToLower(name)] = true
		names[room] = name
	}
	return names
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// WriteWorkbook writes every room of set as a worksheet of one workbook.
func WriteWorkbook(w io.Writer, set matrix.Set, symbols Symbols) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	styles, err := newCellStyles(f)
	if err != nil {
		return err
	}
	names := SheetNames(set.Rooms)
	for _, m := range set.Ordered() {
		if err := writeSheet(f, names[m.Room], m, symbols, styles); err != nil {
			return fmt.Errorf("room %s: %w", m.Room, err)
		}
	}
	if set.Len() > 0 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("remove default sheet: %w", err)
		}
		f.SetActiveSheet(0)
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type cellStyles map[reconcile.Verdict]int

func newCellStyles(f *excelize.File) (cellStyles, error) {
	styles := make(cellStyles, 2)
	for verdict, fill := range map[reconcile.Verdict]excelize.Fill{
		reconcile.Verified: verifiedFill,
		reconcile.Flagged:  flaggedFill,
	} {
		id, err := f.NewStyle(&excelize.Style{
			Fill:      fill,
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return nil, fmt.Errorf("create cell style: %w", err)
		}
		styles[verdict] = id
	}
	return styles, nil
}

func writeSheet(f *excelize.File, sheet string, m matrix.Matrix, symbols Symbols, styles cellStyles) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := setRow(f, sheet, 1, Header(m)); err != nil {
		return err
	}
	for i, record := range Records(m, symbols) {
		rowNum := i + 2
		if err := setRow(f, sheet, rowNum, record); err != nil {
			return err
		}
		for col, v := range m.Rows[i].Cells {
			style, ok := styles[v]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+3, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return fmt.Errorf("style %s: %w", cell, err)
			}
		}
	}
	if err := f.SetColWidth(sheet, "B", "B", 28); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}
