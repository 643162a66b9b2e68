package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"classcheck/internal/config"
	"classcheck/internal/logging"
	"classcheck/internal/matrix"
	"classcheck/internal/reconcile"
)

func testSet() matrix.Set {
	acts := []string{"1.1", "1.2"}
	rooms := []matrix.Matrix{
		{
			Room:       "ม.1/1",
			Activities: acts,
			Rows: []matrix.Row{
				{StudentNumber: 5, DisplayName: "สมชาย ใจดี", Cells: []reconcile.Verdict{reconcile.Verified, reconcile.Flagged}, SubmittedCount: 2},
				{StudentNumber: 6, DisplayName: "สมหญิง รักเรียน", Cells: []reconcile.Verdict{reconcile.NotSubmitted, reconcile.NotSubmitted}},
			},
		},
		{
			Room:       "ม.1/2",
			Activities: acts,
			Rows: []matrix.Row{
				{StudentNumber: 1, DisplayName: "อนันต์ มีสุข", Cells: []reconcile.Verdict{reconcile.NotSubmitted, reconcile.Verified}, SubmittedCount: 1},
			},
		},
	}
	set := matrix.Set{Matrices: map[string]matrix.Matrix{}}
	for _, m := range rooms {
		set.Rooms = append(set.Rooms, m.Room)
		set.Matrices[m.Room] = m
	}
	return set
}

func TestRecordsUseSymbols(t *testing.T) {
	m, _ := testSet().Get("ม.1/1")
	want := [][]string{
		{"5", "สมชาย ใจดี", "✓", "?", "2"},
		{"6", "สมหญิง รักเรียน", "-", "-", "0"},
	}
	if diff := cmp.Diff(want, Records(m, DefaultSymbols())); diff != "" {
		t.Fatalf("records (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"No.", "Name", "1.1", "1.2", "Submitted"}, Header(m)); diff != "" {
		t.Fatalf("header (-want +got):\n%s", diff)
	}
}

func TestWriteCSV(t *testing.T) {
	m, _ := testSet().Get("ม.1/2")
	var buf bytes.Buffer
	if err := WriteCSV(&buf, m, Symbols{Verified: "Y", Flagged: "F", Missing: "N"}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	body, ok := strings.CutPrefix(buf.String(), "\ufeff")
	if !ok {
		t.Fatal("csv lacks byte order mark")
	}
	records, err := csv.NewReader(strings.NewReader(body)).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	want := [][]string{
		{"No.", "Name", "1.1", "1.2", "Submitted"},
		{"1", "อนันต์ มีสุข", "N", "Y", "1"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("csv (-want +got):\n%s", diff)
	}
}

func TestWriteJSONUsesVerdictNames(t *testing.T) {
	doc := NewDocument("run-1", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), testSet())
	var buf bytes.Buffer
	if err := WriteJSON(&buf, doc); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var decoded struct {
		RunID string `json:"run_id"`
		Rooms []struct {
			Room string `json:"room"`
			Rows []struct {
				Cells []string `json:"cells"`
			} `json:"rows"`
		} `json:"rooms"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.RunID != "run-1" || len(decoded.Rooms) != 2 || decoded.Rooms[0].Room != "ม.1/1" {
		t.Fatalf("decoded = %+v", decoded)
	}
	if diff := cmp.Diff([]string{"verified", "flagged"}, decoded.Rooms[0].Rows[0].Cells); diff != "" {
		t.Fatalf("cells (-want +got):\n%s", diff)
	}
}

func TestSheetNamesAreUnique(t *testing.T) {
	long := strings.Repeat("ห", 40)
	names := SheetNames([]string{"ม.1/1", "ม.1:1", "Sheet1", long, long + "x"})
	if names["ม.1/1"] != "ม.1-1" || names["ม.1:1"] != "ม.1-1_2" {
		t.Fatalf("names = %v", names)
	}
	if names["Sheet1"] != "Sheet1_2" {
		t.Fatalf("default sheet name not reserved: %v", names)
	}
	if got := []rune(names[long+"x"]); len(got) != 31 || !strings.HasSuffix(string(got), "_2") {
		t.Fatalf("truncated duplicate = %q", names[long+"x"])
	}
}

func TestCSVFileNamesNeverCollide(t *testing.T) {
	names := CSVFileNames([]string{"a/b", "a-b", "a-b_2", "A-B"})
	want := map[string]string{
		"a/b":   "a-b.csv",
		"a-b":   "a-b_2.csv",
		"a-b_2": "a-b_2_2.csv",
		"A-B":   "A-B_3.csv",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
}

func TestExportCSVKeepsEveryRoom(t *testing.T) {
	dir := t.TempDir()
	set := matrix.Set{Matrices: map[string]matrix.Matrix{}}
	for i, room := range []string{"a/b", "a-b", "a-b_2"} {
		set.Rooms = append(set.Rooms, room)
		set.Matrices[room] = matrix.Matrix{
			Room:       room,
			Activities: []string{"1.1"},
			Rows: []matrix.Row{
				{StudentNumber: i + 1, DisplayName: room, Cells: []reconcile.Verdict{reconcile.Verified}, SubmittedCount: 1},
			},
		}
	}

	paths, err := NewWriter(dir, DefaultSymbols(), nil).Export(context.Background(), config.ExportFormatCSV, "run-1", set)
	if err != nil {
		t.Fatalf("csv export: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("paths = %v", paths)
	}
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if !strings.Contains(string(data), set.Rooms[i]) {
			t.Fatalf("%s does not hold room %q:\n%s", path, set.Rooms[i], data)
		}
	}
}

func TestExportFormats(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, DefaultSymbols(), logging.NewNop())
	ctx := context.Background()

	paths, err := w.Export(ctx, config.ExportFormatCSV, "run-1", testSet())
	if err != nil {
		t.Fatalf("csv export: %v", err)
	}
	want := []string{filepath.Join(dir, "ม.1-1.csv"), filepath.Join(dir, "ม.1-2.csv")}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("csv paths (-want +got):\n%s", diff)
	}

	paths, err = w.Export(ctx, config.ExportFormatJSON, "run-1", testSet())
	if err != nil || len(paths) != 1 {
		t.Fatalf("json export: %v %v", paths, err)
	}
	if _, err := os.Stat(paths[0]); err != nil {
		t.Fatalf("json file: %v", err)
	}

	paths, err = w.Export(ctx, config.ExportFormatXLSX, "run-1", testSet())
	if err != nil || len(paths) != 1 {
		t.Fatalf("xlsx export: %v %v", paths, err)
	}
	f, err := excelize.OpenFile(paths[0])
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() { _ = f.Close() }()
	if diff := cmp.Diff([]string{"ม.1-1", "ม.1-2"}, f.GetSheetList()); diff != "" {
		t.Fatalf("sheets (-want +got):\n%s", diff)
	}
	rows, err := f.GetRows("ม.1-1")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if diff := cmp.Diff([]string{"5", "สมชาย ใจดี", "✓", "?", "2"}, rows[1]); diff != "" {
		t.Fatalf("row (-want +got):\n%s", diff)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestExportRejectsTableFormat(t *testing.T) {
	w := NewWriter(t.TempDir(), DefaultSymbols(), nil)
	if _, err := w.Export(context.Background(), config.ExportFormatTable, "", testSet()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v", err)
	}
}

func TestExportHonoursLock(t *testing.T) {
	dir := t.TempDir()
	held := flock.New(filepath.Join(dir, lockFileName))
	if err := held.Lock(); err != nil {
		t.Fatalf("lock: %v", err)
	}
	defer func() { _ = held.Unlock() }()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	w := NewWriter(dir, DefaultSymbols(), nil)
	if _, err := w.Export(ctx, config.ExportFormatJSON, "run-1", testSet()); err == nil {
		t.Fatal("expected export to fail while the directory is locked")
	}
}
