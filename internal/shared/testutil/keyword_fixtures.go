package testutil

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// SheetFixture describes a keyword ranking sheet for tests.
// Rows hold raw cell values; nil leaves the cell blank.
type SheetFixture struct {
	Sheet   string
	Columns []string
	Rows    [][]interface{}
}

// KeywordSheet returns a small ranking sheet with every required column,
// one extra source column and a row without a volume.
func KeywordSheet() *SheetFixture {
	return &SheetFixture{
		Sheet:   "Sheet1",
		Columns: []string{"Keyword", "App Name", "Subtitle", "Volume", "Rank Status", "Difficulty"},
		Rows: [][]interface{}{
			{"photo editor", "Snap Photo Editor", "Edit pictures fast", 50, "ranked", 41},
			{"video maker", "Clip Studio", "Make video clips", 80, "unranked", 63},
			{"collage", "Snap Photo Editor", "Edit pictures fast", nil, "ranked", 12},
			{"photo collage maker", "Pic Grid", "Collage and photo grid", 80, "not ranked", 55},
			{"video maker", "Reel Maker", "Video editor for reels", 30, "unranked", 70},
		},
	}
}

// WithoutColumn returns a copy of the fixture with the named column removed.
func (f *SheetFixture) WithoutColumn(name string) *SheetFixture {
	idx := -1
	for i, c := range f.Columns {
		if c == name {
			idx = i
		}
	}
	if idx < 0 {
		return f
	}

	out := &SheetFixture{Sheet: f.Sheet}
	out.Columns = append(append([]string{}, f.Columns[:idx]...), f.Columns[idx+1:]...)
	for _, row := range f.Rows {
		out.Rows = append(out.Rows, append(append([]interface{}{}, row[:idx]...), row[idx+1:]...))
	}
	return out
}

// WorkbookBytes renders the fixture as an xlsx workbook.
func (f *SheetFixture) WorkbookBytes(t *testing.T) []byte {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()

	sheet := f.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if sheet != "Sheet1" {
		if _, err := wb.NewSheet(sheet); err != nil {
			t.Fatalf("create sheet: %v", err)
		}
		if err := wb.DeleteSheet("Sheet1"); err != nil {
			t.Fatalf("delete default sheet: %v", err)
		}
	}

	header := make([]interface{}, len(f.Columns))
	for i, c := range f.Columns {
		header[i] = c
	}
	if err := wb.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for i, row := range f.Rows {
		values := row
		if err := wb.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &values); err != nil {
			t.Fatalf("write row %d: %v", i, err)
		}
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// CSVBytes renders the fixture as CSV text.
func (f *SheetFixture) CSVBytes(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(f.Columns); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for _, row := range f.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			if v != nil {
				record[i] = fmt.Sprint(v)
			}
		}
		if err := w.Write(record); err != nil {
			t.Fatalf("write record: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush csv: %v", err)
	}
	return buf.Bytes()
}

// WriteWorkbook stores the fixture as an xlsx file under t.TempDir and
// returns its path.
func (f *SheetFixture) WriteWorkbook(t *testing.T, name string) string {
	t.Helper()
	return writeTemp(t, name, f.WorkbookBytes(t))
}

// WriteCSV stores the fixture as a CSV file under t.TempDir and returns its path.
func (f *SheetFixture) WriteCSV(t *testing.T, name string) string {
	t.Helper()
	return writeTemp(t, name, f.CSVBytes(t))
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
