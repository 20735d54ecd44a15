package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"kwlens/pkg/contracts/domain"
)

const utf8BOM = "\ufeff"

// LoadOptions controls how a keyword sheet is read.
type LoadOptions struct {
	// Sheet selects the worksheet; empty means the first one.
	Sheet string
}

// ParseFile loads a keyword table from an .xlsx, .xlsm or .csv file.
func ParseFile(path string, opts LoadOptions) (domain.Table, error) {
	if err := checkExtension(path); err != nil {
		return domain.Table{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, &ParseError{Source: path, Err: err}
	}
	defer f.Close()

	return ParseReader(path, f, opts)
}

// ParseReader loads a keyword table from r, choosing the format from the
// extension of name. Used for uploads where only the client file name is known.
func ParseReader(name string, r io.Reader, opts LoadOptions) (domain.Table, error) {
	if err := checkExtension(name); err != nil {
		return domain.Table{}, err
	}
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return parseCSV(r, name)
	}
	return parseWorkbook(r, name, opts)
}

func checkExtension(name string) error {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".xlsx", ".xlsm", ".csv":
		return nil
	default:
		return &ParseError{Source: name, Err: fmt.Errorf("unsupported file type %q", ext)}
	}
}

// ParseWorkbook loads a keyword table from an Excel workbook. The first row
// of the sheet is the header.
func ParseWorkbook(r io.Reader, opts LoadOptions) (domain.Table, error) {
	return parseWorkbook(r, "", opts)
}

// ParseCSV loads a keyword table from CSV text. A leading UTF-8 BOM is ignored.
func ParseCSV(r io.Reader, opts LoadOptions) (domain.Table, error) {
	return parseCSV(r, "")
}

func parseWorkbook(r io.Reader, source string, opts LoadOptions) (domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return domain.Table{}, &ParseError{Source: source, Err: err}
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return domain.Table{}, &ParseError{Source: source, Err: errors.New("workbook has no sheets")}
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return domain.Table{}, &ParseError{Source: source, Err: fmt.Errorf("sheet %q: %w", sheet, err)}
	}

	slog.Debug("read keyword sheet",
		slog.String("source", source),
		slog.String("sheet", sheet),
		slog.Int("rows", len(rows)))

	return buildTable(rows)
}

func parseCSV(r io.Reader, source string) (domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return domain.Table{}, &ParseError{Source: source, Err: err}
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], utf8BOM)
	}

	slog.Debug("read keyword csv",
		slog.String("source", source),
		slog.Int("rows", len(records)))

	return buildTable(records)
}

// buildTable turns raw records into a table. The first record is the header.
// Blank rows are skipped and short rows are padded with empty cells.
func buildTable(records [][]string) (domain.Table, error) {
	var columns []string
	if len(records) > 0 {
		columns = make([]string, len(records[0]))
		for i, h := range records[0] {
			columns[i] = strings.TrimSpace(h)
		}
	}

	if err := ValidateColumns(columns, RequiredColumns()); err != nil {
		return domain.Table{}, err
	}

	table := domain.Table{Columns: columns, Rows: make([]domain.KeywordRow, 0, len(records))}
	if len(records) < 2 {
		return table, nil
	}

	for _, record := range records[1:] {
		if isBlankRecord(record) {
			continue
		}
		table.Rows = append(table.Rows, buildRow(columns, record))
	}
	return table, nil
}

func buildRow(columns, record []string) domain.KeywordRow {
	cells := make(map[string]string, len(columns))
	derived := make(map[string]string)
	for i, c := range columns {
		var v string
		if i < len(record) {
			v = record[i]
		}
		if domain.IsDerivedColumn(c) {
			derived[c] = v
			continue
		}
		cells[c] = v
	}

	row := domain.KeywordRow{
		Keyword:    cells[domain.ColumnKeyword],
		AppName:    cells[domain.ColumnAppName],
		Subtitle:   cells[domain.ColumnSubtitle],
		RankStatus: cells[domain.ColumnRankStatus],
		Cells:      cells,
	}
	row.Volume, row.HasVolume = parseVolume(cells[domain.ColumnVolume])

	// Columns from an earlier export are read back as-is.
	if n, ok := parseCount(derived[domain.ColumnOccurrence]); ok {
		row.Occurrence = &n
	}
	if v := derived[domain.ColumnMissingTitleSubtitle]; v != "" {
		row.MissingFromTitleSubtitle = &v
	}
	if v := derived[domain.ColumnMissingFromInput]; v != "" {
		row.MissingFromInput = &v
	}
	if n, ok := parseCount(derived[domain.ColumnTextInKeyword]); ok {
		row.TextInKeyword = n
	}
	return row
}

// parseVolume parses a numeric cell, accepting thousands separators.
func parseVolume(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseCount(s string) (int, bool) {
	v, ok := parseVolume(s)
	if !ok {
		return 0, false
	}
	return int(v), true
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
