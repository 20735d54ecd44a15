package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"kwlens/pkg/contracts/domain"
)

// Sheet names of an xlsx export
const (
	SheetKeywords = "Keywords"
	SheetSummary  = "Summary"
)

// XLSXExporter exports the processed table and its summaries as a workbook
type XLSXExporter struct{}

// NewXLSXExporter creates a new workbook exporter
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Export writes the table to the Keywords sheet and the three summaries to
// the Summary sheet.
func (e *XLSXExporter) Export(w io.Writer, result *domain.AnalysisResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetKeywords); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeKeywordSheet(f, headerStyle, result.Table); err != nil {
		return err
	}
	if err := writeSummarySheet(f, headerStyle, result); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeKeywordSheet(f *excelize.File, headerStyle int, t domain.Table) error {
	sw, err := f.NewStreamWriter(SheetKeywords)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}

	columns := domain.OutputColumns(t.Columns)
	if err := sw.SetColWidth(1, len(columns), 18); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: c}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range t.Rows {
		values := make([]interface{}, len(columns))
		for j, c := range columns {
			values[j] = cellValue(row, c)
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush keyword sheet: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, headerStyle int, result *domain.AnalysisResult) error {
	sw, err := f.NewStreamWriter(SheetSummary)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}
	if err := sw.SetColWidth(1, 1, 40); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	line := 1
	next := func(values ...interface{}) error {
		cell, _ := excelize.CoordinatesToCellName(1, line)
		line++
		return sw.SetRow(cell, values)
	}
	section := func(title string, entries [][2]interface{}) error {
		if err := next(excelize.Cell{StyleID: headerStyle, Value: title}, excelize.Cell{StyleID: headerStyle, Value: "Count"}); err != nil {
			return err
		}
		for _, e := range entries {
			if err := next(e[0], e[1]); err != nil {
				return err
			}
		}
		line++
		return nil
	}

	if err := section("Most Common Words in Keyword", wordEntries(result.TopKeywordWords)); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if err := section("Most Common Words in App Name and Subtitle", wordEntries(result.TopAppSubtitleWords)); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	unranked := make([][2]interface{}, len(result.TopUnrankedKeywords))
	for i, kc := range result.TopUnrankedKeywords {
		unranked[i] = [2]interface{}{kc.Keyword, kc.Count}
	}
	if err := section("Top Unranked Keywords", unranked); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if err := next("Ranked Rows", result.RankedCount); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if err := next("Unranked Rows", result.UnrankedCount); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush summary sheet: %w", err)
	}
	return nil
}

func wordEntries(words []domain.WordCount) [][2]interface{} {
	entries := make([][2]interface{}, len(words))
	for i, wc := range words {
		entries[i] = [2]interface{}{wc.Word, wc.Count}
	}
	return entries
}
