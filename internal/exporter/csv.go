package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"kwlens/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter exports the processed table as CSV
type CSVWriter struct {
	// BOMPrefix adds a UTF-8 BOM so Excel detects the encoding
	BOMPrefix bool
}

// NewCSVWriter creates a CSV writer that prefixes its output with a BOM
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{BOMPrefix: true}
}

// Export writes the result's table
func (w *CSVWriter) Export(out io.Writer, result *domain.AnalysisResult) error {
	return w.WriteTable(out, result.Table)
}

// WriteTable writes the non-derived source columns followed by the derived
// columns. Absent values are written as empty fields.
func (w *CSVWriter) WriteTable(out io.Writer, t domain.Table) error {
	if w.BOMPrefix {
		if _, err := out.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	columns := domain.OutputColumns(t.Columns)
	writer := csv.NewWriter(out)

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	record := make([]string, len(columns))
	for i, row := range t.Rows {
		for j, c := range columns {
			record[j] = cellText(row, c)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
