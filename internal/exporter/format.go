package exporter

import (
	"fmt"
	"strconv"
	"strings"

	"kwlens/pkg/contracts/domain"
)

// Format identifies an export file format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat converts a user-supplied name to a Format. Names are case
// insensitive and may carry a leading dot.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")) {
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// formatFloat formats a volume without trailing zeros
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatInt formats a count for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// cellValue returns the typed value written to a spreadsheet cell.
// nil leaves the cell empty.
func cellValue(row domain.KeywordRow, column string) interface{} {
	switch column {
	case domain.ColumnVolume:
		if row.HasVolume {
			return row.Volume
		}
	case domain.ColumnOccurrence:
		if row.Occurrence != nil {
			return *row.Occurrence
		}
		return nil
	case domain.ColumnMissingTitleSubtitle:
		if row.MissingFromTitleSubtitle != nil {
			return *row.MissingFromTitleSubtitle
		}
		return nil
	case domain.ColumnMissingFromInput:
		if row.MissingFromInput != nil {
			return *row.MissingFromInput
		}
		return nil
	case domain.ColumnTextInKeyword:
		return row.TextInKeyword
	}

	if v := row.Value(column); v != "" {
		return v
	}
	return nil
}

// cellText returns the text written to a CSV field.
func cellText(row domain.KeywordRow, column string) string {
	switch v := cellValue(row, column).(type) {
	case nil:
		return ""
	case float64:
		return formatFloat(v)
	case int:
		return formatInt(v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
