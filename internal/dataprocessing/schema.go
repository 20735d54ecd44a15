package dataprocessing

import (
	"fmt"
	"strings"

	"kwlens/pkg/contracts/domain"
)

// RequiredColumns returns the columns every keyword sheet must carry.
func RequiredColumns() []string {
	return []string{
		domain.ColumnKeyword,
		domain.ColumnAppName,
		domain.ColumnSubtitle,
		domain.ColumnVolume,
		domain.ColumnRankStatus,
	}
}

// SchemaError reports required columns absent from a sheet header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// ParseError reports an input that could not be read as a table.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("failed to read spreadsheet: %v", e.Err)
	}
	return fmt.Sprintf("failed to read spreadsheet %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidateColumns checks that every required column is present. The returned
// *SchemaError lists all missing columns in required order.
func ValidateColumns(columns, required []string) error {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}

	var missing []string
	for _, c := range required {
		if _, ok := present[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}
