package errors

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantMsg  string
	}{
		{
			name:     "parsing error with cause",
			err:      NewParsingError("cannot open workbook", io.ErrUnexpectedEOF),
			wantType: ErrTypeParsing,
			wantMsg:  "[PARSING] cannot open workbook: unexpected EOF",
		},
		{
			name:     "schema error",
			err:      NewSchemaError("missing columns", nil),
			wantType: ErrTypeSchema,
			wantMsg:  "[SCHEMA] missing columns",
		},
		{
			name:     "config",
			err:      NewConfigError("failed to load configuration", io.EOF),
			wantType: ErrTypeConfig,
			wantMsg:  "[CONFIG] failed to load configuration: EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := io.ErrUnexpectedEOF
	err := NewExportError("write failed", cause)

	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrTypeExport, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := (&AppError{Type: ErrTypeStorage, Message: "disk full"}).
		WithContext("path", "/tmp/out.xlsx").
		WithContext("attempt", 2)

	assert.Equal(t, "/tmp/out.xlsx", err.Context["path"])
	assert.Equal(t, 2, err.Context["attempt"])
}
