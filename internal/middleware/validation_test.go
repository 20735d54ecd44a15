package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "kwlens/internal/errors"
	"kwlens/internal/shared/testutil"
)

type uploadForm struct {
	FileName string `form:"file" validate:"required,filename,spreadsheet"`
	Top      int    `form:"top_unranked" validate:"gte=0,lte=1000"`
	Format   string `form:"format" validate:"omitempty,oneof=xlsx csv"`
}

func newTestValidation(t *testing.T, maxBody int64) *ValidationMiddleware {
	logger, _ := testutil.NewTestLogger(t)
	return NewValidationMiddleware(logger, apierrors.NewErrorHandler(logger, false), maxBody)
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		input      uploadForm
		wantFields []string
	}{
		{
			name:  "valid",
			input: uploadForm{FileName: "keywords.xlsx", Top: 10, Format: "csv"},
		},
		{
			name:       "missing file",
			input:      uploadForm{},
			wantFields: []string{"file"},
		},
		{
			name:  "double dot inside name",
			input: uploadForm{FileName: "q3..final.xlsx"},
		},
		{
			name:       "path traversal",
			input:      uploadForm{FileName: "../keywords.xlsx"},
			wantFields: []string{"file"},
		},
		{
			name:       "nested path",
			input:      uploadForm{FileName: "exports/keywords.xlsx"},
			wantFields: []string{"file"},
		},
		{
			name:       "windows path",
			input:      uploadForm{FileName: `C:\exports\keywords.xlsx`},
			wantFields: []string{"file"},
		},
		{
			name:       "not a spreadsheet",
			input:      uploadForm{FileName: "keywords.pdf"},
			wantFields: []string{"file"},
		},
		{
			name:       "bad numbers and format",
			input:      uploadForm{FileName: "Keywords.CSV", Top: -1, Format: "pdf"},
			wantFields: []string{"top_unranked", "format"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newTestValidation(t, 0).ValidateStruct(tt.input)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var apiErr *apierrors.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

			details, ok := apiErr.Details.(apierrors.ValidationErrors)
			require.True(t, ok)
			fields := make([]string, 0, len(details.Errors))
			for _, e := range details.Errors {
				fields = append(fields, e.Field)
				assert.NotEmpty(t, e.Message)
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}
}

func TestLimitBody(t *testing.T) {
	v := newTestValidation(t, 8)

	readAll := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	t.Run("declared too large", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789"))
		v.LimitBody(readAll).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, float64(http.StatusRequestEntityTooLarge), body["status"])
	})

	t.Run("undeclared too large", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789"))
		req.ContentLength = -1
		v.LimitBody(readAll).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("within limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		v.LimitBody(readAll).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("short")))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestContentTypeValidator(t *testing.T) {
	handler := newTestValidation(t, 0).ContentTypeValidator("multipart/form-data")(okHandler())

	tests := []struct {
		name        string
		method      string
		contentType string
		wantStatus  int
	}{
		{"multipart accepted", http.MethodPost, "multipart/form-data; boundary=x", http.StatusOK},
		{"json rejected", http.MethodPost, "application/json", http.StatusUnsupportedMediaType},
		{"missing rejected", http.MethodPost, "", http.StatusUnsupportedMediaType},
		{"get skipped", http.MethodGet, "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusUnsupportedMediaType {
				return
			}

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, apierrors.TypeUnsupportedMedia, body["type"])
			assert.Equal(t, float64(http.StatusUnsupportedMediaType), body["status"])
			assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", body["error_code"])
			assert.NotContains(t, body, "success")
		})
	}
}
