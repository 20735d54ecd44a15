package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecureHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	DefaultSecureHeaders().Handler(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	h := rec.Header()
	assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", h.Get("Referrer-Policy"))
	assert.Contains(t, h.Get("Content-Security-Policy"), "default-src 'none'")
	// plain HTTP never gets HSTS
	assert.Empty(t, h.Get("Strict-Transport-Security"))
}

func TestSecureHeaders_DevMode(t *testing.T) {
	sh := DefaultSecureHeaders()
	sh.DevMode = true

	rec := httptest.NewRecorder()
	sh.Handler(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		config      CORSConfig
		origin      string
		method      string
		wantStatus  int
		wantAllowed string
	}{
		{
			name:        "wildcard by default",
			config:      CORSConfig{},
			origin:      "http://example.com",
			method:      http.MethodGet,
			wantStatus:  http.StatusOK,
			wantAllowed: "*",
		},
		{
			name:        "listed origin echoed",
			config:      CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
			origin:      "http://localhost:3000",
			method:      http.MethodPost,
			wantStatus:  http.StatusOK,
			wantAllowed: "http://localhost:3000",
		},
		{
			name:        "unlisted origin gets no header",
			config:      CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
			origin:      "http://evil.example",
			method:      http.MethodGet,
			wantStatus:  http.StatusOK,
			wantAllowed: "",
		},
		{
			name:        "preflight short-circuits",
			config:      CORSConfig{AllowedOrigins: []string{"*"}},
			origin:      "http://example.com",
			method:      http.MethodOptions,
			wantStatus:  http.StatusNoContent,
			wantAllowed: "*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/analysis", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.method == http.MethodOptions {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}

			rec := httptest.NewRecorder()
			CORS(tt.config)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllowed, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantAllowed != "" {
				assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
			}
		})
	}
}
