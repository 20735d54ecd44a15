package infrastructure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kwlens/internal/config"
)

func testOTelConfig() *OTelConfig {
	return &OTelConfig{
		ServiceName:    "test-service",
		ServiceVersion: "v1.0.0",
		Environment:    "test",
		TraceExporter:  "stdout",
		MetricExporter: "prometheus",
		EnableMetrics:  true,
		EnableTracing:  true,
		SampleRatio:    1.0,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewOTelConfig(t *testing.T) {
	cfg := NewOTelConfig(config.TelemetryConfig{
		ServiceName:    "kwlens",
		Environment:    "production",
		TracingEnabled: true,
		MetricsEnabled: true,
	}, "1.2.3")

	assert.Equal(t, "kwlens", cfg.ServiceName)
	assert.Equal(t, "1.2.3", cfg.ServiceVersion)
	assert.Equal(t, "stdout", cfg.TraceExporter)
	assert.Equal(t, "prometheus", cfg.MetricExporter)
	assert.True(t, cfg.EnableTracing)
}

func TestOTelConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*OTelConfig)
	}{
		{"everything enabled", func(*OTelConfig) {}},
		{"tracing disabled", func(c *OTelConfig) { c.EnableTracing = false }},
		{"metrics disabled", func(c *OTelConfig) { c.EnableMetrics = false }},
		{"no trace exporter", func(c *OTelConfig) { c.TraceExporter = "none" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testOTelConfig()
			tt.modify(cfg)

			providers, err := InitializeOTel(cfg, discardLogger())
			require.NoError(t, err)

			// No-op fallbacks keep both non-nil
			assert.NotNil(t, providers.Tracer)
			assert.NotNil(t, providers.Meter)

			if cfg.EnableTracing && cfg.TraceExporter != "none" {
				assert.NotNil(t, providers.TracerProvider)
			}
			if cfg.EnableMetrics {
				assert.NotNil(t, providers.MeterProvider)
				assert.NotNil(t, providers.PrometheusHTTP)
			} else {
				assert.Nil(t, providers.PrometheusHTTP)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			assert.NoError(t, providers.Shutdown(ctx))
		})
	}
}

func TestOTelConfiguration_UnsupportedExporter(t *testing.T) {
	cfg := testOTelConfig()
	cfg.TraceExporter = "zipkin"

	_, err := InitializeOTel(cfg, discardLogger())
	assert.Error(t, err)
}

func TestBusinessMetrics_ExposedOnPrometheus(t *testing.T) {
	providers, err := InitializeOTel(testOTelConfig(), discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	RecordAnalysisMetrics(ctx, metrics, "keywords.xlsx", 42, 120*time.Millisecond, nil)
	RecordAnalysisMetrics(ctx, metrics, "broken.xlsx", 0, time.Millisecond, errors.New("bad sheet"))
	RecordExport(ctx, metrics, "xlsx")

	server := httptest.NewServer(providers.PrometheusHTTP)
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	for _, name := range []string{
		"analysis_runs_total",
		"analysis_duration_seconds",
		"analysis_rows_processed_total",
		"analysis_errors_total",
		"export_files_total",
		"go_goroutines",
	} {
		assert.Contains(t, string(body), name)
	}
}

func TestRecordAnalysisMetrics_NilMetrics(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordAnalysisMetrics(context.Background(), nil, "x", 1, time.Second, nil)
		RecordExport(context.Background(), nil, "csv")
	})
}
