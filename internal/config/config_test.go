package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "kwlens/internal/errors"
	"kwlens/pkg/contracts/domain"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults without file or env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, DefaultRequestTimeout, cfg.Server.RequestTimeout)
				assert.Equal(t, []string{"http://localhost:8080"}, cfg.Security.AllowedOrigins)
				assert.True(t, cfg.Security.RateLimit.Enabled)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.Equal(t, DefaultExportsDir, cfg.Paths.ExportsDir)
				assert.Equal(t, domain.DefaultTopKeywordWords, cfg.Analysis.TopKeywordWords)
				assert.Equal(t, domain.DefaultTopAppSubtitleWords, cfg.Analysis.TopAppSubtitleWords)
				assert.Equal(t, domain.DefaultTopUnranked, cfg.Analysis.TopUnranked)
				assert.Equal(t, "xlsx", cfg.Analysis.ExportFormat)
				assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.Analysis.MaxUploadBytes)
				assert.Equal(t, AppName, cfg.Telemetry.ServiceName)
			},
		},
		{
			name: "file overrides defaults and keeps unset fields",
			file: `
server:
  port: 9090
analysis:
  title: Simple Invoice maker Invoicer
  probe: invoice
  top_unranked: 20
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "Simple Invoice maker Invoicer", cfg.Analysis.Title)
				assert.Equal(t, "invoice", cfg.Analysis.Probe)
				assert.Equal(t, 20, cfg.Analysis.TopUnranked)
				assert.Equal(t, domain.DefaultTopKeywordWords, cfg.Analysis.TopKeywordWords)
			},
		},
		{
			name: "environment overrides file",
			file: "server:\n  port: 9090\n",
			env: map[string]string{
				"KWLENS_SERVER_PORT":              "7070",
				"KWLENS_ANALYSIS_KEYWORD_FIELD":   "free,generator,home",
				"KWLENS_SECURITY_ALLOWED_ORIGINS": "http://a.test,http://b.test",
				"KWLENS_SERVER_REQUEST_TIMEOUT":   "5s",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7070, cfg.Server.Port)
				assert.Equal(t, "free,generator,home", cfg.Analysis.KeywordField)
				assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Security.AllowedOrigins)
				assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
			},
		},
		{
			name:    "invalid port",
			env:     map[string]string{"KWLENS_SERVER_PORT": "70000"},
			wantErr: true,
		},
		{
			name:    "invalid export format",
			file:    "analysis:\n  export_format: ods\n",
			wantErr: true,
		},
		{
			name:    "negative summary size",
			env:     map[string]string{"KWLENS_ANALYSIS_TOP_UNRANKED": "-1"},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "server: [",
			wantErr: true,
		},
		{
			name:    "malformed env value",
			env:     map[string]string{"KWLENS_SERVER_PORT": "eighty"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := LoadFile(path)
			if tt.wantErr {
				var appErr *apierrors.AppError
				require.True(t, errors.As(err, &appErr))
				assert.Equal(t, apierrors.ErrTypeConfig, appErr.Type)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")
	_, err := LoadFile(path)

	var appErr *apierrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apierrors.ErrTypeConfig, appErr.Type)
	assert.Equal(t, path, appErr.Context["path"])
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGetConfigFilePath_Env(t *testing.T) {
	t.Setenv(ConfigFileEnv, "/etc/kwlens/config.yaml")
	assert.Equal(t, "/etc/kwlens/config.yaml", getConfigFilePath())
}

func TestAnalysisConfig_Options(t *testing.T) {
	a := AnalysisConfig{
		Title:               "Title",
		Subtitle:            "Sub",
		KeywordField:        "k1",
		KeywordField2:       "k2",
		Probe:               "probe",
		TopKeywordWords:     3,
		TopAppSubtitleWords: 2,
		TopUnranked:         1,
	}

	opts := a.Options()

	assert.Equal(t, "Title Sub k1 k2", opts.Reference.Text())
	assert.Equal(t, "probe", opts.Probe)
	assert.Equal(t, 3, opts.TopKeywordWords)
	assert.Equal(t, 2, opts.TopAppSubtitleWords)
	assert.Equal(t, 1, opts.TopUnranked)
}

func TestPathsConfig_EnsureDirectories(t *testing.T) {
	root := t.TempDir()
	p := PathsConfig{
		ExportsDir: filepath.Join(root, "exports"),
		LogsDir:    filepath.Join(root, "logs", "nested"),
	}

	require.NoError(t, p.EnsureDirectories())

	assert.DirExists(t, p.ExportsDir)
	assert.DirExists(t, p.LogsDir)
}

func TestServerConfig_Addr(t *testing.T) {
	assert.Equal(t, ":8080", ServerConfig{Port: 8080}.Addr())
	assert.Equal(t, "127.0.0.1:9000", ServerConfig{Host: "127.0.0.1", Port: 9000}.Addr())
}
