package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apierrors "kwlens/internal/errors"
	"kwlens/pkg/contracts/domain"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"HOST"`
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL"`
	Format      string `yaml:"format" envconfig:"FORMAT"`
	Output      string `yaml:"output" envconfig:"OUTPUT"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ExportsDir string `yaml:"exports_dir" envconfig:"EXPORTS_DIR"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// EnsureDirectories creates the exports and logs directories
func (p PathsConfig) EnsureDirectories() error {
	for _, dir := range []string{p.ExportsDir, p.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// AnalysisConfig holds the default text fields and summary sizes used when a
// request or command line leaves them unset
type AnalysisConfig struct {
	Title               string `yaml:"title" envconfig:"TITLE"`
	Subtitle            string `yaml:"subtitle" envconfig:"SUBTITLE"`
	KeywordField        string `yaml:"keyword_field" envconfig:"KEYWORD_FIELD"`
	KeywordField2       string `yaml:"keyword_field_2" envconfig:"KEYWORD_FIELD_2"`
	Probe               string `yaml:"probe" envconfig:"PROBE"`
	TopKeywordWords     int    `yaml:"top_keyword_words" envconfig:"TOP_KEYWORD_WORDS"`
	TopAppSubtitleWords int    `yaml:"top_app_subtitle_words" envconfig:"TOP_APP_SUBTITLE_WORDS"`
	TopUnranked         int    `yaml:"top_unranked" envconfig:"TOP_UNRANKED"`
	Sheet               string `yaml:"sheet" envconfig:"SHEET"`
	ExportFormat        string `yaml:"export_format" envconfig:"EXPORT_FORMAT"`
	MaxUploadBytes      int64  `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES"`
}

// Options converts the configured defaults to analysis options
func (a AnalysisConfig) Options() domain.AnalysisOptions {
	return domain.AnalysisOptions{
		Reference: domain.ReferenceInput{
			Title:         a.Title,
			Subtitle:      a.Subtitle,
			KeywordField:  a.KeywordField,
			KeywordField2: a.KeywordField2,
		},
		Probe:               a.Probe,
		TopKeywordWords:     a.TopKeywordWords,
		TopAppSubtitleWords: a.TopAppSubtitleWords,
		TopUnranked:         a.TopUnranked,
	}
}

// TelemetryConfig controls tracing and metrics
type TelemetryConfig struct {
	ServiceName     string `yaml:"service_name" envconfig:"SERVICE_NAME"`
	Environment     string `yaml:"environment" envconfig:"ENVIRONMENT"`
	TracingEnabled  bool   `yaml:"tracing_enabled" envconfig:"TRACING_ENABLED"`
	TracingExporter string `yaml:"tracing_exporter" envconfig:"TRACING_EXPORTER"`
	MetricsEnabled  bool   `yaml:"metrics_enabled" envconfig:"METRICS_ENABLED"`
}

// Load loads configuration from defaults, the config file, a .env file and
// the environment, in increasing order of precedence
func Load() (*Config, error) {
	return LoadFile(getConfigFilePath())
}

// LoadFile is Load with an explicit config file; an empty path skips the file
func LoadFile(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apierrors.NewConfigError("failed to load config from file", err).WithContext("path", configFile)
		}
	}

	// Variables already set in the environment win over .env entries
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, apierrors.NewConfigError("failed to load .env", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apierrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, apierrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML values onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Security.EnableCORS && len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	if c.Security.RateLimit.Enabled && c.Security.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive")
	}

	switch strings.ToLower(c.Logging.Output) {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output %q", c.Logging.Output)
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	if c.Analysis.TopKeywordWords < 0 || c.Analysis.TopAppSubtitleWords < 0 || c.Analysis.TopUnranked < 0 {
		return fmt.Errorf("summary sizes must not be negative")
	}

	switch strings.ToLower(c.Analysis.ExportFormat) {
	case "xlsx", "csv":
	default:
		return fmt.Errorf("invalid export format %q", c.Analysis.ExportFormat)
	}

	if c.Analysis.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive")
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		return path
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  DefaultRequestTimeout,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimit,
				Burst:   DefaultBurstSize,
			},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Paths: PathsConfig{
			ExportsDir: DefaultExportsDir,
			LogsDir:    DefaultLogsDir,
		},
		Analysis: AnalysisConfig{
			TopKeywordWords:     domain.DefaultTopKeywordWords,
			TopAppSubtitleWords: domain.DefaultTopAppSubtitleWords,
			TopUnranked:         domain.DefaultTopUnranked,
			ExportFormat:        "xlsx",
			MaxUploadBytes:      DefaultMaxUploadBytes,
		},
		Telemetry: TelemetryConfig{
			ServiceName:     AppName,
			Environment:     "development",
			TracingEnabled:  false,
			TracingExporter: "stdout",
			MetricsEnabled:  true,
		},
	}
}
