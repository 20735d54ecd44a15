package config

import "time"

// Application constants
const (
	AppName = "kwlens"

	// Environment variable prefix and config file override
	EnvPrefix     = "KWLENS"
	ConfigFileEnv = "KWLENS_CONFIG"

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Request handling
	DefaultRequestTimeout = 60 * time.Second
	DefaultMaxUploadBytes = 32 << 20 // 32MB

	// File Paths
	DefaultExportsDir = "exports"
	DefaultLogsDir    = "logs"
	DefaultLogFile    = "logs/kwlens.log"

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// API Endpoints
	APIBasePath     = "/api"
	HealthEndpoint  = "/api/health"
	MetricsEndpoint = "/metrics"
)
