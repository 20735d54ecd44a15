// Package config provides configuration management for kwlens.
//
// # Configuration Sources
//
// Configuration is built up in the following order, later sources winning:
//
//  1. Default values
//  2. A YAML file: $KWLENS_CONFIG, config.yaml or configs/config.yaml
//  3. A .env file in the working directory
//  4. Environment variables
//
// # Environment Variables
//
// Variables use the KWLENS prefix followed by the section and field name:
//
//	KWLENS_SERVER_PORT=8080
//	KWLENS_LOGGING_LEVEL=debug
//	KWLENS_ANALYSIS_PROBE=invoice
//	KWLENS_ANALYSIS_TOP_UNRANKED=20
//	KWLENS_SECURITY_ALLOWED_ORIGINS=http://localhost:3000,https://aso.example.com
//
// # Validation
//
// Load validates ports, timeouts, rate limits, logging output, summary
// sizes and the export format before returning.
package config
