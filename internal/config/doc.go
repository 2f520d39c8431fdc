// Package config provides centralized configuration management for gradebook.
// It handles loading configuration from multiple sources, validation, and provides
// a type-safe API for accessing configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Command line flags (applied by cmd/gradebook)
//	2. Environment variables
//	3. YAML configuration file (--config, gradebook.yaml or configs/gradebook.yaml)
//	4. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern GRADEBOOK_<SECTION>_<KEY>:
//
//	GRADEBOOK_LOGGING_LEVEL=debug
//	GRADEBOOK_ROSTER_FILE=class.csv
//	GRADEBOOK_ROSTER_ID_COLUMN=Roll_Number
//	GRADEBOOK_CHART_OUTPUT_PATH=marks_chart.xlsx
//	GRADEBOOK_TELEMETRY_METRICS_FILE=gradebook.prom
//
// # Validation
//
// Every section is validated with struct tags at load time, so a bad log
// level or a multi-character delimiter is reported before any roster is read.
package config
