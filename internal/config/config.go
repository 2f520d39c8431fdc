package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"gradebook/internal/errors"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "GRADEBOOK"

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Roster    RosterConfig    `yaml:"roster" envconfig:"ROSTER"`
	Chart     ChartConfig     `yaml:"chart" envconfig:"CHART"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/gradebook.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// RosterConfig describes how the input table is laid out.
type RosterConfig struct {
	Path             string `yaml:"path" envconfig:"FILE" default:"main.csv" validate:"required"`
	IDColumn         string `yaml:"id_column" envconfig:"ID_COLUMN" default:"Roll_Number" validate:"required"`
	NameColumn       string `yaml:"name_column" envconfig:"NAME_COLUMN" default:"Name" validate:"required,nefield=IDColumn"`
	Delimiter        string `yaml:"delimiter" envconfig:"DELIMITER" default:"," validate:"len=1"`
	Sheet            string `yaml:"sheet" envconfig:"SHEET"`
	TrimLeadingSpace bool   `yaml:"trim_leading_space" envconfig:"TRIM_LEADING_SPACE" default:"false"`
}

// ChartConfig contains chart output configuration
type ChartConfig struct {
	OutputPath string `yaml:"output_path" envconfig:"OUTPUT_PATH" default:"marks_chart.xlsx" validate:"required"`
	Sheet      string `yaml:"sheet" envconfig:"SHEET" default:"Marks" validate:"required,max=31"`
	Title      string `yaml:"title" envconfig:"TITLE" default:"Marks Distribution of Students in Different Exams"`
}

// TelemetryConfig controls the optional trace and metrics outputs of a run.
type TelemetryConfig struct {
	TraceFile   string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	Environment string `yaml:"environment" envconfig:"ENVIRONMENT" default:"development"`
}

// Load loads configuration from environment variables and an optional YAML file.
// An empty configFile falls back to the well-known locations.
func Load(configFile string) (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, errors.NewConfigError("failed to load config from env", err)
	}

	if configFile == "" {
		configFile = getConfigFilePath()
	}
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, errors.NewConfigError("failed to load config from file", err).WithContext("path", configFile)
		}
		cfg = mergeConfigs(*fileConfig, cfg, explicitEnv())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// explicitEnv returns the set of GRADEBOOK_* variables that are actually set,
// so defaults filled in by envconfig do not mask values from the file.
func explicitEnv() map[string]bool {
	set := make(map[string]bool)
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, EnvPrefix+"_") {
			set[strings.TrimPrefix(key, EnvPrefix+"_")] = true
		}
	}
	return set
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config, env map[string]bool) Config {
	pick := func(key string, dst *string, fileValue string) {
		if !env[key] && fileValue != "" {
			*dst = fileValue
		}
	}
	pickBool := func(key string, dst *bool, fileValue bool) {
		if !env[key] && fileValue {
			*dst = fileValue
		}
	}

	pick("LOGGING_LEVEL", &envConfig.Logging.Level, fileConfig.Logging.Level)
	pick("LOGGING_FORMAT", &envConfig.Logging.Format, fileConfig.Logging.Format)
	pick("LOGGING_OUTPUT", &envConfig.Logging.Output, fileConfig.Logging.Output)
	pick("LOGGING_FILE_PATH", &envConfig.Logging.FilePath, fileConfig.Logging.FilePath)
	pickBool("LOGGING_DEVELOPMENT", &envConfig.Logging.Development, fileConfig.Logging.Development)

	pick("ROSTER_FILE", &envConfig.Roster.Path, fileConfig.Roster.Path)
	pick("ROSTER_ID_COLUMN", &envConfig.Roster.IDColumn, fileConfig.Roster.IDColumn)
	pick("ROSTER_NAME_COLUMN", &envConfig.Roster.NameColumn, fileConfig.Roster.NameColumn)
	pick("ROSTER_DELIMITER", &envConfig.Roster.Delimiter, fileConfig.Roster.Delimiter)
	pick("ROSTER_SHEET", &envConfig.Roster.Sheet, fileConfig.Roster.Sheet)
	pickBool("ROSTER_TRIM_LEADING_SPACE", &envConfig.Roster.TrimLeadingSpace, fileConfig.Roster.TrimLeadingSpace)

	pick("CHART_OUTPUT_PATH", &envConfig.Chart.OutputPath, fileConfig.Chart.OutputPath)
	pick("CHART_SHEET", &envConfig.Chart.Sheet, fileConfig.Chart.Sheet)
	pick("CHART_TITLE", &envConfig.Chart.Title, fileConfig.Chart.Title)

	pick("TELEMETRY_TRACE_FILE", &envConfig.Telemetry.TraceFile, fileConfig.Telemetry.TraceFile)
	pick("TELEMETRY_METRICS_FILE", &envConfig.Telemetry.MetricsFile, fileConfig.Telemetry.MetricsFile)
	pick("TELEMETRY_ENVIRONMENT", &envConfig.Telemetry.Environment, fileConfig.Telemetry.Environment)

	return envConfig
}

// Validate checks the struct tags of every section.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.NewConfigError("config validation failed", err)
	}

	// "warning" is accepted on input but normalized for the logger
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"gradebook.yaml",
		"configs/gradebook.yaml",
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
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFilePath,
		},
		Roster: RosterConfig{
			Path:       DefaultRosterPath,
			IDColumn:   DefaultIDColumn,
			NameColumn: DefaultNameColumn,
			Delimiter:  DefaultDelimiter,
		},
		Chart: ChartConfig{
			OutputPath: DefaultChartPath,
			Sheet:      DefaultChartSheet,
			Title:      DefaultChartTitle,
		},
		Telemetry: TelemetryConfig{
			Environment: "development",
		},
	}
}
