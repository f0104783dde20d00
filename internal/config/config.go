// Package config loads hexmerge settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "HEXMERGE"

// LogFormat selects the diagnostic output format.
type LogFormat string

// Supported log formats.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// Defaults, kept in sync with the struct tags of EnvConfig.
const (
	DefaultLogLevel  = "INFO"
	DefaultLogFormat = LogFormatPretty
)

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// LogLevel is the diagnostic verbosity.
	// Env: HEXMERGE_LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the diagnostic format (pretty or json).
	// Env: HEXMERGE_LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
}

// AppConfig is the validated configuration.
type AppConfig struct {
	logLevel  string
	logFormat LogFormat
}

// NewAppConfig returns a configuration with default values.
func NewAppConfig() AppConfig {
	return AppConfig{
		logLevel:  DefaultLogLevel,
		logFormat: DefaultLogFormat,
	}
}

// LogLevel returns the log level name.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// WithLogLevel returns a copy with the log level replaced, if level is set.
func (c AppConfig) WithLogLevel(level string) AppConfig {
	if level != "" {
		c.logLevel = strings.ToUpper(level)
	}
	return c
}

// WithLogFormat returns a copy with the log format replaced, if format is set.
func (c AppConfig) WithLogFormat(format string) (AppConfig, error) {
	if format == "" {
		return c, nil
	}
	f, err := parseLogFormat(format)
	if err != nil {
		return c, err
	}
	c.logFormat = f
	return c, nil
}

func parseLogFormat(s string) (LogFormat, error) {
	switch LogFormat(strings.ToLower(s)) {
	case LogFormatPretty:
		return LogFormatPretty, nil
	case LogFormatJSON:
		return LogFormatJSON, nil
	}
	return "", fmt.Errorf("unknown log format %q", s)
}

// LoadFromEnv reads HEXMERGE_* environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig validates the environment values.
func (e EnvConfig) ToAppConfig() (AppConfig, error) {
	cfg, err := NewAppConfig().WithLogLevel(e.LogLevel).WithLogFormat(e.LogFormat)
	if err != nil {
		return AppConfig{}, fmt.Errorf("%s_LOG_FORMAT: %w", EnvPrefix, err)
	}
	return cfg, nil
}

// LoadDotEnv loads environment variables from a .env file.
// An empty path means ".env" in the current directory, which may be absent.
// An explicit path must exist.
func LoadDotEnv(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); os.IsNotExist(err) {
			return nil
		}
		path = ".env"
	}
	return godotenv.Load(path)
}

// LoadConfig loads the .env file, then the environment.
// Variables already set in the environment win over the .env file.
func LoadConfig(envPath string) (AppConfig, error) {
	if err := LoadDotEnv(envPath); err != nil {
		return AppConfig{}, fmt.Errorf("load env file: %w", err)
	}
	envCfg, err := LoadFromEnv()
	if err != nil {
		return AppConfig{}, err
	}
	return envCfg.ToAppConfig()
}
