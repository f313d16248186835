// Package config assembles the dashboard configuration from defaults,
// environment variables, and CLI flags, in that order of precedence.
package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"

	"tagplot/internal/apperr"
)

// Config is the complete dashboard configuration.
type Config struct {
	Filename        string   `validate:"required"`
	Filetype        string   `validate:"required"`
	ReadKwargs      []string `validate:"-"`
	FeatureAliases  string   `validate:"-"`
	Describe        bool     `validate:"-"`
	Port            int      `validate:"gte=1,lte=65535"`
	SampleRate      float64  `validate:"gt=0,lte=1"`
	WebsocketOrigin int      `validate:"gte=0"`
	Notes           string   `validate:"-"`
}

// Defaults returns the configuration before env and flag overrides.
func Defaults() Config {
	return Config{
		Filetype:        "parquet",
		Describe:        true,
		Port:            5006,
		SampleRate:      1.0,
		WebsocketOrigin: 49179,
	}
}

// Load returns the defaults overlaid with environment variables. CLI flags
// are applied afterwards by the command layer.
func Load() Config {
	cfg := Defaults()
	cfg.Filename = getEnvOrDefault("TAGPLOT_FILENAME", cfg.Filename)
	cfg.Filetype = getEnvOrDefault("TAGPLOT_FILETYPE", cfg.Filetype)
	cfg.FeatureAliases = getEnvOrDefault("TAGPLOT_FEATURE_ALIASES", cfg.FeatureAliases)
	cfg.Notes = getEnvOrDefault("TAGPLOT_NOTES", cfg.Notes)
	cfg.Port = getEnvIntOrDefault("TAGPLOT_PORT", cfg.Port)
	cfg.SampleRate = getEnvFloatOrDefault("TAGPLOT_SAMPLE_RATE", cfg.SampleRate)
	cfg.WebsocketOrigin = getEnvIntOrDefault("TAGPLOT_WEBSOCKET_ORIGIN", cfg.WebsocketOrigin)
	return cfg
}

// Validate checks the assembled configuration. A missing filename is the
// fatal missing-input condition; everything else is a config error.
func (c Config) Validate() error {
	if c.Filename == "" {
		return apperr.MissingInput("filename should be provided to create a dashboard")
	}
	if err := validator.New().Struct(c); err != nil {
		return apperr.Wrap(apperr.ConfigInvalid(err.Error()), "configuration validation failed")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
