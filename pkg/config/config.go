// Package config loads host configuration for the toolgate CLI from
// environment variables. The engine itself takes no configuration beyond
// the catalog and rule tables.
package config

import "os"

// Config holds CLI host configuration.
type Config struct {
	LogLevel    string // DEBUG, INFO, WARN, ERROR
	CatalogPath string // optional YAML catalog; empty means the shipped table
	RulesPath   string // optional YAML/CEL rule table; empty means the shipped rules
	MeterDB     string // optional sqlite path for usage metering; empty disables
}

// Load loads configuration from environment variables.
func Load() *Config {
	logLevel := os.Getenv("TOOLGATE_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "INFO"
	}

	return &Config{
		LogLevel:    logLevel,
		CatalogPath: os.Getenv("TOOLGATE_CATALOG"),
		RulesPath:   os.Getenv("TOOLGATE_RULES"),
		MeterDB:     os.Getenv("TOOLGATE_METER_DB"),
	}
}
