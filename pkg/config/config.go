package config

import (
	"time"
)

// Config represents the complete configuration for the fretforge service.
// It provides type-safe access to all configuration values with validation.
type Config struct {
	Server  ServerConfig  `koanf:"server"  validate:"required"`
	Sheets  SheetsConfig  `koanf:"sheets"  validate:"required"`
	Cache   CacheConfig   `koanf:"cache"`
	Notify  NotifyConfig  `koanf:"notify"`
	Runtime RuntimeConfig `koanf:"runtime" validate:"required"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host    string        `koanf:"host"    validate:"required"`
	Port    int           `koanf:"port"    validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout"`
}

// SheetsConfig describes where the tabular product data lives. The engine
// only requires a row source; the gviz endpoint is the production one.
type SheetsConfig struct {
	BaseURL     string        `koanf:"base_url"     validate:"required,url"`
	DocumentID  string        `koanf:"document_id"`
	ProductsTab string        `koanf:"products_tab" validate:"required"`
	OptionsTab  string        `koanf:"options_tab"  validate:"required"`
	SpecsTab    string        `koanf:"specs_tab"    validate:"required"`
	Timeout     time.Duration `koanf:"timeout"`
	MaxRetries  int           `koanf:"max_retries"  validate:"min=0,max=10"`
	// FixturePath, when set, loads rows from a local YAML file instead of
	// the remote endpoint. Used in development and tests.
	FixturePath string `koanf:"fixture_path"`
}

// CacheConfig controls the row cache placed in front of the sheet source.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	TTL        time.Duration `koanf:"ttl"`
	MaxEntries int64         `koanf:"max_entries" validate:"min=0"`
}

// NotifyConfig configures the outbound quote-request notification. An empty
// WebhookURL disables dispatch; the projection is still produced.
type NotifyConfig struct {
	WebhookURL string        `koanf:"webhook_url" validate:"omitempty,url"`
	From       string        `koanf:"from"`
	Recipient  string        `koanf:"recipient"`
	Timeout    time.Duration `koanf:"timeout"`
}

// RuntimeConfig contains runtime behavior configuration.
type RuntimeConfig struct {
	Environment string `koanf:"environment" validate:"oneof=development staging production"`
	LogLevel    string `koanf:"log_level"   validate:"oneof=debug info warn error"`
	LogJSON     bool   `koanf:"log_json"`
}

// Default returns the built-in configuration. Environment variables and
// flags are layered on top by the loader.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8087,
			Timeout: 15 * time.Second,
		},
		Sheets: SheetsConfig{
			BaseURL:     "https://docs.google.com/spreadsheets/d",
			ProductsTab: "Products",
			OptionsTab:  "Options",
			SpecsTab:    "Specs",
			Timeout:     10 * time.Second,
			MaxRetries:  3,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 256,
		},
		Notify: NotifyConfig{
			Timeout: 10 * time.Second,
		},
		Runtime: RuntimeConfig{
			Environment: "development",
			LogLevel:    "info",
			LogJSON:     false,
		},
	}
}
