// Package config loads application configuration from environment
// variables and an optional YAML config file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/Parsa-ux360/PriceForecastApp/internal/forecast"
)

// ProductConfig holds one product to forecast as declared in the config
// file. CurrentPrice and ForecastMonths are loosely typed on purpose: YAML
// authors write them as strings or numbers interchangeably.
type ProductConfig struct {
	Product        string `mapstructure:"product"`
	CurrentPrice   any    `mapstructure:"current_price"`
	ForecastMonths any    `mapstructure:"forecast_months"`
	Country        string `mapstructure:"country"`
	Currency       string `mapstructure:"currency"`
}

// Config holds all configuration for the price forecast application.
type Config struct {
	// Base URL for the World Bank API (configurable for testing)
	WorldBankBaseURL string `mapstructure:"worldbank_base_url"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Optional path for the JSON forecast report
	OutputFile string `mapstructure:"output_file"`

	// Products to forecast
	Products []ProductConfig `mapstructure:"products"`
}

// Load reads configuration from environment variables and an optional
// config file. Environment variables take precedence over config file
// values.
//
// Expected environment variables (all optional):
//   - WORLDBANK_BASE_URL (defaults to production)
//   - LOG_LEVEL (debug, info, warn, error; defaults to info)
//   - LOG_FORMAT (console, json; defaults to console)
//   - OUTPUT_FILE (path for the JSON report; empty disables it)
func Load() (*Config, error) {
	v := viper.New()

	// Set up environment variable support
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("worldbank_base_url", "https://api.worldbank.org/v2")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.priceforecast")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	// Bind environment variables
	v.BindEnv("worldbank_base_url", "WORLDBANK_BASE_URL")
	v.BindEnv("log_level", "LOG_LEVEL")
	v.BindEnv("log_format", "LOG_FORMAT")
	v.BindEnv("output_file", "OUTPUT_FILE")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if len(config.Products) == 0 {
		return nil, fmt.Errorf("no products configured")
	}

	return config, nil
}

// Record normalizes a loose product entry into the typed record the
// forecaster consumes. Missing values take their documented defaults:
// price "0", months "0", currency "USD".
func (p ProductConfig) Record() forecast.ProductRecord {
	price := "0"
	if p.CurrentPrice != nil {
		price = cast.ToString(p.CurrentPrice)
	}

	months := "0"
	if p.ForecastMonths != nil {
		months = cast.ToString(p.ForecastMonths)
	}

	currency := strings.ToUpper(strings.TrimSpace(p.Currency))
	if currency == "" {
		currency = "USD"
	}

	return forecast.ProductRecord{
		Product:        p.Product,
		CurrentPrice:   price,
		ForecastMonths: months,
		Country:        strings.TrimSpace(p.Country),
		Currency:       currency,
	}
}

// Records converts every configured product in order.
func (c *Config) Records() []forecast.ProductRecord {
	records := make([]forecast.ProductRecord, 0, len(c.Products))
	for _, p := range c.Products {
		records = append(records, p.Record())
	}
	return records
}
