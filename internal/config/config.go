// ABOUTME: Centralized configuration for the legal crew CLI, server and MCP tools
// ABOUTME: Loads .env, environment variables and an optional legalcrew.yaml through viper
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the legal crew
type Config struct {
	// Role invoker settings
	OpenAIKey   string
	BaseURL     string
	ChatModel   string
	Temperature float64
	Timeout     time.Duration
	MaxRetries  int
	RetryDelay  time.Duration

	// Economic indicators
	CPI          float64
	CAOIndex     float64
	BaseIncrease float64

	// Deliberation settings
	MaxRounds int

	// Knowledge catalog
	CatalogPath string
	CatalogDB   string

	// Transport and logging
	Addr     string
	LogLevel string
}

// keys maps config fields to their environment variable names
var keys = map[string]any{
	"OPENAI_API_KEY":          "",
	"OPENAI_BASE_URL":         "",
	"LEGALCREW_MODEL":         "gpt-4o-mini",
	"LEGALCREW_TEMPERATURE":   0.7,
	"OPENAI_TIMEOUT":          60 * time.Second,
	"OPENAI_MAX_RETRIES":      3,
	"OPENAI_RETRY_DELAY":      2 * time.Second,
	"LEGALCREW_CPI":           2.0,
	"LEGALCREW_CAO_INDEX":     3.0,
	"LEGALCREW_BASE_INCREASE": 1.0,
	"LEGALCREW_MAX_ROUNDS":    1,
	"LEGALCREW_CATALOG":       "",
	"LEGALCREW_CATALOG_DB":    "",
	"LEGALCREW_ADDR":          ":8000",
	"LOG_LEVEL":               "info",
}

// DefaultDataDir returns the XDG data directory used for the catalog database
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = xdg.DataHome
	}
	return filepath.Join(dataHome, "legal-crew")
}

// DefaultCatalogDBPath returns the default SQLite catalog location
func DefaultCatalogDBPath() string {
	return filepath.Join(DefaultDataDir(), "catalog.db")
}

// LoadDotEnv loads a .env file if it exists (for API keys)
func LoadDotEnv() error {
	return godotenv.Load()
}

// Load reads configuration from environment variables and an optional
// legalcrew.yaml in the working directory or the XDG config directory
func Load() (*Config, error) {
	v := viper.New()
	for key, def := range keys {
		v.SetDefault(key, def)
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	v.SetConfigName("legalcrew")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, "legal-crew"))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		OpenAIKey:    v.GetString("OPENAI_API_KEY"),
		BaseURL:      v.GetString("OPENAI_BASE_URL"),
		ChatModel:    v.GetString("LEGALCREW_MODEL"),
		Temperature:  v.GetFloat64("LEGALCREW_TEMPERATURE"),
		Timeout:      v.GetDuration("OPENAI_TIMEOUT"),
		MaxRetries:   v.GetInt("OPENAI_MAX_RETRIES"),
		RetryDelay:   v.GetDuration("OPENAI_RETRY_DELAY"),
		CPI:          v.GetFloat64("LEGALCREW_CPI"),
		CAOIndex:     v.GetFloat64("LEGALCREW_CAO_INDEX"),
		BaseIncrease: v.GetFloat64("LEGALCREW_BASE_INCREASE"),
		MaxRounds:    v.GetInt("LEGALCREW_MAX_ROUNDS"),
		CatalogPath:  v.GetString("LEGALCREW_CATALOG"),
		CatalogDB:    v.GetString("LEGALCREW_CATALOG_DB"),
		Addr:         v.GetString("LEGALCREW_ADDR"),
		LogLevel:     strings.ToLower(v.GetString("LOG_LEVEL")),
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.MaxRounds < 1 || c.MaxRounds > 3 {
		return fmt.Errorf("LEGALCREW_MAX_ROUNDS must be 1-3, got %d", c.MaxRounds)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("LEGALCREW_TEMPERATURE must be 0-2, got %f", c.Temperature)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("OPENAI_TIMEOUT must be positive, got %v", c.Timeout)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

// HasAPIKey reports whether a role invoker can be constructed
func (c *Config) HasAPIKey() bool {
	return c.OpenAIKey != ""
}
