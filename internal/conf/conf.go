package conf

import (
	"os"
	"path/filepath"
)

// Config represents application configuration
type Config struct {
	// LLM configuration (optional; templates are used when absent)
	LLM LLMConfig

	// Ledger configuration
	Ledger LedgerConfig

	// Feed configuration (file-backed adapter for dry runs)
	Feed FeedConfig

	// Debug mode
	Debug bool
}

// LLMConfig contains completion endpoint configuration
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// LedgerConfig contains ledger database configuration
type LedgerConfig struct {
	DBPath string
}

// FeedConfig contains the feed adapter configuration
type FeedConfig struct {
	Path string
}

// Enabled reports whether a completion endpoint is configured
func (c *LLMConfig) Enabled() bool {
	return c.APIKey != ""
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	dbPath := os.Getenv("LEDGER_DB_PATH")
	if dbPath == "" {
		homeDir, _ := os.UserHomeDir()
		dbPath = filepath.Join(homeDir, ".engagekit", "ledger.db")
	}

	return &Config{
		LLM: LLMConfig{
			APIKey:  os.Getenv("LLM_API_KEY"),
			BaseURL: os.Getenv("LLM_BASE_URL"),
			Model:   os.Getenv("LLM_MODEL"),
		},
		Ledger: LedgerConfig{
			DBPath: dbPath,
		},
		Feed: FeedConfig{
			Path: os.Getenv("FEED_PATH"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Ledger.DBPath == "" {
		return &ConfigError{Field: "LEDGER_DB_PATH", Message: "required"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
