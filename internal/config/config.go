package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rejoyj/Resume-Filter/internal/scoring"
)

// Config holds application configuration
type Config struct {
	Port             string          `json:"port"`
	ParserServiceURL string          `json:"parser_service_url"`
	PageSize         int             `json:"page_size"`
	ScoringWeights   scoring.Weights `json:"scoring_weights"`

	DispatchConcurrency    int `json:"dispatch_concurrency"`
	DispatchMaxAttempts    int `json:"dispatch_max_attempts"`
	DispatchInitialDelayMS int `json:"dispatch_initial_delay_ms"`

	GmailCredentialsPath string `json:"gmail_credentials_path"`
	GmailTokenPath       string `json:"gmail_token_path"`

	LogJSON bool `json:"log_json"`
	Debug   bool `json:"debug"`
}

// DefaultConfig returns a new config with default values
func DefaultConfig() *Config {
	return &Config{
		Port:                   "8080",
		ParserServiceURL:       "http://localhost:5000",
		PageSize:               10,
		ScoringWeights:         scoring.DefaultWeights(),
		DispatchConcurrency:    4,
		DispatchMaxAttempts:    3,
		DispatchInitialDelayMS: 500,
	}
}

// LoadFrom loads configuration from a specific path. A missing file is not an
// error; defaults apply.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveTo saves the configuration to a specific path
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overlays environment variables on top of file values. Only the
// deployment-specific settings are exposed this way.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("PARSER_SERVICE_URL"); v != "" {
		c.ParserServiceURL = v
	}
	if v := os.Getenv("GMAIL_CREDENTIALS_PATH"); v != "" {
		c.GmailCredentialsPath = v
	}
	if v := os.Getenv("GMAIL_TOKEN_PATH"); v != "" {
		c.GmailTokenPath = v
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.ParserServiceURL == "" {
		return fmt.Errorf("parser_service_url is required")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive")
	}
	if err := c.ScoringWeights.Validate(); err != nil {
		return err
	}
	if c.DispatchConcurrency <= 0 {
		return fmt.Errorf("dispatch_concurrency must be positive")
	}
	if c.DispatchMaxAttempts <= 0 {
		return fmt.Errorf("dispatch_max_attempts must be positive")
	}

	if c.GmailCredentialsPath != "" {
		if _, err := os.Stat(c.GmailCredentialsPath); err != nil {
			return fmt.Errorf("gmail credentials file not found: %w", err)
		}
	}

	return nil
}
