// Package config provides configuration loading and validation for the server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Config represents the application configuration. Values can come from a
// JSON file, the environment, or CLI flags; missing optional values use
// defaults.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Storage
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// LLM
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Gemini API key
	Model        string `json:"model,omitempty"`          // Extraction model override

	// File store (Microsoft Graph). Tenant credentials are optional; when
	// absent, callers must supply their own bearer token per request.
	GraphBaseURL string `json:"graph_base_url,omitempty"`
	TenantID     string `json:"tenant_id,omitempty"`
	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// DefaultPort is the HTTP port used when none is configured.
const DefaultPort = 8080

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// FromEnv builds configuration from environment variables.
func FromEnv() *Config {
	cfg := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		Model:        os.Getenv("GEMINI_MODEL"),
		GraphBaseURL: os.Getenv("GRAPH_BASE_URL"),
		TenantID:     os.Getenv("GRAPH_TENANT_ID"),
		ClientID:     os.Getenv("GRAPH_CLIENT_ID"),
		ClientSecret: os.Getenv("GRAPH_CLIENT_SECRET"),
	}
	if port := os.Getenv("PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.Port = n
		}
	}
	if verbose := os.Getenv("VERBOSE"); verbose == "1" || verbose == "true" {
		cfg.Verbose = true
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
}

// Validate checks that the configuration has everything the server needs.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: 'gemini_api_key' is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535")
	}
	// Tenant credentials are all-or-nothing.
	set := 0
	for _, v := range []string{c.TenantID, c.ClientID, c.ClientSecret} {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != 3 {
		return fmt.Errorf("config error: 'tenant_id', 'client_id' and 'client_secret' must be set together")
	}
	return nil
}
