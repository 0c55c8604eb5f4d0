package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"port": 9090,
		"database_url": "postgres://localhost/resumes",
		"gemini_api_key": "key-123",
		"model": "gemini-2.5-flash"
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/resumes", cfg.DatabaseURL)
	assert.Equal(t, "key-123", cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
}

func TestLoadAppliesDefaultPort(t *testing.T) {
	path := writeConfig(t, `{"database_url": "postgres://x", "gemini_api_key": "k"}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "{not json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "Complete config",
			cfg:     Config{Port: 8080, DatabaseURL: "postgres://x", GeminiAPIKey: "k"},
			wantErr: false,
		},
		{
			name:    "Missing database URL",
			cfg:     Config{Port: 8080, GeminiAPIKey: "k"},
			wantErr: true,
		},
		{
			name:    "Missing API key",
			cfg:     Config{Port: 8080, DatabaseURL: "postgres://x"},
			wantErr: true,
		},
		{
			name:    "Port out of range",
			cfg:     Config{Port: 70000, DatabaseURL: "postgres://x", GeminiAPIKey: "k"},
			wantErr: true,
		},
		{
			name: "Partial tenant credentials",
			cfg: Config{
				Port: 8080, DatabaseURL: "postgres://x", GeminiAPIKey: "k",
				TenantID: "tenant-only",
			},
			wantErr: true,
		},
		{
			name: "Full tenant credentials",
			cfg: Config{
				Port: 8080, DatabaseURL: "postgres://x", GeminiAPIKey: "k",
				TenantID: "t", ClientID: "c", ClientSecret: "s",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("PORT", "9000")
	t.Setenv("VERBOSE", "true")

	cfg := FromEnv()

	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.Equal(t, "env-key", cfg.GeminiAPIKey)
	assert.Equal(t, 9000, cfg.Port)
	assert.True(t, cfg.Verbose)
}
