package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			APIKey:  "valid-api-key",
			BaseURL: "https://api.themoviedb.org/3",
			Timeout: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.TMDB.APIKey = "" },
			wantErr: "tmdb.api_key must be set",
		},
		{
			name:    "placeholder api key",
			mutate:  func(c *Config) { c.TMDB.APIKey = "your-api-key-here" },
			wantErr: "tmdb.api_key must be set",
		},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.TMDB.BaseURL = "" },
			wantErr: "tmdb.base_url is required",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.TMDB.FetchTimeout = -time.Second },
			wantErr: "must not be negative",
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *Config) { c.TMDB.RateLimit = -1 },
			wantErr: "invalid tmdb.rate_limit",
		},
		{
			name: "server rate limit without window",
			mutate: func(c *Config) {
				c.Server.RateLimitRequests = 10
				c.Server.RateLimitWindow = 0
			},
			wantErr: "rate_limit_window must be positive",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid logging level: verbose",
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tmdb:
  api_key: file-key
  language: fr
  fetch_timeout: 5s
site:
  name: Test Site
filter:
  presets:
    top: "VoteAverage >= 8"
logging:
  level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.TMDB.APIKey)
	assert.Equal(t, "fr", cfg.TMDB.Language)
	assert.Equal(t, 5*time.Second, cfg.TMDB.FetchTimeout)
	assert.Equal(t, 15*time.Second, cfg.TMDB.Timeout, "default kept")
	assert.Equal(t, "Test Site", cfg.Site.Name)
	assert.Equal(t, "VoteAverage >= 8", cfg.Filter.Presets["top"])
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, time.Minute, cfg.Server.RateLimitWindow)
}

func TestLoadAPIKeyFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0o600))

	t.Run("TMDB_API_KEY", func(t *testing.T) {
		t.Setenv("TMDB_API_KEY", "env-key")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "env-key", cfg.TMDB.APIKey)
	})

	t.Run("prefixed variable", func(t *testing.T) {
		t.Setenv("CINEPARADIS_TMDB_API_KEY", "prefixed-key")
		t.Setenv("CINEPARADIS_SERVER_LISTEN", ":9999")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "prefixed-key", cfg.TMDB.APIKey)
		assert.Equal(t, ":9999", cfg.Server.Listen)
	})

	t.Run("missing", func(t *testing.T) {
		t.Setenv("TMDB_API_KEY", "")
		t.Setenv("CINEPARADIS_TMDB_API_KEY", "")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tmdb.api_key must be set")
	})
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "env-key")
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")
}
