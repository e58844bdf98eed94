package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/cineparadis/images"
	"github.com/s0up4200/cineparadis/tmdb"
)

// EnvPrefix prefixes environment overrides, e.g. CINEPARADIS_LOGGING_LEVEL
const EnvPrefix = "CINEPARADIS"

// Load loads the configuration from file and environment. The file is
// optional unless configPath is given explicitly.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("tmdb.api_key", EnvPrefix+"_TMDB_API_KEY", "TMDB_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".cineparadis"))
		}

		v.AddConfigPath("/etc/cineparadis/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// TMDB defaults
	v.SetDefault("tmdb.base_url", tmdb.DefaultBaseURL)
	v.SetDefault("tmdb.language", tmdb.DefaultLanguage)
	v.SetDefault("tmdb.timeout", "15s")
	v.SetDefault("tmdb.fetch_timeout", "0s")
	v.SetDefault("tmdb.rate_limit", 20.0)
	v.SetDefault("tmdb.rate_burst", 5)

	// Image defaults
	v.SetDefault("images.base_url", images.DefaultBaseURL)
	v.SetDefault("images.poster_placeholder", images.DefaultPosterPlaceholder)
	v.SetDefault("images.landscape_placeholder", images.DefaultLandscapePlaceholder)
	v.SetDefault("images.no_picture", images.DefaultNoPicture)

	// Site defaults
	v.SetDefault("site.name", "CineParadis")
	v.SetDefault("site.base_url", "http://localhost:8080")

	// Server defaults
	v.SetDefault("server.listen", ":8080")
	v.SetDefault("server.rate_limit_requests", 60)
	v.SetDefault("server.rate_limit_window", "1m")

	v.SetDefault("filter.presets", map[string]string{})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.TMDB.APIKey == "" || cfg.TMDB.APIKey == "your-api-key-here" {
		return fmt.Errorf("tmdb.api_key must be set (or export TMDB_API_KEY)")
	}

	if cfg.TMDB.BaseURL == "" {
		return fmt.Errorf("tmdb.base_url is required")
	}

	if cfg.TMDB.Timeout < 0 || cfg.TMDB.FetchTimeout < 0 {
		return fmt.Errorf("tmdb timeouts must not be negative")
	}

	if cfg.TMDB.RateLimit < 0 {
		return fmt.Errorf("invalid tmdb.rate_limit: %v", cfg.TMDB.RateLimit)
	}

	if cfg.Server.RateLimitRequests < 0 {
		return fmt.Errorf("invalid server.rate_limit_requests: %d", cfg.Server.RateLimitRequests)
	}
	if cfg.Server.RateLimitRequests > 0 && cfg.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("server.rate_limit_window must be positive when rate limiting is enabled")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
