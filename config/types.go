package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Images  ImagesConfig  `mapstructure:"images"`
	Site    SiteConfig    `mapstructure:"site"`
	Server  ServerConfig  `mapstructure:"server"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds TMDB API connection details
type TMDBConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	Language     string        `mapstructure:"language"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	RateLimit    float64       `mapstructure:"rate_limit"`
	RateBurst    int           `mapstructure:"rate_burst"`
}

// ImagesConfig holds the image CDN root and placeholder artwork
type ImagesConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	Poster    string `mapstructure:"poster_placeholder"`
	Landscape string `mapstructure:"landscape_placeholder"`
	NoPicture string `mapstructure:"no_picture"`
}

// SiteConfig identifies the site in page metadata
type SiteConfig struct {
	Name    string `mapstructure:"name"`
	BaseURL string `mapstructure:"base_url"`
}

// ServerConfig contains HTTP API settings
type ServerConfig struct {
	Listen            string        `mapstructure:"listen"`
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`
}

// FilterConfig contains named recommendation filter presets
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
