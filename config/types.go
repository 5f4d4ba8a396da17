package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	API        APIConfig        `mapstructure:"api"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Fetch      FetchConfig      `mapstructure:"fetch"`
	Characters CharactersConfig `mapstructure:"characters"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// Key signs component props. Empty means a random key per process.
	Key string `mapstructure:"key"`
}

// APIConfig holds SWAPI connection details
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retries int           `mapstructure:"retries"`
}

// CacheConfig bounds the in-memory resource cache
type CacheConfig struct {
	TTL  time.Duration `mapstructure:"ttl"`
	Size int           `mapstructure:"size"`
}

// FetchConfig controls how views wait for data
type FetchConfig struct {
	Suspense    bool `mapstructure:"suspense"`
	Concurrency int  `mapstructure:"concurrency"`
}

// CharactersConfig controls the characters column
type CharactersConfig struct {
	Names bool `mapstructure:"names"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
