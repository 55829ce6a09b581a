package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Duplicate registry
	RedisURL    string        `env:"REDIS_URL"    envDefault:""`
	RegistryTTL time.Duration `env:"REGISTRY_TTL" envDefault:"0"` // 0 = never expire

	// HTTP server
	HTTPPort      string `env:"HTTP_PORT"       envDefault:"8080"`
	HTTPBodyLimit int    `env:"HTTP_BODY_LIMIT" envDefault:"33554432"` // 32 MiB uploads

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
