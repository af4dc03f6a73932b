// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"filmorate/internal/observability"

	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port                   string  `mapstructure:"PORT"`
	Env                    string  `mapstructure:"APP_ENV"`
	LogLevel               string  `mapstructure:"LOG_LEVEL"`
	RedisURL               string  `mapstructure:"REDIS_URL"`
	AllowedOrigins         string  `mapstructure:"ALLOWED_ORIGINS"`
	CachePopularTTLSeconds int     `mapstructure:"CACHE_POPULAR_TTL_SECONDS"`
	RateLimitPerMinute     int     `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	SeedFile               string  `mapstructure:"SEED_FILE"`
	SeedDemoUsers          int     `mapstructure:"SEED_DEMO_USERS"`
	SeedDemoFilms          int     `mapstructure:"SEED_DEMO_FILMS"`
	TracingEnabled         bool    `mapstructure:"TRACING_ENABLED"`
	TracingExporter        string  `mapstructure:"TRACING_EXPORTER"`
	OTLPEndpoint           string  `mapstructure:"OTLP_ENDPOINT"`
	TracingSamplerRatio    float64 `mapstructure:"TRACING_SAMPLER_RATIO"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8375")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("CACHE_POPULAR_TTL_SECONDS", 30)
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 120)
	v.SetDefault("SEED_FILE", "")
	v.SetDefault("SEED_DEMO_USERS", 0)
	v.SetDefault("SEED_DEMO_FILMS", 0)
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_EXPORTER", "stdout")
	v.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	v.SetDefault("TRACING_SAMPLER_RATIO", 1.0)
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	return load(viper.New(), ".", "..", "../..")
}

func load(v *viper.Viper, paths ...string) (*Config, error) {
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AutomaticEnv()
	setDefaults(v)

	// The base file is optional.
	_ = v.ReadInConfig()

	env := v.GetString("APP_ENV")
	if env != "development" && env != "" {
		v.SetConfigName("config." + env)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		observability.GlobalLogger.Info("loaded profile-specific configuration", "file", "config."+env+".yml")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and in range.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.CachePopularTTLSeconds < 0 {
		return errors.New("CACHE_POPULAR_TTL_SECONDS must not be negative")
	}
	if c.RateLimitPerMinute < 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if c.SeedDemoUsers < 0 || c.SeedDemoFilms < 0 {
		return errors.New("SEED_DEMO_USERS and SEED_DEMO_FILMS must not be negative")
	}
	if c.TracingSamplerRatio < 0 || c.TracingSamplerRatio > 1 {
		return errors.New("TRACING_SAMPLER_RATIO must be between 0 and 1")
	}
	switch c.TracingExporter {
	case "", "stdout", "otlp":
	default:
		return fmt.Errorf("unknown TRACING_EXPORTER %q", c.TracingExporter)
	}

	if c.IsProduction() && c.AllowedOrigins == "*" {
		observability.GlobalLogger.Warn("ALLOWED_ORIGINS is set to '*' in production")
	}
	return nil
}

// IsProduction reports whether the app runs with a production profile.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// PopularTTL is the lifetime of cached popular rankings.
func (c *Config) PopularTTL() time.Duration {
	return time.Duration(c.CachePopularTTLSeconds) * time.Second
}

// Tracing returns the tracer settings for this configuration.
func (c *Config) Tracing() observability.TracingConfig {
	return observability.TracingConfig{
		ServiceName:    "filmorate",
		ServiceVersion: "1.0.0",
		Environment:    c.Env,
		Enabled:        c.TracingEnabled,
		Exporter:       c.TracingExporter,
		OTLPEndpoint:   c.OTLPEndpoint,
		SamplerRatio:   c.TracingSamplerRatio,
	}
}
