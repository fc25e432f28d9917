// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

Signing material (JWT_SECRET, JWT_ISSUER, JWT_AUDIENCE) is mandatory. A missing
value stops the process at startup; no default is ever substituted.
*/
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/odrzavanje/internal/platform/sec"
)

// # Storage Drivers

const (
	// DriverPostgres keeps accounts in the users.account table.
	DriverPostgres = "postgres"

	// DriverMemory keeps accounts in process memory. Development and tests only.
	DriverMemory = "memory"
)

// # Configuration Schema

// Config holds all runtime configuration for the API server and the operator CLI.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// StorageDriver selects the account directory backend.
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`

	// Relational Database (PostgreSQL). Required by the postgres driver only.
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis). Empty disables the directory cache.
	RedisURL          string        `env:"REDIS_URL"`
	DirectoryCacheTTL time.Duration `env:"DIRECTORY_CACHE_TTL" envDefault:"5m"`

	// Token signing
	Token TokenSettings

	// PasswordScheme selects the credential hasher (hmac-sha512 or argon2id).
	PasswordScheme string `env:"PASSWORD_SCHEME" envDefault:"hmac-sha512"`

	// Cross-Origin Resource Sharing, comma separated.
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// TokenSettings is the signing subset of [Config]. The operator CLI loads it
// on its own through [LoadTokenSettings].
type TokenSettings struct {
	JWTSecret   string        `env:"JWT_SECRET,required,notEmpty"`
	JWTIssuer   string        `env:"JWT_ISSUER,required,notEmpty"`
	JWTAudience string        `env:"JWT_AUDIENCE,required,notEmpty"`
	JWTTTL      time.Duration `env:"JWT_TTL" envDefault:"168h"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the rules that span several fields.
func (c *Config) Validate() error {
	var errs []error

	switch c.StorageDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, &sec.ConfigurationError{Field: "DATABASE_URL", Reason: "required by the postgres storage driver"})
		}
	case DriverMemory:
	default:
		errs = append(errs, &sec.ConfigurationError{Field: "STORAGE_DRIVER", Reason: fmt.Sprintf("unknown driver %q", c.StorageDriver)})
	}

	if c.Token.JWTTTL < 0 {
		errs = append(errs, &sec.ConfigurationError{Field: "JWT_TTL", Reason: "must not be negative"})
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// TokenConfig returns the signing settings for [sec.NewTokenService].
func (c *Config) TokenConfig() sec.TokenConfig {
	return c.Token.TokenConfig()
}

// LoadTokenSettings parses only the JWT_* variables.
func LoadTokenSettings() (*TokenSettings, error) {
	settings := &TokenSettings{}
	if err := env.Parse(settings); err != nil {
		return nil, fmt.Errorf("config: failed to parse token settings: %w", err)
	}
	return settings, nil
}

// TokenConfig converts the settings for [sec.NewTokenService].
func (t *TokenSettings) TokenConfig() sec.TokenConfig {
	return sec.TokenConfig{
		Secret:     t.JWTSecret,
		Issuer:     t.JWTIssuer,
		Audience:   t.JWTAudience,
		TimeToLive: t.JWTTTL,
	}
}

// AllowedOrigins splits EXTRA_ORIGINS into trimmed, non-empty entries.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CacheEnabled reports whether a Redis URL was supplied.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}
