// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/odrzavanje/internal/platform/config"
	"github.com/taibuivan/odrzavanje/internal/platform/sec"
)

func setSigningEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-with-enough-entropy")
	t.Setenv("JWT_ISSUER", "odrzavanje")
	t.Setenv("JWT_AUDIENCE", "odrzavanje-clients")
}

/*
TestLoad_Defaults ensures the memory driver starts with only the signing
variables set and that every default lands where the server expects it.
*/
func TestLoad_Defaults(t *testing.T) {
	setSigningEnv(t)
	t.Setenv("STORAGE_DRIVER", config.DriverMemory)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.CacheEnabled())
	assert.Equal(t, 5*time.Minute, cfg.DirectoryCacheTTL)
	assert.Equal(t, "hmac-sha512", cfg.PasswordScheme)

	tokenCfg := cfg.TokenConfig()
	assert.Equal(t, "test-secret-with-enough-entropy", tokenCfg.Secret)
	assert.Equal(t, "odrzavanje", tokenCfg.Issuer)
	assert.Equal(t, "odrzavanje-clients", tokenCfg.Audience)
	assert.Equal(t, sec.DefaultTokenTTL, tokenCfg.TimeToLive)
}

/*
TestLoad_MissingSigningMaterial ensures each signing variable is mandatory and
that an empty value counts as missing.
*/
func TestLoad_MissingSigningMaterial(t *testing.T) {
	for _, name := range []string{"JWT_SECRET", "JWT_ISSUER", "JWT_AUDIENCE"} {
		t.Run(name, func(t *testing.T) {
			setSigningEnv(t)
			t.Setenv("STORAGE_DRIVER", config.DriverMemory)
			t.Setenv(name, "")

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

/*
TestLoad_PostgresNeedsDatabaseURL ensures the cross-field rule reports a
configuration error naming the missing variable.
*/
func TestLoad_PostgresNeedsDatabaseURL(t *testing.T) {
	setSigningEnv(t)
	t.Setenv("STORAGE_DRIVER", config.DriverPostgres)
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load()
	require.Error(t, err)

	var cfgErr *sec.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "DATABASE_URL", cfgErr.Field)
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &config.Config{StorageDriver: "sqlite"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORAGE_DRIVER")
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &config.Config{ExtraOrigins: " https://a.example ,,https://b.example"}

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
	assert.Empty(t, (&config.Config{}).AllowedOrigins())
}

func TestLoadTokenSettings(t *testing.T) {
	setSigningEnv(t)
	t.Setenv("JWT_TTL", "1h")

	settings, err := config.LoadTokenSettings()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, settings.TokenConfig().TimeToLive)
}
