package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithEnv_EnvOverrides(t *testing.T) {
	t.Setenv("AUTH_SECRET", "secret-from-env")
	t.Setenv("HTTP_PORT", "8088")
	t.Setenv("ENV_LOG_LEVEL", "debug")

	cfg, err := LoadWithEnv[Config]("no-such-profile")
	require.NoError(t, err)

	assert.Equal(t, "secret-from-env", cfg.Auth.Secret)
	assert.Equal(t, 8088, cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.Env.Log.Level)
}

func TestNew_AppliesDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	t.Setenv("AUTH_SECRET", "local-secret")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env.Env)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "/uploads", cfg.Upload.PublicPrefix)
}

func TestNew_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_SECRET", "")

	cfg, err := New()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.secret")
}
