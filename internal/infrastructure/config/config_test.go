package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 7, cfg.Auth.JWT.RefreshExpDays)
	assert.Equal(t, "0 5 0 * * *", cfg.Scheduler.ExpirySpec)
	assert.Same(t, cfg, Get())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TENANTDESK_SERVER_PORT", "9191")
	t.Setenv("TENANTDESK_DATABASE_DRIVER", "sqlite")
	t.Setenv("TENANTDESK_AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load("test")
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "s3cret", cfg.Auth.JWT.Secret)
	assert.Equal(t, "test", cfg.Server.Mode)
}

func TestLoad_ReleaseRequiresSecret(t *testing.T) {
	_, err := Load("release")
	assert.Error(t, err)
}
