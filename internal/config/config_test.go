package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 15*time.Minute, cfg.AccessTokenExpiry)
	assert.Equal(t, 10*24*time.Hour, cfg.RefreshTokenExpiry)
	assert.False(t, cfg.AllowAdminSignup)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("ACCESS_TOKEN_EXPIRY_SECONDS", "60")
	t.Setenv("ALLOW_ADMIN_SIGNUP", "true")
	t.Setenv("STATS_CACHE_TTL_SECONDS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, time.Minute, cfg.AccessTokenExpiry)
	assert.True(t, cfg.AllowAdminSignup)
	assert.Equal(t, 60*time.Second, cfg.StatsCacheTTL)
}
