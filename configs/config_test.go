package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "GO_ENV", "DATABASE_URL", "JWT_SECRET", "ACCESS_TOKEN_TTL", "BCRYPT_COST",
		"LOG_LEVEL", "LOG_PRETTY", "CORS_ALLOW_ORIGINS", "AUTH_RATE_LIMIT", "SEED_DEMO_DATA",
		"HEALTH_CHECK_SCHEDULE", "DB_MAX_CONNS", "DB_MIN_CONNS", "DB_MAX_CONN_LIFETIME", "DB_MAX_CONN_IDLE_TIME",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "sqlite:trade_tracker.db", cfg.Database.URL)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowOrigins)
	assert.Equal(t, 5.0, cfg.Server.AuthRateLimit)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.True(t, cfg.Log.Pretty)
	assert.False(t, cfg.Seed.DemoData)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, int32(2), cfg.Database.MinConns)
	assert.Equal(t, time.Hour, cfg.Database.MaxConnLifetime)
	assert.Equal(t, 30*time.Minute, cfg.Database.MaxConnIdleTime)

	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.Auth.JWTSecret)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("GO_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://localhost/trades")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SEED_DEMO_DATA", "true")
	t.Setenv("AUTH_RATE_LIMIT", "not-a-number")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("DB_MIN_CONNS", "5")
	t.Setenv("DB_MAX_CONN_LIFETIME", "15m")

	cfg := Load()
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/trades", cfg.Database.URL)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowOrigins)
	assert.True(t, cfg.Seed.DemoData)
	assert.Equal(t, 5.0, cfg.Server.AuthRateLimit)
	assert.False(t, cfg.Log.Pretty)
	assert.Equal(t, int32(25), cfg.Database.MaxConns)
	assert.Equal(t, int32(5), cfg.Database.MinConns)
	assert.Equal(t, 15*time.Minute, cfg.Database.MaxConnLifetime)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
}

func TestValidate_ProductionRequiresSecretAndDatabase(t *testing.T) {
	clearEnv(t)
	t.Setenv("GO_ENV", "production")

	cfg := Load()
	assert.Error(t, cfg.Validate())

	t.Setenv("DATABASE_URL", "postgres://localhost/trades")
	cfg = Load()
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
}

func TestValidate_PoolSizing(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_MAX_CONNS", "4")
	t.Setenv("DB_MIN_CONNS", "8")

	cfg := Load()
	assert.ErrorContains(t, cfg.Validate(), "DB_MIN_CONNS")

	t.Setenv("DB_MAX_CONNS", "0")
	cfg = Load()
	assert.ErrorContains(t, cfg.Validate(), "DB_MAX_CONNS")
}
