package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:               8000,
		Env:                "development",
		DatabaseURL:        "postgres://x",
		JWTSecret:          "secret",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "EnerGen Finanzas", cfg.AppName)
	assert.Equal(t, 8, cfg.JWTExpirationHours)
	assert.Equal(t, 60, cfg.DashboardCacheTTLSeconds)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9100")
	t.Setenv("JWT_SECRET", "override")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "override", cfg.JWTSecret)
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AggregatesProblems(t *testing.T) {
	cfg := validConfig()
	cfg.DatabaseURL = ""
	cfg.Port = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
	assert.Contains(t, err.Error(), "PORT must be between")
}

func TestValidate_ProductionRejectsDevSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.JWTSecret = devJWTSecret
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET must be set in production")
}

func TestMailFrom_FallsBackToUser(t *testing.T) {
	cfg := validConfig()
	cfg.SMTPUser = "reportes@energen.com"
	assert.Equal(t, "reportes@energen.com", cfg.MailFrom())
	cfg.SMTPFrom = "EnerGen <no-reply@energen.com>"
	assert.Equal(t, "EnerGen <no-reply@energen.com>", cfg.MailFrom())
}

func TestAllowedOrigins(t *testing.T) {
	c := &Config{CORSOrigins: " https://a.com, ,https://b.com "}
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, c.AllowedOrigins())
	assert.Empty(t, (&Config{}).AllowedOrigins())
}
