package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "pt-BR", cfg.App.DefaultLocale)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 30*time.Minute, cfg.Redis.WizardTTL)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "0 6 * * *", cfg.Scheduler.GraceSpec)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("WIZARD_TTL_MINUTES", "5")
	t.Setenv("SCHEDULER_ENABLED", "false")
	t.Setenv("APP_DEFAULT_LOCALE", "es")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, 5*time.Minute, cfg.Redis.WizardTTL)
	assert.False(t, cfg.Scheduler.Enabled)
	assert.Equal(t, "es", cfg.App.DefaultLocale)
}

func TestLoad_ProduccionExigeSecreto(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "fleet", Password: "p@ss/1", DBName: "fleet", SSLMode: "disable"}
	assert.Equal(t, "postgres://fleet:p%40ss%2F1@db:5432/fleet?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
