package config

import (
	"testing"
	"time"

	"github.com/dom/scrim-team-builder/internal/teambuilder"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "TEAMBUILDER_STRATEGY", "TEAMBUILDER_MAX_ATTEMPTS", "CORS_ALLOWED_ORIGINS", "GENERATION_RETENTION_HOURS"} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("TEAMBUILDER_STRATEGY", "exhaustive")
	t.Setenv("TEAMBUILDER_MAX_ATTEMPTS", "1000")
	t.Setenv("GENERATION_RETENTION_HOURS", "168")
	t.Setenv("PORT", "8080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, teambuilder.StrategyExhaustive, cfg.TeamBuilderStrategy)
	assert.Equal(t, teambuilder.DefaultMaxAttempts, cfg.TeamBuilderMaxAttempts)
	assert.Equal(t, 7*24*time.Hour, cfg.GenerationRetention)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TEAMBUILDER_STRATEGY", "greedy")
	t.Setenv("TEAMBUILDER_MAX_ATTEMPTS", "50")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://scrims.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, teambuilder.StrategyGreedy, cfg.TeamBuilderStrategy)
	assert.Equal(t, 50, cfg.TeamBuilderMaxAttempts)
	assert.Equal(t, []string{"http://localhost:3000", "https://scrims.example.com"}, cfg.AllowedOrigins)

	engine := teambuilder.New(cfg.EngineOptions()...)
	assert.Equal(t, teambuilder.StrategyGreedy, engine.Strategy())
	assert.Equal(t, 50, engine.MaxAttempts())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown strategy", key: "TEAMBUILDER_STRATEGY", val: "random"},
		{name: "bad log level", key: "LOG_LEVEL", val: "loud"},
		{name: "non-positive attempts", key: "TEAMBUILDER_MAX_ATTEMPTS", val: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", "info")
			t.Setenv("TEAMBUILDER_STRATEGY", "exhaustive")
			t.Setenv("TEAMBUILDER_MAX_ATTEMPTS", "10")
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
