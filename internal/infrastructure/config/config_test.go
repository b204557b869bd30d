package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "RecipeRack", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 168*time.Hour, cfg.Auth.JWTExpiration)
	assert.Equal(t, "https://api.openai.com/v1", cfg.AI.BaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Model)
	assert.Equal(t, time.Minute, cfg.AI.GenerationLockTTL)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RECIPERACK_SERVER_PORT", "9090")
	t.Setenv("RECIPERACK_DATABASE_DRIVER", "postgres")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			App:      AppConfig{Name: "RecipeRack", Environment: "development"},
			Server:   ServerConfig{Port: 8080},
			Database: DatabaseConfig{Driver: "sqlite"},
		}
	}

	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("MissingAppName", func(t *testing.T) {
		cfg := base()
		cfg.App.Name = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("ProductionRequiresJWTSecret", func(t *testing.T) {
		cfg := base()
		cfg.App.Environment = "production"
		assert.Error(t, cfg.Validate())

		cfg.Auth.JWTSecret = "a-real-secret"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("InvalidPort", func(t *testing.T) {
		cfg := base()
		cfg.Server.Port = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		cfg := base()
		cfg.Database.Driver = "oracle"
		assert.Error(t, cfg.Validate())
	})
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "db.internal",
			Port:     5432,
			Username: "rack",
			Password: "hunter2",
			Database: "reciperack",
			SSLMode:  "require",
		},
	}

	assert.Equal(t,
		"host=db.internal port=5432 user=rack password=hunter2 dbname=reciperack sslmode=require",
		cfg.GetDSN(),
	)
}

func TestRedisAddr(t *testing.T) {
	cfg := &Config{Redis: RedisConfig{Host: "cache.internal", Port: 6380}}

	assert.Equal(t, "cache.internal:6380", cfg.RedisAddr())
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := &Config{App: AppConfig{Environment: "production"}}
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}
