package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "TLS_CERT", "TLS_KEY",
		"SLACK_SIGNING_SECRET", "SLACK_CLIENT_ID", "SLACK_CLIENT_SECRET",
		"SLACK_SCOPES", "SLACK_USER_SCOPES", "SLACK_REDIRECT_URI",
		"STATE_STORE", "STATE_SECRET",
		"REDIS_ADDRESS", "REDIS_PASSWORD", "REDIS_DB", "REDIS_POOL_SIZE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "memory", cfg.StateStore)
	assert.Equal(t, "localhost:6379", cfg.RedisAddress)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 10, cfg.RedisPoolSize)
	assert.Nil(t, cfg.Scopes)
	assert.False(t, cfg.OAuthEnabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SLACK_SIGNING_SECRET", "sssh")
	t.Setenv("SLACK_CLIENT_ID", "111.111")
	t.Setenv("SLACK_CLIENT_SECRET", "xxx")
	t.Setenv("SLACK_SCOPES", "chat:write, commands,")
	t.Setenv("SLACK_USER_SCOPES", "search:read")
	t.Setenv("STATE_STORE", "redis")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "sssh", cfg.SigningSecret)
	assert.True(t, cfg.OAuthEnabled())
	assert.Equal(t, []string{"chat:write", "commands"}, cfg.Scopes)
	assert.Equal(t, []string{"search:read"}, cfg.UserScopes)
	assert.Equal(t, "redis", cfg.StateStore)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := Load()
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:          "8080",
			SigningSecret: "sssh",
			StateStore:    "memory",
			RedisDB:       0,
		}
	}

	t.Run("accepts minimal config", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("requires signing secret", func(t *testing.T) {
		cfg := valid()
		cfg.SigningSecret = ""
		assert.ErrorContains(t, cfg.Validate(), "SLACK_SIGNING_SECRET")
	})

	t.Run("rejects unknown state store", func(t *testing.T) {
		cfg := valid()
		cfg.StateStore = "etcd"
		assert.ErrorContains(t, cfg.Validate(), "STATE_STORE")
	})

	t.Run("requires client secret with client id", func(t *testing.T) {
		cfg := valid()
		cfg.ClientID = "111.111"
		assert.ErrorContains(t, cfg.Validate(), "SLACK_CLIENT_SECRET")
	})

	t.Run("requires state secret for signed store", func(t *testing.T) {
		cfg := valid()
		cfg.ClientID = "111.111"
		cfg.ClientSecret = "xxx"
		cfg.StateStore = "signed"
		assert.ErrorContains(t, cfg.Validate(), "STATE_SECRET")
	})

	t.Run("rejects out of range redis db", func(t *testing.T) {
		cfg := valid()
		cfg.RedisDB = 16
		assert.ErrorContains(t, cfg.Validate(), "REDIS_DB")
	})

	t.Run("rejects half-configured tls", func(t *testing.T) {
		cfg := valid()
		cfg.TLSCert = "cert.pem"
		assert.ErrorContains(t, cfg.Validate(), "TLS_CERT")
	})
}
