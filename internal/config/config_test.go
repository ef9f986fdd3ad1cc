package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
api:
  environment: production
  port: "8081"
  app_url: https://meetup.example.com
  allowed_cors_domains:
    - https://meetup.example.com
  jwt_signing_key: access-secret
  jwt_refresh_signing_key: refresh-secret
  access_token_ttl: 15m
gin:
  mode: release
postgres:
  host: db
  port: "5433"
  user: meetup
  password: secret
  db: meetup_test
redis:
  addr: redis:6379
log:
  level: debug
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.True(t, conf.API.IsProduction())
	assert.Equal(t, "8081", conf.API.Port)
	assert.Equal(t, "https://meetup.example.com", conf.API.AppURL)
	assert.Equal(t, []string{"https://meetup.example.com"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, 15*time.Minute, conf.API.AccessTokenTTL)
	assert.Equal(t, 30*24*time.Hour, conf.API.RefreshTokenTTL)
	assert.True(t, conf.API.CSRFEnabled)
	assert.Equal(t, 100, conf.API.RateLimitPerMinute)
	assert.Equal(t, "release", conf.Gin.Mode)
	assert.Equal(t, "host=db user=meetup password=secret dbname=meetup_test port=5433 sslmode=disable TimeZone=UTC", conf.Postgres.DSN())
	assert.True(t, conf.Redis.Enabled())
	assert.Equal(t, "debug", conf.Log.Level)
	assert.Equal(t, 3, conf.Log.MaxBackups)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("POSTGRES_HOST", "10.0.0.7")

	conf, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "9999", conf.API.Port)
	assert.Equal(t, "10.0.0.7", conf.Postgres.Host)
}

func TestLoad_Errors(t *testing.T) {
	tcases := []struct {
		name    string
		content string
		err     error
	}{
		{
			name:    "missing access key",
			content: "api:\n  jwt_refresh_signing_key: refresh\n",
			err:     errMissingJWTSigningKey,
		},
		{
			name:    "missing refresh key",
			content: "api:\n  jwt_signing_key: access\n",
			err:     errMissingJWTRefreshSigningKey,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.ErrorIs(t, err, tc.err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})
}

func TestRedisConfigEnabled(t *testing.T) {
	var nilConf *RedisConfig
	assert.False(t, nilConf.Enabled())
	assert.False(t, (&RedisConfig{}).Enabled())
	assert.True(t, (&RedisConfig{Addr: "localhost:6379"}).Enabled())
}
