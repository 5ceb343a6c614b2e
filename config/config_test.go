package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)

	// Upstream issuer timeouts match the backend contract:
	// 15s connect/write, 30s read.
	assert.Equal(t, 15*time.Second, cfg.Issuer.ConnectTimeout)
	assert.Equal(t, 30*time.Second, cfg.Issuer.ReadTimeout)
	assert.Empty(t, cfg.Issuer.BaseURL)

	assert.Equal(t, 15*time.Second, cfg.Identity.Timeout)

	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 0, cfg.Redis.DB)

	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "virtual-card-wallet", cfg.JWT.Issuer)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoad_FromYAMLFile(t *testing.T) {
	content := []byte(`
server:
  host: "127.0.0.1"
  port: 9090
  mode: "release"
issuer:
  base_url: "https://issuer.example.com/api/"
  public_key: "pk_live_abc"
  secret_key: "sk_live_def"
  connect_timeout: "10s"
  read_timeout: "20s"
identity:
  base_url: "https://identity.example.com/v1"
  api_key: "idp-key"
  timeout: "5s"
redis:
  host: "redis.example.com"
  port: 6380
  password: "redispwd"
  db: 2
jwt:
  secret: "my-jwt-secret"
  expiry: "12h"
  issuer: "test-wallet"
log:
  level: "debug"
  pretty: true
`)
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)

	assert.Equal(t, "https://issuer.example.com/api/", cfg.Issuer.BaseURL)
	assert.Equal(t, "pk_live_abc", cfg.Issuer.PublicKey)
	assert.Equal(t, "sk_live_def", cfg.Issuer.SecretKey)
	assert.Equal(t, 10*time.Second, cfg.Issuer.ConnectTimeout)
	assert.Equal(t, 20*time.Second, cfg.Issuer.ReadTimeout)

	assert.Equal(t, "https://identity.example.com/v1", cfg.Identity.BaseURL)
	assert.Equal(t, "idp-key", cfg.Identity.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Identity.Timeout)

	assert.Equal(t, "redis.example.com", cfg.Redis.Host)
	assert.Equal(t, 6380, cfg.Redis.Port)
	assert.Equal(t, "redispwd", cfg.Redis.Password)
	assert.Equal(t, 2, cfg.Redis.DB)

	assert.Equal(t, "my-jwt-secret", cfg.JWT.Secret)
	assert.Equal(t, 12*time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "test-wallet", cfg.JWT.Issuer)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("VCW_SERVER_PORT", "3000")
	t.Setenv("VCW_ISSUER_BASE_URL", "https://env-issuer.example.com/")
	t.Setenv("VCW_JWT_SECRET", "env-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "https://env-issuer.example.com/", cfg.Issuer.BaseURL)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
}

func TestRedisConfig_Addr(t *testing.T) {
	redisCfg := RedisConfig{
		Host: "redis.local",
		Port: 6380,
	}

	assert.Equal(t, "redis.local:6380", redisCfg.Addr())
}
