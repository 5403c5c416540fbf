package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeTestConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeTestConfigFile(t, `
log_level: debug
ops_endpoints_enable: true
server:
  host: 127.0.0.1
  port: "8080"
  request_timeout: 3s
changefeed:
  enabled: true
redis:
  host: localhost
  port: "6379"
boltdb:
  filepath: ./archive.db
`)
	config, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, config.LogLevel)
	assert.True(t, config.OpsEndpointsEnable)
	assert.Equal(t, "127.0.0.1", config.Server.Host)
	assert.Equal(t, "8080", config.Server.Port)
	assert.Equal(t, 3*time.Second, config.Server.RequestTimeout)
	assert.True(t, config.ChangeFeed.Enabled)
	assert.Equal(t, "./archive.db", config.BoltDB.FilePath)

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := LoadConfigFile(writeTestConfigFile(t, "server: [host"))
		assert.Error(t, err)
	})
}

func TestLoadConfigEnvs(t *testing.T) {
	t.Setenv("BSA_SERVER_PORT", "9090")
	t.Setenv("BSA_LOG_LEVEL", "warn")
	t.Setenv("BSA_CHANGEFEED_ENABLED", "true")
	t.Setenv("BSA_REDIS_PASSWORD", "s3cr3t")
	t.Setenv("BSA_BOLTDB_FILE_PATH", "/tmp/archive.db")

	config := &Config{Server: ServerConfig{Host: "0.0.0.0", Port: "8080"}}
	require.NoError(t, LoadConfigEnvs(ConfigEnvPrefix, config))
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, "9090", config.Server.Port)
	assert.Equal(t, zapcore.WarnLevel, config.LogLevel)
	assert.True(t, config.ChangeFeed.Enabled)
	assert.Equal(t, "s3cr3t", config.Redis.Password)
	assert.Equal(t, "/tmp/archive.db", config.BoltDB.FilePath)
}

func TestInitConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config := &Config{Server: ServerConfig{Host: "0.0.0.0", Port: "8080"}}
		require.NoError(t, InitConfig(config, "abc123", "v1.0.0", "2023-07-02"))
		assert.Equal(t, "abc123", config.GitCommit)
		assert.Equal(t, "v1.0.0", config.GitTag)
		assert.Equal(t, "2023-07-02", config.BuildTime)
		assert.Equal(t, "./logs", config.LogFolder)
		assert.Equal(t, 100, config.LogMaxSize)
		assert.Equal(t, 10*time.Second, config.Server.ReadTimeout)
		assert.Equal(t, 15*time.Second, config.Server.WriteTimeout)
		assert.Equal(t, 10*time.Second, config.Server.RequestTimeout)
		assert.Equal(t, 30*time.Second, config.Server.ShutdownTimeout)
		assert.Empty(t, config.BoltDB.BucketName)
	})

	t.Run("build values do not override with empty", func(t *testing.T) {
		config := &Config{GitTag: "v0.1.0", Server: ServerConfig{Host: "0.0.0.0", Port: "8080"}}
		require.NoError(t, InitConfig(config, "", "", ""))
		assert.Equal(t, "v0.1.0", config.GitTag)
	})

	t.Run("missing server address", func(t *testing.T) {
		assert.Error(t, InitConfig(&Config{Server: ServerConfig{Host: "0.0.0.0"}}, "", "", ""))
	})

	t.Run("change feed requirements", func(t *testing.T) {
		config := &Config{
			Server:     ServerConfig{Host: "0.0.0.0", Port: "8080"},
			ChangeFeed: ChangeFeedConfig{Enabled: true},
		}
		assert.Error(t, InitConfig(config, "", "", ""))

		config.Redis = RedisConfig{Host: "localhost", Port: "6379"}
		assert.Error(t, InitConfig(config, "", "", ""))

		config.BoltDB.FilePath = "./archive.db"
		require.NoError(t, InitConfig(config, "", "", ""))
		assert.Equal(t, "books", config.BoltDB.BucketName)
		assert.Equal(t, 5*time.Second, config.BoltDB.Timeout)
	})
}
