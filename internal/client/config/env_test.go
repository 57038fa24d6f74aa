package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withEnvFile(t *testing.T, content string) {
	t.Helper()
	orig := envFile
	t.Cleanup(func() { envFile = orig })

	envFile = filepath.Join(t.TempDir(), ".env")
	if content != "" {
		require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
	}
}

func TestParseEnv_Variables(t *testing.T) {
	withEnvFile(t, "")

	t.Setenv("ACADMATE_STORAGE_DRIVER", "redis")
	t.Setenv("ACADMATE_REDIS_ADDR", "cache:6379")
	t.Setenv("ACADMATE_QUOTA_BYTES", "1024")
	t.Setenv("GEMINI_API_KEY", "secret-key")
	t.Setenv("ACADMATE_S3_BUCKET", "bkt")
	t.Setenv("AWS_REGION", "eu-central-1")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, DriverRedis, cfg.StorageDriver)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, int64(1024), cfg.QuotaBytes)
	assert.Equal(t, "secret-key", cfg.GeminiAPIKey)
	assert.Equal(t, "bkt", cfg.S3.Bucket)
	assert.Equal(t, "eu-central-1", cfg.S3.Region)
	assert.Equal(t, "acadmate.db", cfg.StorageDSN)
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	withEnvFile(t, "GEMINI_MODEL=gemini-test\nACADMATE_BACKUP_DIR=/tmp/acadmate-backups\n")

	// values already in the environment win over the file
	t.Setenv("GEMINI_MODEL", "from-process")
	t.Setenv("ACADMATE_BACKUP_DIR", "")
	require.NoError(t, os.Unsetenv("ACADMATE_BACKUP_DIR"))

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "from-process", cfg.GeminiModel)
	assert.Equal(t, "/tmp/acadmate-backups", cfg.BackupDir)
}

func TestParseEnv_BadQuotaPanics(t *testing.T) {
	withEnvFile(t, "")
	t.Setenv("ACADMATE_QUOTA_BYTES", "lots")

	require.Panics(t, func() { parseEnv(&Config{}) })
}
