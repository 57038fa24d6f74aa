package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// envFile is loaded before the environment is read. Variables already set in
// the process environment win over the file.
var envFile = ".env"

// parseEnv overlays Config with environment variables. It panics when a
// numeric variable cannot be parsed or the .env file is malformed.
//
//	ACADMATE_STORAGE_DRIVER, ACADMATE_STORAGE_DSN, ACADMATE_QUOTA_BYTES,
//	ACADMATE_REDIS_ADDR, ACADMATE_REDIS_PASSWORD, ACADMATE_REDIS_NAMESPACE,
//	ACADMATE_PASSWORD_SCHEME, ACADMATE_LOG_LEVEL, ACADMATE_BACKUP_DIR,
//	GEMINI_API_KEY, GEMINI_MODEL, GEMINI_BASE_URL,
//	ACADMATE_S3_BUCKET, ACADMATE_S3_ENDPOINT, ACADMATE_S3_PREFIX,
//	AWS_REGION, AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY
func parseEnv(cfg *Config) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("load %s: %w", envFile, err))
	}

	setString(&cfg.StorageDriver, os.Getenv("ACADMATE_STORAGE_DRIVER"))
	setString(&cfg.StorageDSN, os.Getenv("ACADMATE_STORAGE_DSN"))
	setString(&cfg.RedisAddr, os.Getenv("ACADMATE_REDIS_ADDR"))
	setString(&cfg.RedisPassword, os.Getenv("ACADMATE_REDIS_PASSWORD"))
	setString(&cfg.RedisNamespace, os.Getenv("ACADMATE_REDIS_NAMESPACE"))
	if v := os.Getenv("ACADMATE_QUOTA_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			panic(fmt.Errorf("ACADMATE_QUOTA_BYTES: %w", err))
		}
		cfg.QuotaBytes = n
	}

	setString(&cfg.PasswordScheme, os.Getenv("ACADMATE_PASSWORD_SCHEME"))
	setString(&cfg.LogLevel, os.Getenv("ACADMATE_LOG_LEVEL"))
	setString(&cfg.BackupDir, os.Getenv("ACADMATE_BACKUP_DIR"))

	setString(&cfg.GeminiAPIKey, os.Getenv("GEMINI_API_KEY"))
	setString(&cfg.GeminiModel, os.Getenv("GEMINI_MODEL"))
	setString(&cfg.GeminiBaseURL, os.Getenv("GEMINI_BASE_URL"))

	setString(&cfg.S3.Bucket, os.Getenv("ACADMATE_S3_BUCKET"))
	setString(&cfg.S3.Endpoint, os.Getenv("ACADMATE_S3_ENDPOINT"))
	setString(&cfg.S3.Prefix, os.Getenv("ACADMATE_S3_PREFIX"))
	setString(&cfg.S3.Region, os.Getenv("AWS_REGION"))
	setString(&cfg.S3.AccessKeyID, os.Getenv("AWS_ACCESS_KEY_ID"))
	setString(&cfg.S3.SecretAccessKey, os.Getenv("AWS_SECRET_ACCESS_KEY"))
}
