package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/acadmate/internal/flagx"
	"github.com/dmitrijs2005/acadmate/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for config file unmarshalling. Zero
// values leave the corresponding Config field unchanged.
type FileConfig struct {
	StorageDriver  string `json:"storage_driver" yaml:"storage_driver"`
	StorageDSN     string `json:"storage_dsn" yaml:"storage_dsn"`
	RedisAddr      string `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword  string `json:"redis_password" yaml:"redis_password"`
	RedisNamespace string `json:"redis_namespace" yaml:"redis_namespace"`
	QuotaBytes     *int64 `json:"quota_bytes" yaml:"quota_bytes"`

	PasswordScheme string `json:"password_scheme" yaml:"password_scheme"`
	LogLevel       string `json:"log_level" yaml:"log_level"`

	GeminiAPIKey  string `json:"gemini_api_key" yaml:"gemini_api_key"`
	GeminiModel   string `json:"gemini_model" yaml:"gemini_model"`
	GeminiBaseURL string `json:"gemini_base_url" yaml:"gemini_base_url"`

	PomodoroWork  timex.Duration `json:"pomodoro_work" yaml:"pomodoro_work"`
	PomodoroBreak timex.Duration `json:"pomodoro_break" yaml:"pomodoro_break"`

	Portals []Portal `json:"portals" yaml:"portals"`

	BackupDir string       `json:"backup_dir" yaml:"backup_dir"`
	S3        FileS3Config `json:"s3" yaml:"s3"`
}

type FileS3Config struct {
	Bucket          string `json:"bucket" yaml:"bucket"`
	Region          string `json:"region" yaml:"region"`
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
	Prefix          string `json:"prefix" yaml:"prefix"`
	UsePathStyle    bool   `json:"use_path_style" yaml:"use_path_style"`
}

// parseFile overlays Config with values loaded from the file named by -c or
// -config. It panics on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigPath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.StorageDriver, fc.StorageDriver)
	setString(&cfg.StorageDSN, fc.StorageDSN)
	setString(&cfg.RedisAddr, fc.RedisAddr)
	setString(&cfg.RedisPassword, fc.RedisPassword)
	setString(&cfg.RedisNamespace, fc.RedisNamespace)
	if fc.QuotaBytes != nil {
		cfg.QuotaBytes = *fc.QuotaBytes
	}

	setString(&cfg.PasswordScheme, fc.PasswordScheme)
	setString(&cfg.LogLevel, fc.LogLevel)

	setString(&cfg.GeminiAPIKey, fc.GeminiAPIKey)
	setString(&cfg.GeminiModel, fc.GeminiModel)
	setString(&cfg.GeminiBaseURL, fc.GeminiBaseURL)

	if fc.PomodoroWork.Duration > 0 {
		cfg.PomodoroWork = fc.PomodoroWork.Duration
	}
	if fc.PomodoroBreak.Duration > 0 {
		cfg.PomodoroBreak = fc.PomodoroBreak.Duration
	}

	if len(fc.Portals) > 0 {
		cfg.Portals = fc.Portals
	}

	setString(&cfg.BackupDir, fc.BackupDir)
	setString(&cfg.S3.Bucket, fc.S3.Bucket)
	setString(&cfg.S3.Region, fc.S3.Region)
	setString(&cfg.S3.Endpoint, fc.S3.Endpoint)
	setString(&cfg.S3.AccessKeyID, fc.S3.AccessKeyID)
	setString(&cfg.S3.SecretAccessKey, fc.S3.SecretAccessKey)
	setString(&cfg.S3.Prefix, fc.S3.Prefix)
	if fc.S3.UsePathStyle {
		cfg.S3.UsePathStyle = true
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
