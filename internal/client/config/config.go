package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/acadmate/internal/cryptox"
	"github.com/dmitrijs2005/acadmate/internal/kvstore"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Portal is a named external web page the user can launch.
type Portal struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// S3Config points snapshot backups at S3-compatible object storage. Backups
// go to the local BackupDir when Bucket is empty.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
	UsePathStyle    bool
}

// Config holds runtime settings for the AcadMate CLI.
//
// StorageDSN is interpreted by the selected driver: a file path for sqlite,
// a connection URL for postgres. The redis driver connects to RedisAddr and
// the memory driver ignores both.
type Config struct {
	StorageDriver  string
	StorageDSN     string
	RedisAddr      string
	RedisPassword  string
	RedisNamespace string
	QuotaBytes     int64

	PasswordScheme string
	LogLevel       string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	PomodoroWork  time.Duration
	PomodoroBreak time.Duration

	Portals []Portal

	BackupDir string
	S3        S3Config
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageDriver = DriverSQLite
	c.StorageDSN = "acadmate.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.QuotaBytes = kvstore.DefaultQuota
	c.PasswordScheme = cryptox.SchemePlain
	c.LogLevel = "info"
	c.GeminiModel = "gemini-2.5-flash"
	c.GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	c.PomodoroWork = 25 * time.Minute
	c.PomodoroBreak = 5 * time.Minute
	c.Portals = []Portal{
		{Name: "KL University ERP", URL: "https://newerp.kluniversity.in/"},
		{Name: "KLH LMS Portal", URL: "https://bmp-lms.klh.edu.in/"},
	}
	c.BackupDir = "backups"
	c.S3 = S3Config{Region: "us-east-1", Prefix: "acadmate/"}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// Validate rejects settings that would otherwise be silently ignored.
func (c *Config) Validate() error {
	if err := cryptox.CheckScheme(c.PasswordScheme); err != nil {
		return fmt.Errorf("password scheme: %w", err)
	}
	return nil
}
