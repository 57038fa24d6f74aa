// Package config loads runtime configuration for the AcadMate CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected via -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Environment, after loading a .env file from the working directory
//     when one exists (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-s string   storage driver: sqlite, postgres, redis or memory
//	-d string   storage DSN (sqlite file path or postgres URL)
//	-q int      storage quota in bytes, 0 disables the limit
//	-l string   log level: debug, info, warn or error
//
// # File schema
//
// Durations use timex.Duration, so values can be strings like "25m" or
// integer nanoseconds:
//
//	{
//	  "storage_driver": "sqlite",
//	  "storage_dsn": "acadmate.db",
//	  "quota_bytes": 5242880,
//	  "pomodoro_work": "25m",
//	  "pomodoro_break": "5m",
//	  "portals": [{"name": "KL University ERP", "url": "https://newerp.kluniversity.in/"}]
//	}
package config
