package config

import "time"

// Config holds runtime settings for the gophtodo CLI.
//
// Fields:
//   - DatabasePath: SQLite file backing persistent storage.
//   - ResetTokenTTL: lifetime of a password reset token.
//   - PasswordEncoding: "legacy" or "bcrypt".
//   - LogLevel: debug, info, warn or error.
//   - LogBackend: "slog" or "zap".
type Config struct {
	DatabasePath     string
	ResetTokenTTL    time.Duration
	PasswordEncoding string
	LogLevel         string
	LogBackend       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "todo.db"
	c.ResetTokenTTL = 24 * time.Hour
	c.PasswordEncoding = "legacy"
	c.LogLevel = "warn"
	c.LogBackend = "slog"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
