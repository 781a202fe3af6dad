// Package config loads runtime configuration for the gophtodo CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .toml are decoded as TOML, anything else as JSON.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   path to the SQLite database file
//	-r int      password reset token lifetime (hours)
//	-p string   password encoding: legacy | bcrypt
//	-l string   log level: debug | info | warn | error
//	-b string   log backend: slog | zap
//
// # File format
//
// Durations use timex.Duration, so they can be strings like "24h" or
// integer nanoseconds. Keys missing from the file keep their earlier value.
//
//	{
//	  "database_path": "todo.db",
//	  "reset_token_ttl": "24h",
//	  "password_encoding": "legacy",
//	  "log_level": "warn",
//	  "log_backend": "slog"
//	}
//
// The same keys work in TOML:
//
//	database_path = "todo.db"
//	reset_token_ttl = "24h"
package config
