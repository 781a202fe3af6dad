package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_parseFile_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	defaults := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	t.Run("json", func(t *testing.T) {
		path := writeTempFile(t, "cfg.json", `{
			"database_path": "/var/lib/todo.db",
			"reset_token_ttl": "2h",
			"password_encoding": "bcrypt",
			"log_level": "info",
			"log_backend": "zap"
		}`)
		os.Args = []string{"testbin", "-config", path}

		cfg := defaults()
		parseFile(cfg)

		want := &Config{
			DatabasePath:     "/var/lib/todo.db",
			ResetTokenTTL:    2 * time.Hour,
			PasswordEncoding: "bcrypt",
			LogLevel:         "info",
			LogBackend:       "zap",
		}
		assert.Empty(t, cmp.Diff(want, cfg))
	})

	t.Run("toml", func(t *testing.T) {
		path := writeTempFile(t, "cfg.toml", "database_path = \"t.db\"\nreset_token_ttl = \"12h\"\n")
		os.Args = []string{"testbin", "-c", path}

		cfg := defaults()
		parseFile(cfg)

		assert.Equal(t, "t.db", cfg.DatabasePath)
		assert.Equal(t, 12*time.Hour, cfg.ResetTokenTTL)
		assert.Equal(t, "legacy", cfg.PasswordEncoding, "missing keys keep defaults")
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("json duration as nanoseconds", func(t *testing.T) {
		path := writeTempFile(t, "cfg.json", `{"reset_token_ttl": 60000000000}`)
		os.Args = []string{"testbin", "-c", path}

		cfg := defaults()
		parseFile(cfg)
		assert.Equal(t, time.Minute, cfg.ResetTokenTTL)
	})

	t.Run("no flag → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := defaults()
		parseFile(cfg)
		assert.Empty(t, cmp.Diff(defaults(), cfg))
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		path := writeTempFile(t, "bad.json", `{ this is not valid json`)
		os.Args = []string{"testbin", "-config", path}

		require.Panics(t, func() { parseFile(defaults()) })
	})

	t.Run("invalid TOML → panics", func(t *testing.T) {
		path := writeTempFile(t, "bad.toml", `database_path = `)
		os.Args = []string{"testbin", "-config", path}

		require.Panics(t, func() { parseFile(defaults()) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(t.TempDir(), "absent.json")}

		require.Panics(t, func() { parseFile(defaults()) })
	})
}
