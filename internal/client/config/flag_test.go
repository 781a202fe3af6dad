package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		initial     Config
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-d", "/tmp/t.db", "-r", "48", "-p", "bcrypt", "-l", "debug", "-b", "zap"},
			expected: &Config{DatabasePath: "/tmp/t.db", ResetTokenTTL: 48 * time.Hour, PasswordEncoding: "bcrypt", LogLevel: "debug", LogBackend: "zap"}},
		{name: "equals form and foreign flags ignored", args: []string{"cmd", "-c", "x.toml", "-d=a.db", "-unknown", "v"},
			expected: &Config{DatabasePath: "a.db"}},
		{name: "no flags keeps ttl", args: []string{"cmd"}, initial: Config{ResetTokenTTL: 90 * time.Minute},
			expected: &Config{ResetTokenTTL: 90 * time.Minute}},
		{name: "incorrect ttl", args: []string{"cmd", "-r", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &tt.initial

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
