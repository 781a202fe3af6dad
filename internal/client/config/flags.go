package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Only the flags listed in doc.go are looked at; os.Args is filtered with
// flagx.FilterArgs first so -c/-config do not trip this flag set.
// Panics on a malformed value.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-r", "-p", "-l", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the SQLite database file")
	resetTTL := fs.Int("r", int(cfg.ResetTokenTTL.Hours()), "password reset token lifetime (in hours)")
	fs.StringVar(&cfg.PasswordEncoding, "p", cfg.PasswordEncoding, "password encoding (legacy|bcrypt)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogBackend, "b", cfg.LogBackend, "log backend (slog|zap)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if isSet(fs, "r") {
		cfg.ResetTokenTTL = time.Duration(*resetTTL) * time.Hour
	}
}

// isSet reports whether name was given on the command line.
func isSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
