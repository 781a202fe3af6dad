package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dmitrijs2005/gophtodo/internal/flagx"
	"github.com/dmitrijs2005/gophtodo/internal/timex"
)

// FileConfig is the on-disk shape of Config, shared by the JSON and TOML
// decoders.
type FileConfig struct {
	DatabasePath     string         `json:"database_path" toml:"database_path"`
	ResetTokenTTL    timex.Duration `json:"reset_token_ttl" toml:"reset_token_ttl"`
	PasswordEncoding string         `json:"password_encoding" toml:"password_encoding"`
	LogLevel         string         `json:"log_level" toml:"log_level"`
	LogBackend       string         `json:"log_backend" toml:"log_backend"`
}

// readFile decodes path by extension.
func readFile(path string) (*FileConfig, error) {
	var fc FileConfig

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return &fc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return &fc, nil
}

// apply copies the non-empty fields of fc into cfg.
func (fc *FileConfig) apply(cfg *Config) {
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.ResetTokenTTL.Duration != 0 {
		cfg.ResetTokenTTL = fc.ResetTokenTTL.Duration
	}
	if fc.PasswordEncoding != "" {
		cfg.PasswordEncoding = fc.PasswordEncoding
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogBackend != "" {
		cfg.LogBackend = fc.LogBackend
	}
}

// parseFile overlays cfg with the file named by -c/-config. Without the flag
// it does nothing. Panics if the file cannot be read or decoded.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	fc, err := readFile(path)
	if err != nil {
		panic(err)
	}
	fc.apply(cfg)
}
