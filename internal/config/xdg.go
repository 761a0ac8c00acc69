// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

const appName = "pokerdrill"

// Env holds the environment variables that locate config and data files.
type Env struct {
	XDGConfigHome string `env:"XDG_CONFIG_HOME"`
	XDGDataHome   string `env:"XDG_DATA_HOME"`
	// ConfigPath overrides the config file location.
	ConfigPath string `env:"POKERDRILL_CONFIG"`
	// DataDir overrides the directory holding the database and log.
	DataDir string `env:"POKERDRILL_DATA_DIR"`
	Editor  string `env:"EDITOR" envDefault:"vi"`
}

// LoadEnv reads Env from the process environment.
func LoadEnv() Env {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{Editor: "vi"}
	}
	if strings.TrimSpace(e.Editor) == "" {
		e.Editor = "vi"
	}
	return e
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := LoadEnv().XDGConfigHome; v != "" {
		return v
	}
	return homeFallback(".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := LoadEnv().XDGDataHome; v != "" {
		return v
	}
	return homeFallback(".local", "share")
}

func homeFallback(parts ...string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, parts...)...)
}

func dataDir() string {
	if v := LoadEnv().DataDir; v != "" {
		return v
	}
	return filepath.Join(XDGDataHome(), appName)
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(dataDir(), appName+".db")
}

// DefaultLogPath returns the log file used while the TUI owns the terminal.
func DefaultLogPath() string {
	return filepath.Join(dataDir(), appName+".log")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	if v := LoadEnv().ConfigPath; v != "" {
		return v
	}
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// EditorCommand returns the editor command line split into fields.
func EditorCommand() []string {
	return strings.Fields(LoadEnv().Editor)
}
