package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
// This centralizes default values and descriptions in one place.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents,
// and environment overrides.
func Load(ctx context.Context, v *viper.Viper) error {
	// If SetConfigFile was provided upstream it takes precedence;
	// these search paths are harmless fallbacks.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "inkmark"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "inkmark"))
		}
		v.AddConfigPath(".")
	}

	// Apply centralized defaults (lowest precedence)
	applyDefaults(v)

	// Read config file if present (overrides defaults)
	_ = v.ReadInConfig()

	// Environment variables: INKMARK_* (highest among these sources)
	v.SetEnvPrefix("inkmark")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Normalize dependent values post-merge
	if v.GetString("data_dir") == "" {
		v.Set("data_dir", defaultDataDir())
	}
	if strings.TrimSpace(v.GetString("theme")) == "" {
		v.Set("theme", "dark")
	}
	return nil
}

// defaultDataDir resolves $XDG_DATA_HOME/inkmark or ~/.local/share/inkmark.
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "inkmark")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "inkmark")
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, "inkmark", "config.toml")
}

// resolveDataDir applies ~ expansion to the configured data_dir.
func resolveDataDir(v *viper.Viper) string {
	dir := v.GetString("data_dir")
	if dir == "" {
		dir = defaultDataDir()
	}
	if len(dir) > 0 && dir[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[1:])
		}
	}
	return dir
}

// ResolveRecentDBPath returns the sqlite file backing the recent list.
func ResolveRecentDBPath(v *viper.Viper) string {
	return filepath.Join(resolveDataDir(v), "recent.db")
}

// ResolveWindowStatePath returns the window-bounds record location.
func ResolveWindowStatePath(v *viper.Viper) string {
	return filepath.Join(resolveDataDir(v), "window.json")
}

// ResolveLogPath returns the log file the TUI writes to while it owns
// the terminal.
func ResolveLogPath(v *viper.Viper) string {
	return filepath.Join(resolveDataDir(v), "inkmark.log")
}
