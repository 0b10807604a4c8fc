// Package config resolves runtime settings from defaults, an optional TOML
// file, and TODO_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

type RuntimeConfig struct {
	Driver      string `toml:"driver"`
	DBPath      string `toml:"db_path"`
	DatabaseURL string `toml:"database_url"`
	TodosKey    string `toml:"todos_key"`
	ThemeKey    string `toml:"theme_key"`
	LiveReorder bool   `toml:"live_reorder"`
	Mouse       bool   `toml:"mouse"`
	LogLevel    string `toml:"log_level"`
	LogFormat   string `toml:"log_format"`
	LogFile     string `toml:"log_file"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Driver:      "sqlite",
		DBPath:      defaultDBPath(),
		TodosKey:    "todos",
		ThemeKey:    "theme",
		LiveReorder: true,
		Mouse:       true,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".todo.db"
	}
	return filepath.Join(dir, "todo", "todo.db")
}

// Load applies the TOML file named by TODO_CONFIG (if any) and then the
// environment on top of the defaults.
func Load() (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	if path := strings.TrimSpace(os.Getenv("TODO_CONFIG")); path != "" {
		fileCfg, err := FromFile(cfg, path)
		if err != nil {
			return RuntimeConfig{}, err
		}
		cfg = fileCfg
	}
	return RuntimeConfigFromEnv(cfg), nil
}

// FromFile decodes path over base. Keys missing from the file keep the
// value from base.
func FromFile(base RuntimeConfig, path string) (RuntimeConfig, error) {
	cfg := base
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RuntimeConfig{}, fmt.Errorf("config file %s: %w", path, err)
		}
		return RuntimeConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return RuntimeConfig{}, fmt.Errorf("parse config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TODO_DRIVER"); ok {
		cfg.Driver = v
	}
	if v, ok := getEnvString("TODO_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("TODO_DATABASE_URL"); ok {
		cfg.DatabaseURL = v
	}
	if v, ok := getEnvString("TODO_TODOS_KEY"); ok {
		cfg.TodosKey = v
	}
	if v, ok := getEnvString("TODO_THEME_KEY"); ok {
		cfg.ThemeKey = v
	}
	if v, ok := getEnvBool("TODO_LIVE_REORDER"); ok {
		cfg.LiveReorder = v
	}
	if v, ok := getEnvBool("TODO_MOUSE"); ok {
		cfg.Mouse = v
	}
	if v, ok := getEnvString("TODO_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("TODO_LOG_FORMAT"); ok {
		cfg.LogFormat = v
	}
	if v, ok := getEnvString("TODO_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		if v, err := strconv.ParseBool(raw); err == nil {
			return v, true
		}
		return false, false
	}
}
