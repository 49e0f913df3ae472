// Package config loads user preferences for the tasks screen.
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

const (
	DefaultTheme    = "classic"
	DefaultLogLevel = "info"

	appDirName     = "tasks"
	configFileName = "config.toml"
)

// Config is the merged result of defaults, config files and environment.
// CLI flags are applied on top by the caller.
type Config struct {
	Theme     string `toml:"theme"`
	LogFile   string `toml:"log_file"`
	LogLevel  string `toml:"log_level"`
	NoColor   bool   `toml:"no_color"`
	AltScreen bool   `toml:"alt_screen"`
}

func Defaults() Config {
	return Config{
		Theme:     DefaultTheme,
		LogLevel:  DefaultLogLevel,
		AltScreen: true,
	}
}

// Load builds the config in priority order:
// 1. Defaults
// 2. User config file (XDG config dir)
// 3. Explicit file (--config), which must exist when given
// 4. Environment variables
func Load(explicitPath string) (Config, error) {
	cfg := Defaults()

	if p := userConfigFile(); p != "" {
		if err := loadFile(&cfg, p); err != nil {
			return cfg, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}

	if explicitPath != "" {
		p := expandPath(explicitPath)
		if _, err := os.Stat(p); err != nil {
			return cfg, fmt.Errorf("config file: %w", err)
		}
		if err := loadFile(&cfg, p); err != nil {
			return cfg, fmt.Errorf("loading config file %s: %w", p, err)
		}
	}

	loadFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.Theme) {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("unknown theme %q (want classic, neon or mono)", c.Theme)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	cfg.LogFile = expandPath(cfg.LogFile)
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKS_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TASKS_LOG_FILE"); v != "" {
		cfg.LogFile = expandPath(v)
	}
	if v := os.Getenv("TASKS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKS_ALT_SCREEN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AltScreen = b
		}
	}
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		cfg.NoColor = true
	}
}

// userConfigFile returns the per-user config path if the file exists.
func userConfigFile() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	p := filepath.Join(dir, appDirName, configFileName)
	if _, err := os.Stat(p); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return p
		}
		return ""
	}
	return p
}

// expandPath expands ~/ and environment variables.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
