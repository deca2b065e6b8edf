package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the environment variables the app reads,
// e.g. FLASHDECK_DECKS_DIR overrides decks_dir.
const envPrefix = "FLASHDECK_"

// Config holds the persisted application settings. Only the theme is
// written back to disk; the rest is read-only runtime configuration.
type Config struct {
	DecksDir string `koanf:"decks_dir" validate:"required"`
	Theme    string `koanf:"theme" validate:"required"`
	LogLevel string `koanf:"log_level" validate:"required"`
}

// DefaultPath returns the config file location, next to the decks dir.
func DefaultPath() string {
	return filepath.Join(baseDir(), "config.yaml")
}

// DefaultDecksDir returns the default per-deck record directory.
func DefaultDecksDir() string {
	return filepath.Join(baseDir(), "decks")
}

func baseDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "flashdeck")
}

// Load reads configuration in layers: defaults, then the yaml config file
// (if present), then FLASHDECK_* environment variables. A .env file is
// honored the same way as real environment variables.
func Load(path string) (Config, error) {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	k := koanf.New(".")

	defaults := Config{
		DecksDir: DefaultDecksDir(),
		Theme:    "default",
		LogLevel: "INFO",
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
			return defaults, err
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return defaults, err
	}

	cfg := defaults
	if err := k.Unmarshal("", &cfg); err != nil {
		return defaults, err
	}
	applyDefaults(&cfg, defaults)

	if err := validator.New().Struct(cfg); err != nil {
		return defaults, err
	}
	return cfg, nil
}

// Save writes the configuration back to the yaml file, creating the parent
// directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := kyaml.Parser().Marshal(map[string]any{
		"decks_dir": cfg.DecksDir,
		"theme":     cfg.Theme,
		"log_level": cfg.LogLevel,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func applyDefaults(cfg *Config, defaults Config) {
	if cfg.DecksDir == "" {
		cfg.DecksDir = defaults.DecksDir
	}
	if cfg.Theme == "" {
		cfg.Theme = defaults.Theme
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
}
