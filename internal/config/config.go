// Package config loads tracker settings from defaults, an optional YAML
// file and LOSTFOUND_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/erazemk/lostfound/internal/form"
	"github.com/erazemk/lostfound/internal/kv"
	"github.com/erazemk/lostfound/internal/render"
)

// EnvPrefix prefixes every environment variable the config reads.
const EnvPrefix = "LOSTFOUND_"

type Config struct {
	Backend  string `yaml:"backend"`
	DataPath string `yaml:"data_path"`
	Addr     string `yaml:"addr"`

	LogPath  string `yaml:"log_path"`
	LogLevel string `yaml:"log_level"`

	DisplayDateFormat string `yaml:"display_date_format"`
	LargeImageBytes   int64  `yaml:"large_image_bytes"`

	// SessionKey signs the flash-message cookie. Generated per run when empty.
	SessionKey string `yaml:"session_key"`
}

// Dir returns the directory holding the default config and data files.
func Dir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "lostfound")
}

// DefaultPath is the config file read when none is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Backend:           kv.BackendSQLite,
		DataPath:          filepath.Join(Dir(), "lostfound.sqlite3"),
		Addr:              "127.0.0.1:8080",
		LogLevel:          "info",
		DisplayDateFormat: render.DefaultDateLayout,
		LargeImageBytes:   form.DefaultLargeImageBytes,
	}
}

// Load reads the YAML file at path over the defaults (a missing file is
// fine), then applies a .env file in the working directory and the
// environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	// .env is optional.
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"BACKEND":             &c.Backend,
		"DATA_PATH":           &c.DataPath,
		"ADDR":                &c.Addr,
		"LOG_PATH":            &c.LogPath,
		"LOG_LEVEL":           &c.LogLevel,
		"DISPLAY_DATE_FORMAT": &c.DisplayDateFormat,
		"SESSION_KEY":         &c.SessionKey,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(EnvPrefix + "LARGE_IMAGE_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sLARGE_IMAGE_BYTES: %w", EnvPrefix, err)
		}
		c.LargeImageBytes = n
	}
	return nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	switch c.Backend {
	case kv.BackendSQLite, kv.BackendBolt:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, kv.BackendSQLite, kv.BackendBolt)
	}
	if c.DataPath == "" {
		return errors.New("data_path must not be empty")
	}
	if c.LargeImageBytes <= 0 {
		return fmt.Errorf("large_image_bytes must be positive, got %d", c.LargeImageBytes)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel the way slog does, so "INFO" and "warn+2" are valid.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
