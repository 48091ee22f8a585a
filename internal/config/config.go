// Package config loads imagekit settings from a TOML file and the
// environment.
//
// Every field has a usable default, so a missing file is not an error. A
// file only needs to name the values it changes:
//
//	[log]
//	level = "debug"
//
//	[store]
//	cache = true
//	jpeg_quality = 90
//
//	[batch]
//	workers = 4
//	suffix = "_edges"
//
//	[server]
//	name = "imagekit"
//
// Environment variables are applied after the file and take precedence:
// IMAGEKIT_LOG_LEVEL and IMAGEKIT_WORKERS.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/ironsheep/imagekit/internal/store"
)

// Environment variable names.
const (
	EnvConfig   = "IMAGEKIT_CONFIG"
	EnvLogLevel = "IMAGEKIT_LOG_LEVEL"
	EnvWorkers  = "IMAGEKIT_WORKERS"
)

// DefaultServerName is the name the MCP server reports during initialize.
const DefaultServerName = "imagekit"

// ErrInvalidConfig is wrapped by every load and validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all imagekit settings.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Store  StoreConfig  `toml:"store"`
	Batch  BatchConfig  `toml:"batch"`
	Server ServerConfig `toml:"server"`
}

// LogConfig controls logging.
type LogConfig struct {
	// Level is a charmbracelet/log level name: debug, info, warn, error, fatal.
	Level string `toml:"level"`
}

// StoreConfig controls image loading and saving.
type StoreConfig struct {
	// Cache keeps loaded rasters in memory, keyed by path.
	Cache bool `toml:"cache"`

	// JPEGQuality is used when saving .jpg and .jpeg files (1-100).
	JPEGQuality int `toml:"jpeg_quality"`
}

// BatchConfig controls directory processing.
type BatchConfig struct {
	// Workers bounds how many images are processed at once.
	Workers int `toml:"workers"`

	// Suffix is appended to each output file stem.
	Suffix string `toml:"suffix"`
}

// ServerConfig controls the MCP server.
type ServerConfig struct {
	Name string `toml:"name"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info"},
		Store:  StoreConfig{Cache: true, JPEGQuality: store.DefaultJPEGQuality},
		Batch:  BatchConfig{Workers: runtime.NumCPU()},
		Server: ServerConfig{Name: DefaultServerName},
	}
}

// Load reads the TOML file at path on top of the defaults, applies the
// environment overrides and validates the result. An empty path skips the
// file.
//
// Unknown keys in the file are rejected so that typos do not silently fall
// back to defaults.
func Load(path string) (*Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, fmt.Errorf("%w: %s: unknown keys %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvWorkers, v)
		}
		c.Batch.Workers = n
	}
	return nil
}

// Validate checks every field for a usable value.
func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Store.JPEGQuality < 1 || c.Store.JPEGQuality > 100 {
		return fmt.Errorf("%w: store.jpeg_quality must be between 1 and 100, got %d", ErrInvalidConfig, c.Store.JPEGQuality)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("%w: batch.workers must be positive, got %d", ErrInvalidConfig, c.Batch.Workers)
	}
	if strings.ContainsAny(c.Batch.Suffix, `/\`) {
		return fmt.Errorf("%w: batch.suffix must not contain a path separator: %q", ErrInvalidConfig, c.Batch.Suffix)
	}
	if strings.TrimSpace(c.Server.Name) == "" {
		return fmt.Errorf("%w: server.name must not be empty", ErrInvalidConfig)
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (log.Level, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return 0, fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	return level, nil
}
