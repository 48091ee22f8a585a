package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "imagekit.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func noEnv(string) string { return "" }

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Store.Cache)
	assert.Equal(t, 95, cfg.Store.JPEGQuality)
	assert.Equal(t, runtime.NumCPU(), cfg.Batch.Workers)
	assert.Empty(t, cfg.Batch.Suffix)
	assert.Equal(t, DefaultServerName, cfg.Server.Name)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := load("", noEnv)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"

[store]
cache = false
jpeg_quality = 80

[batch]
workers = 3
suffix = "_edges"
`)

	cfg, err := load(path, noEnv)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Store.Cache)
	assert.Equal(t, 80, cfg.Store.JPEGQuality)
	assert.Equal(t, 3, cfg.Batch.Workers)
	assert.Equal(t, "_edges", cfg.Batch.Suffix)
	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultServerName, cfg.Server.Name)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[log]\nlevel = \"warn\"\n[batch]\nworkers = 2\n")
	env := map[string]string{
		EnvLogLevel: "error",
		EnvWorkers:  "7",
	}

	cfg, err := load(path, func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, 7, cfg.Batch.Workers)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "malformed toml", content: "[log\nlevel = "},
		{name: "unknown key", content: "[store]\ncache = true\ncolour = \"red\"\n"},
		{name: "wrong type", content: "[batch]\nworkers = \"many\"\n"},
		{name: "bad level", content: "[log]\nlevel = \"loud\"\n"},
		{name: "quality too high", content: "[store]\njpeg_quality = 101\n"},
		{name: "quality zero", content: "[store]\njpeg_quality = 0\n"},
		{name: "no workers", content: "[batch]\nworkers = 0\n"},
		{name: "suffix with separator", content: "[batch]\nsuffix = \"a/b\"\n"},
		{name: "blank server name", content: "[server]\nname = \"  \"\n"},
		{name: "env workers not a number", env: map[string]string{EnvWorkers: "lots"}},
		{name: "env level unknown", env: map[string]string{EnvLogLevel: "chatty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.content != "" {
				path = writeConfig(t, tt.content)
			}
			cfg, err := load(path, func(k string) string { return tt.env[k] })
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "absent.toml"), noEnv)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLogLevel(t *testing.T) {
	cfg := Default()

	cfg.Log.Level = "DEBUG"
	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)

	cfg.Log.Level = ""
	_, err = cfg.LogLevel()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
