package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "none.env")
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(missingEnvFile(t))
		require.NoError(t, err)

		assert.Equal(t, &Config{
			Routes:           "routes.yaml",
			LogLevel:         "info",
			LogFormat:        "text",
			ListenAddr:       ":8080",
			MetricsNamespace: "navmux",
		}, cfg)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("NAVMUX_ROUTES", "/etc/navmux/routes.yaml")
		t.Setenv("NAVMUX_LOG_LEVEL", "debug")
		t.Setenv("NAVMUX_LOG_FORMAT", "json")
		t.Setenv("NAVMUX_LISTEN_ADDR", "127.0.0.1:9000")
		t.Setenv("NAVMUX_METRICS_NAMESPACE", "todo")

		cfg, err := Load(missingEnvFile(t))
		require.NoError(t, err)

		assert.Equal(t, "/etc/navmux/routes.yaml", cfg.Routes)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
		assert.Equal(t, "todo", cfg.MetricsNamespace)
	})

	t.Run("dotenv file", func(t *testing.T) {
		t.Setenv("NAVMUX_LISTEN_ADDR", ":7000")

		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("NAVMUX_ROUTES=from-file.yaml\nNAVMUX_LISTEN_ADDR=:1234\n"), 0o600))
		t.Cleanup(func() { os.Unsetenv("NAVMUX_ROUTES") })

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "from-file.yaml", cfg.Routes)
		assert.Equal(t, ":7000", cfg.ListenAddr)
	})

	t.Run("invalid level", func(t *testing.T) {
		t.Setenv("NAVMUX_LOG_LEVEL", "loud")

		_, err := Load(missingEnvFile(t))
		assert.ErrorIs(t, err, ErrInvalidLogLevel)
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Setenv("NAVMUX_LOG_FORMAT", "xml")

		_, err := Load(missingEnvFile(t))
		assert.ErrorIs(t, err, ErrInvalidLogFormat)
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("json at debug", func(t *testing.T) {
		cfg := &Config{LogLevel: "debug", LogFormat: "json"}

		var buf bytes.Buffer
		logger, err := cfg.NewLogger(&buf)
		require.NoError(t, err)

		logger.Debug("hello", "k", "v")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "hello", record["msg"])
		assert.Equal(t, "v", record["k"])
	})

	t.Run("text filters below level", func(t *testing.T) {
		cfg := &Config{LogLevel: "warn", LogFormat: "TEXT"}

		var buf bytes.Buffer
		logger, err := cfg.NewLogger(&buf)
		require.NoError(t, err)

		logger.Info("hidden")
		logger.Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "msg=shown")
	})

	t.Run("invalid settings", func(t *testing.T) {
		_, err := (&Config{LogLevel: "nope", LogFormat: "text"}).NewLogger(&bytes.Buffer{})
		assert.ErrorIs(t, err, ErrInvalidLogLevel)

		_, err = (&Config{LogLevel: "info", LogFormat: "xml"}).NewLogger(&bytes.Buffer{})
		assert.ErrorIs(t, err, ErrInvalidLogFormat)
	})
}
