package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	d := DefaultConfig()
	assert.Equal(t, d.Server.Port, cfg.Server.Port)
	assert.True(t, cfg.CORS.Enabled)
	assert.Equal(t, []string{"Origin", "X-Requested-With", "Content-Type", "Accept"}, cfg.CORS.AllowedHeaders)
	assert.Equal(t, d.Attribution.ModelPathTemplate, cfg.Attribution.ModelPathTemplate)
	assert.Equal(t, 2*time.Minute, cfg.Backend.Timeout)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9000
cors:
  enabled: false
backend:
  max_concurrent: 2
  timeout: 15s
  env:
    PYTHONPATH: /opt/glad
attribution:
  command: /usr/bin/glad
  args: ["--quiet"]
  model_path_template: "models/{{.Language}}/{{.Genre}}/{{.FeatureSet}}"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.False(t, cfg.CORS.Enabled)
	assert.Equal(t, uint(2), cfg.Backend.MaxConcurrent)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "/opt/glad", cfg.Backend.Env["pythonpath"])
	assert.Equal(t, "/usr/bin/glad", cfg.Attribution.Command)
	assert.Equal(t, []string{"--quiet"}, cfg.Attribution.Args)
	// untouched sections keep their defaults
	assert.Equal(t, "python3", cfg.Profiling.Command)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 9000\n")
	t.Setenv("AAG_SERVER_PORT", "9100")
	t.Setenv("AAG_PROFILING_COMMAND", "/usr/local/bin/profiler")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "/usr/local/bin/profiler", cfg.Profiling.Command)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Run("auth required without secret", func(t *testing.T) {
		path := writeConfigFile(t, "auth:\n  required: true\n")
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "invalid configuration")
	})

	t.Run("zero concurrency", func(t *testing.T) {
		path := writeConfigFile(t, "backend:\n  max_concurrent: 0\n")
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "invalid configuration")
	})

	t.Run("tracing without endpoint", func(t *testing.T) {
		path := writeConfigFile(t, "tracing:\n  enabled: true\n")
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "invalid configuration")
	})
}

func TestDumpMasksSecret(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Auth.Secret = "super-secret"

	out, err := Dump(&cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "super-secret")
	assert.Contains(t, string(out), "model_path_template")
	assert.Equal(t, "super-secret", cfg.Auth.Secret)
}
