package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Empty(t, cfg.Factors.Path)
	assert.Equal(t, 24*60, cfg.History.TTLMinutes)
	assert.False(t, cfg.Engine.Parallel)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
factors:
  path: /etc/ecotrack/factors.yaml
engine:
  parallel: true
logging:
  level: debug
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "/etc/ecotrack/factors.yaml", cfg.Factors.Path)
	assert.True(t, cfg.Engine.Parallel)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep defaults.
	assert.Equal(t, 24*60, cfg.History.TTLMinutes)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ECOTRACK_ADDR", ":7070")
	t.Setenv("ECOTRACK_LOG_LEVEL", "warn")
	t.Setenv("ECOTRACK_ENGINE_PARALLEL", "true")
	t.Setenv("ECOTRACK_HISTORY_TTL_MINUTES", "30")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Engine.Parallel)
	assert.Equal(t, 30, cfg.History.TTLMinutes)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("{{{"), 0600))
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("history:\n  ttl_minutes: -1\n"), 0600))
	_, err = Load(invalid)
	assert.Error(t, err)
}
