package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: "http://localhost:8000/api/v1"
  timeout: 5s
store:
  path: "/tmp/tokens.json"
cache:
  path: "/tmp/cache.db"
  ttl: 1m
serve:
  addr: ":9090"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000/api/v1", cfg.API.BaseURL)
	require.Equal(t, 5*time.Second, cfg.API.Timeout)
	require.Equal(t, time.Minute, cfg.Cache.TTL)
	require.Equal(t, ":9090", cfg.Serve.Addr)
}

func TestLoadDefaultsFromEnvOnly(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("PORTFOLIO_API_URL", "http://example.test/api/v1")

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir())) // make sure local.yaml is absent
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "http://example.test/api/v1", cfg.API.BaseURL)
	require.Equal(t, 30*time.Second, cfg.API.Timeout)
	require.NotEmpty(t, cfg.Store.Path)
	require.NotEmpty(t, cfg.Cache.Path)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  timeout: 5s\n"), 0o600))
	t.Setenv("PORTFOLIO_API_TIMEOUT", "90s")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 90*time.Second, cfg.API.Timeout)
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
