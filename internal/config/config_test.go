package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/usagedash/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, "http://127.0.0.1:52847", cfg.Server.URL)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.Equal(t, time.Second, cfg.Dashboard.PollInterval)
	assert.Equal(t, time.Second, cfg.Dashboard.ClockInterval)
	assert.Equal(t, 5, cfg.Dashboard.TopApps)
	assert.Equal(t, 20, cfg.Dashboard.AppsLimit)
	assert.Equal(t, "today", cfg.Dashboard.Period)
	assert.Equal(t, "en", cfg.Locale)
	assert.NoError(t, Validate(cfg))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)

	content := `
version: 1
server:
  url: http://localhost:9000/
  timeout: 2s
dashboard:
  poll_interval: 500ms
  top_apps: 8
  period: all
locale: RU
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.Server.URL, "trailing slash trimmed")
	assert.Equal(t, 2*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 500*time.Millisecond, cfg.Dashboard.PollInterval)
	assert.Equal(t, time.Second, cfg.Dashboard.ClockInterval, "unset keys keep defaults")
	assert.Equal(t, 8, cfg.Dashboard.TopApps)
	assert.Equal(t, 20, cfg.Dashboard.AppsLimit)
	assert.Equal(t, "all", cfg.Dashboard.Period)
	assert.Equal(t, "ru", cfg.Locale)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("server:\n  url: http://localhost:9000\n"), 0o644))

	t.Setenv("USAGEDASH_SERVER_URL", "http://10.0.0.2:1234")
	t.Setenv("USAGEDASH_DASHBOARD_TOP_APPS", "3")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.2:1234", cfg.Server.URL)
	assert.Equal(t, 3, cfg.Dashboard.TopApps)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("server: [unclosed"), 0o644))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind_Explicit(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("version: 1\n"), 0o644))

	got, err := Find(configPath)
	require.NoError(t, err)
	assert.Equal(t, configPath, got)

	_, err = Find(configPath + ".missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFind_LocalFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("version: 1\n"), 0o644))

	got, err := Find("")
	require.NoError(t, err)
	assert.Equal(t, ConfigFileName, filepath.Base(got))
}

func TestLoadOrDefault_Explicit(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("locale: ru\n"), 0o644))

	cfg, path, err := LoadOrDefault(configPath)
	require.NoError(t, err)
	assert.Equal(t, configPath, path)
	assert.Equal(t, "ru", cfg.Locale)
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "", ExpandTilde(""))
	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, filepath.Join(home, "logs/x.log"), ExpandTilde("~/logs/x.log"))
	assert.Equal(t, "/abs/path", ExpandTilde("/abs/path"))
	assert.Equal(t, "~other/x", ExpandTilde("~other/x"))
}
