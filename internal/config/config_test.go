package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 90, cfg.WindowDays)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, DEFAULT_LISTEN, cfg.Listen)
	require.NotNil(t, cfg.Storage.SQLite)
	assert.Equal(t, filepath.Join(getConfigPath(), "statuspage.db"), cfg.Storage.SQLite.Path)
	assert.Equal(t, filepath.Join("web", "assets", "logo.png"), cfg.LogoImg)
	assert.Same(t, cfg, Cfg)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("WINDOW_DAYS", "30")
	t.Setenv("CACHE_TTL", "0s")
	t.Setenv("STORAGE_SQLITE_PATH", ":memory:")
	t.Setenv("LOGO_IMG", "/srv/brand/logo.png")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.WindowDays)
	assert.Zero(t, cfg.CacheTTL)
	assert.Equal(t, ":memory:", cfg.Storage.SQLite.Path)
	assert.Equal(t, "/srv/brand/logo.png", cfg.LogoImg)
}

func TestLoadConfig_NegativeWindowFallsBack(t *testing.T) {
	t.Setenv("WINDOW_DAYS", "-3")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.WindowDays)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("log_level: debug\nwindow_days: 7\nstorage:\n  sqlite:\n    path: /var/lib/statuspage/db.sqlite\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 7, cfg.WindowDays)
	assert.Equal(t, "/var/lib/statuspage/db.sqlite", cfg.Storage.SQLite.Path)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
