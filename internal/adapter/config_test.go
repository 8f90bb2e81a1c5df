package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv("TUBES_API_KEY", "")
	t.Setenv("YOUTUBE_API_KEY", "")

	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.API.BaseURL, cfg.API.BaseURL)
	assert.Equal(t, "US", cfg.API.RegionCode)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.True(t, cfg.UI.ShowSidebar)
	assert.False(t, cfg.IsConfigured())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `api:
  key: file-key
  region_code: GB
  timeout: 3s
player:
  command: vlc
  args: ["--fullscreen"]
ui:
  theme: light
  show_sidebar: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.API.Key)
	assert.Equal(t, "GB", cfg.API.RegionCode)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, "vlc", cfg.Player.Command)
	assert.Equal(t, []string{"--fullscreen"}, cfg.Player.Args)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.False(t, cfg.UI.ShowSidebar)
	assert.True(t, cfg.IsConfigured())
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api:\n  key: file-key\n"), 0644))

	t.Setenv("TUBES_API_KEY", "env-key")
	t.Setenv("TUBES_UI_THEME", "light")

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.API.Key)
	assert.Equal(t, "light", cfg.UI.Theme)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api: [unclosed"), 0644))

	_, err := LoadConfigFrom(dir)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("TUBES_API_KEY", "")
	t.Setenv("YOUTUBE_API_KEY", "")
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.API.Key = "saved-key"
	cfg.Player.Command = ""
	cfg.UI.DefaultView = "trending"
	require.NoError(t, SaveTo(dir, cfg))

	loaded, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "saved-key", loaded.API.Key)
	assert.Empty(t, loaded.Player.Command)
	assert.Equal(t, "trending", loaded.UI.DefaultView)
	assert.Equal(t, cfg.API.Timeout, loaded.API.Timeout)
}
