package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.API, cfg.API)
	assert.Equal(t, def.Storage.DataDir, cfg.Storage.DataDir)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
api:
  language: pt-br
  page_size: 40
  timeout: 5s
reader:
  command: feh
  args: ["--fullscreen"]
  data_saver: true
storage:
  data_dir: ~/manga
ui:
  default_status: completed
  default_genre: Romance
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, "pt-br", cfg.API.Language)
	assert.Equal(t, 40, cfg.API.PageSize)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "https://api.mangadex.org", cfg.API.BaseURL, "unset keys keep defaults")
	assert.Equal(t, "feh", cfg.Reader.Command)
	assert.Equal(t, []string{"--fullscreen"}, cfg.Reader.Args)
	assert.True(t, cfg.Reader.DataSaver)
	assert.Equal(t, filepath.Join(home, "manga"), cfg.Storage.DataDir)
	assert.Equal(t, "completed", cfg.UI.DefaultStatus)
	assert.Equal(t, "Romance", cfg.UI.DefaultGenre)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("MANGALAND_API_LANGUAGE", "es")
	t.Setenv("MANGALAND_API_BASE_URL", "http://localhost:9000")

	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "es", cfg.API.Language)
	assert.Equal(t, "http://localhost:9000", cfg.API.BaseURL)
}

func TestLoadConfigInvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api: [unclosed"), 0644))

	_, err := LoadConfigFrom(dir)
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.API.Language = "fr"
	cfg.API.Timeout = 12 * time.Second
	cfg.Reader.Command = "gwenview"
	cfg.UI.DefaultStatus = "ongoing"

	require.NoError(t, SaveConfigTo(dir, cfg))

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "uploads_url")
	assert.Contains(t, string(data), "default_status")

	loaded, err := LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "fr", loaded.API.Language)
	assert.Equal(t, 12*time.Second, loaded.API.Timeout)
	assert.Equal(t, "gwenview", loaded.Reader.Command)
	assert.Equal(t, "ongoing", loaded.UI.DefaultStatus)
}
