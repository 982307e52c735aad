package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/amterp/squares/internal/config"
	"github.com/amterp/squares/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileConfigStore_LoadMissingReturnsDefaults(t *testing.T) {
	s := NewConfigStore(filepath.Join(t.TempDir(), "config.toml"))

	cfg, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestFileConfigStore_LoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	testutil.WriteFile(t, path, `
data_path = "/var/lib/squares"
port = 8081
environment = "development"
allowed_origins = ["https://squares.example.com"]
request_timeout = "2s"
log_level = "debug"
`)

	cfg, err := NewConfigStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/squares", cfg.DataPath)
	assert.Equal(t, 8081, cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, []string{"https://squares.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout.Duration)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFileConfigStore_LoadPartialAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	testutil.WriteFile(t, path, "port = 9000\n")

	cfg, err := NewConfigStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, config.DefaultDataDir, cfg.DataPath)
	assert.Equal(t, config.DefaultRequestTimeout, cfg.RequestTimeout.Duration)
}

func TestFileConfigStore_LoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not toml", "port = = 3"},
		{"bad duration", `request_timeout = "later"`},
		{"bad environment", `environment = "staging"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			testutil.WriteFile(t, path, tt.content)

			_, err := NewConfigStore(path).Load()
			assert.Error(t, err)
		})
	}
}

func TestFileConfigStore_SaveAndLoad(t *testing.T) {
	s := NewConfigStore(filepath.Join(t.TempDir(), "nested", "config.toml"))

	cfg := config.Default()
	cfg.Port = 7070
	cfg.RequestTimeout.Duration = 3 * time.Second
	require.NoError(t, s.Save(cfg))

	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestFileConfigStore_EnsureExists(t *testing.T) {
	s := NewConfigStore(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, s.EnsureExists())

	cfg := config.Default()
	cfg.Port = 6000
	require.NoError(t, s.Save(cfg))

	// Existing config must not be overwritten
	require.NoError(t, s.EnsureExists())
	loaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 6000, loaded.Port)
}

var _ ConfigStore = (*FileConfigStore)(nil)
