package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{configPathEnv, dataDirEnv, githubTokenEnv, githubRepoEnv, geminiKeyEnv, adminTokenEnv} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, StoreModeLocal, cfg.Store.Mode)
	assert.Equal(t, "main", cfg.Store.Branch)
	assert.Equal(t, 500*time.Millisecond, cfg.Collector.Delay())
	assert.Equal(t, []string{"gemini-2.0-flash", "gemini-2.0-flash-exp", "gemini-1.5-flash"}, cfg.Gemini.Models)
	assert.Equal(t, "English", cfg.Gemini.Language)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadYAMLAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newsroom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
gemini:
  language: Korean
collector:
  fetchDelay: 2s
logging:
  level: debug
`), 0o644))

	t.Setenv(configPathEnv, path)
	t.Setenv(githubRepoEnv, "someone/newsroom-data")
	t.Setenv(githubTokenEnv, "ghp_test")
	t.Setenv(geminiKeyEnv, "gk_test")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "Korean", cfg.Gemini.Language)
	assert.Equal(t, 2*time.Second, cfg.Collector.Delay())
	assert.Equal(t, "debug", cfg.Logging.Level)

	// A configured repo switches the store to GitHub mode.
	assert.Equal(t, StoreModeGitHub, cfg.Store.Mode)
	assert.Equal(t, "someone/newsroom-data", cfg.Store.Repo)
	assert.Equal(t, "ghp_test", cfg.Store.Token)
	assert.Equal(t, "gk_test", cfg.Gemini.APIKey)

	// Untouched settings keep their defaults.
	assert.Equal(t, "data", cfg.Store.Path)
	assert.Equal(t, 24*time.Hour, cfg.Scheduler.Every())
}

func TestLoadUnreadableConfigFallsBack(t *testing.T) {
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Server.Addr)
}
