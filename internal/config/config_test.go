package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "none.yaml")
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(missingPath(t))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.Production())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: production
log:
  level: debug
http:
  port: "9000"
stats:
  backend: sqlite
  path: /tmp/stats.db
`), 0o600))
	t.Setenv("PORT", "9100")
	t.Setenv("STATS_NAMESPACE", "custom")
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Production())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "9100", cfg.HTTP.Port)
	assert.Equal(t, "sqlite", cfg.Stats.Backend)
	assert.Equal(t, "/tmp/stats.db", cfg.Stats.Path)
	assert.Equal(t, "custom", cfg.Stats.Namespace)
	assert.Equal(t, "wordle_game", cfg.HTTP.CookieName)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load(missingPath(t))
	assert.ErrorIs(t, err, ErrDevSecret)

	t.Setenv("SESSION_SECRET", "s3cret")
	cfg, err := Load(missingPath(t))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.HTTP.SessionSecret)
}

func TestLoad_XDGPath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "wordle"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "wordle", "config.yaml"), []byte("stats:\n  backend: memory\n"), 0o600))

	assert.Equal(t, filepath.Join(xdg, "wordle", "config.yaml"), DefaultPath())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Stats.Backend)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad backend", env: map[string]string{"STATS_BACKEND": "redis"}},
		{name: "bad level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "non numeric port", env: map[string]string{"PORT": "http"}},
		{name: "bad bool", env: map[string]string{"LOG_PRETTY": "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(missingPath(t))
			assert.Error(t, err)
		})
	}
}

func TestLoad_BrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unterminated"), 0o600))
	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}
