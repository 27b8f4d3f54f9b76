package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"iconfinder"}, args...))
	return out.String(), err
}

func TestSearchCommand_DefaultTier(t *testing.T) {
	dir := t.TempDir()
	out, err := runApp(t,
		"--catalog", filepath.Join(dir, "missing.json"),
		"--index", filepath.Join(dir, "index"),
		"search", "-k", "3", "quarterly", "growth")
	require.NoError(t, err)
	assert.Equal(t, "/static/icons/bold/document-text-bold.svg\n", out)
}

func TestSearchCommand_RequiresQuery(t *testing.T) {
	_, err := runApp(t, "--catalog", filepath.Join(t.TempDir(), "missing.json"), "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query is required")
}

func TestIndexCommand_ReportsTier(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "icons.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(`{"icons": []}`), 0o644))

	out, err := runApp(t, "--catalog", catalogPath, "--index", filepath.Join(dir, "index"), "index")
	require.NoError(t, err)
	assert.Contains(t, out, "Search tier: default")
	assert.NotContains(t, out, "Collection:")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "iconfinder.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("logging:\n  level: loud\n"), 0o600))

	_, err := runApp(t, "--config", configPath, "index")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")

	_, err = runApp(t, "--config", filepath.Join(dir, "missing.yaml"), "index")
	assert.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)

	tests := []struct {
		level   string
		enabled slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			err := setupLogger(tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, slog.Default().Enabled(t.Context(), tt.enabled))
			assert.False(t, slog.Default().Enabled(t.Context(), tt.enabled-1))
		})
	}

	t.Run("flag overrides config", func(t *testing.T) {
		_, err := runApp(t, "--log-level", "verbose", "index")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logging.level")
	})
}
