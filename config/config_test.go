package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "assets/icons.json", cfg.Catalog.Path)
	assert.Equal(t, "icons", cfg.Index.Collection)
	assert.Equal(t, 64, cfg.Index.BatchSize)
	assert.Equal(t, "all-minilm", cfg.Embedding.Model)
	assert.Equal(t, 3*time.Second, cfg.Search.QueryTimeout())
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	t.Setenv("ICONFINDER_TEST_TOKEN", "secret")

	cfg, err := Parse([]byte(`
catalog:
  path: /srv/icons.json
embedding:
  host: https://api.example.com/v1
  model: text-embedding-3-small
  api_token: ${ICONFINDER_TEST_TOKEN}
search:
  pool_size: 4
  query_timeout_ms: 250
http:
  addr: ${ICONFINDER_TEST_ADDR:-127.0.0.1:9000}
`))
	require.NoError(t, err)

	assert.Equal(t, "/srv/icons.json", cfg.Catalog.Path)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, "secret", cfg.Embedding.APIToken)
	assert.Equal(t, 4, cfg.Search.PoolSize)
	assert.Equal(t, 250*time.Millisecond, cfg.Search.QueryTimeout())
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	assert.Equal(t, "data/index", cfg.Index.Path, "unset fields get defaults")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed yaml", "catalog: [unterminated"},
		{"negative pool size", "search:\n  pool_size: -1\n"},
		{"bad collection name", "index:\n  collection: \"a:b\"\n"},
		{"bad log level", "logging:\n  level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iconfinder.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
