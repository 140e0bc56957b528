package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevemurr/market/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Store.Backend)
	assert.Equal(t, ".", cfg.Store.Dir)
	assert.Equal(t, "client.json", cfg.Store.Clients)
	assert.Equal(t, "product.json", cfg.Store.Products)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "market.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: sqlite\n  dir: data\nlog:\n  level: debug\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "data", cfg.Store.Dir)
	assert.Equal(t, "client.json", cfg.Store.Clients)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "market.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: sqlite\n"), 0o644))
	require.NoError(t, os.WriteFile(config.DotEnvFile, []byte("MARKET_STORE_DIR=from-dotenv\nMARKET_LOG_LEVEL=info\n"), 0o644))
	t.Setenv("MARKET_STORE_BACKEND", "memory")
	t.Setenv("MARKET_LOG_LEVEL", "error")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, "from-dotenv", cfg.Store.Dir)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown backend", "MARKET_STORE_BACKEND", "redis"},
		{"unknown level", "MARKET_LOG_LEVEL", "loud"},
		{"unknown format", "MARKET_LOG_FORMAT", "xml"},
		{"same file for both collections", "MARKET_STORE_CLIENTS", "product.json"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tc.key, tc.val)

			_, err := config.Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [unterminated\n"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadUnreadableDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.Mkdir(config.DotEnvFile, 0o755))

	_, err := config.Load("")
	assert.ErrorContains(t, err, config.DotEnvFile)
}

func TestString(t *testing.T) {
	cfg := config.Config{
		Store: config.StoreConfig{Backend: "json", Dir: "/var/lib/market", Clients: "c.json", Products: "p.json"},
		Log:   config.LogConfig{Level: "info", Format: "json"},
	}
	out := cfg.String()
	assert.Contains(t, out, "store.dir: /var/lib/market")
	assert.Contains(t, out, "log.format: json")
}
