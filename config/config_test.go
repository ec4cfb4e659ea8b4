package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
server:
  host: 127.0.0.1
  port: 8080
database:
  host: localhost
  port: 5432
  username: app
  database: thermo
llm:
  base_url: http://localhost:9999/v1/chat/completions
  api_key: test-key
  model: test-model
extraction:
  max_retries: 5
tables:
  allowed:
    samples:
      - sample_name
      - age_ma
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "thermo", cfg.Database.Database)
	assert.Equal(t, 5, cfg.Extraction.MaxRetries)
	assert.Equal(t, []string{"sample_name", "age_ma"}, cfg.Tables.Allowed["samples"])
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Extraction.InitialDelayMs)
	assert.Equal(t, 5000, cfg.Extraction.MaxDelayMs)
	assert.InDelta(t, 2.0, cfg.Extraction.BackoffMultiplier, 0.001)
	assert.Equal(t, 1, cfg.Extraction.ColumnTolerance)
	assert.InDelta(t, 0.3, cfg.Extraction.CompletenessFloor, 0.001)
	assert.Equal(t, int64(50<<20), cfg.Upload.MaxSize)
	assert.Equal(t, []string{".pdf"}, cfg.Upload.AllowedExtensions)
	assert.Equal(t, 8192, cfg.LLM.MaxTokens)

	assert.Equal(t, time.Second, cfg.Extraction.InitialDelay())
	assert.Equal(t, 5*time.Second, cfg.Extraction.MaxDelay())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_PrefersLocalOverride(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(base, []byte(testConfigYAML), 0644))

	local := filepath.Join(dir, "config.local.yaml")
	require.NoError(t, os.WriteFile(local, []byte("server:\n  port: 9090\n"), 0644))

	cfg, err := Load(base)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}
