package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-api-key-1234567890")
	t.Setenv(EnvSearchEngineID, "env-engine-id-123")
	t.Setenv(EnvSettingsPath, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := Load(testLogger())

	assert.Equal(t, "env-api-key-1234567890", cfg.GoogleAPIKey)
	assert.Equal(t, "env-engine-id-123", cfg.SearchEngineID)
	assert.True(t, cfg.IsConfigured())
	assert.Empty(t, cfg.MissingConfig())
}

func TestLoad_MissingCredentials(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvSearchEngineID, "")
	t.Setenv(EnvSettingsPath, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := Load(testLogger())

	assert.False(t, cfg.IsConfigured())
	assert.Equal(t, []string{EnvAPIKey, EnvSearchEngineID}, cfg.MissingConfig())
}

func TestLoad_SettingsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	content := []byte(`
search:
  min_request_interval_ms: 250
  num_results: 7
synthesis:
  max_snippet_length: 300
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	t.Setenv(EnvAPIKey, "key")
	t.Setenv(EnvSearchEngineID, "id")
	t.Setenv(EnvSettingsPath, path)

	cfg := Load(testLogger())

	assert.Equal(t, 250*time.Millisecond, cfg.MinRequestInterval())
	assert.Equal(t, 7, cfg.NumResults())
	assert.Equal(t, 300, cfg.Settings.Synthesis.MaxSnippetLength)
	// Unset fields keep their defaults.
	assert.Equal(t, 3, cfg.Settings.Synthesis.MaxSnippets)
}

func TestLoad_MissingSettingsFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvAPIKey, "key")
	t.Setenv(EnvSearchEngineID, "id")
	t.Setenv(EnvSettingsPath, filepath.Join(t.TempDir(), "nope.yaml"))

	cfg := Load(testLogger())

	assert.Equal(t, 100*time.Millisecond, cfg.MinRequestInterval())
	assert.Equal(t, 5, cfg.NumResults())
}

func TestNumResults_ClampsInvalidValues(t *testing.T) {
	cfg := &Config{Settings: DefaultSettings()}

	cfg.Settings.Search.NumResults = 0
	assert.Equal(t, 5, cfg.NumResults())

	cfg.Settings.Search.NumResults = 99
	assert.Equal(t, 5, cfg.NumResults())
}

func TestLoad_MalformedSettingsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search: [not a map"), 0644))

	t.Setenv(EnvAPIKey, "key")
	t.Setenv(EnvSearchEngineID, "id")
	t.Setenv(EnvSettingsPath, path)

	cfg := Load(testLogger())

	// Parse failures fall back to defaults rather than aborting.
	assert.Equal(t, 100*time.Millisecond, cfg.MinRequestInterval())
}
