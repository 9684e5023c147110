// Package config loads API credentials from the environment and optional
// tuning settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shravya-mutyala/agent-test/internal/synthesis"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// EnvAPIKey names the environment variable holding the Google API key.
	EnvAPIKey = "GOOGLE_API_KEY"
	// EnvSearchEngineID names the variable holding the search engine ID.
	EnvSearchEngineID = "GOOGLE_SEARCH_ENGINE_ID"
	// EnvSettingsPath overrides the default settings file location.
	EnvSettingsPath = "STRANDS_AGENT_CONFIG"

	defaultSettingsFile = ".strands-agent.yaml"
)

// SearchSettings tunes the search provider client.
type SearchSettings struct {
	// MinRequestIntervalMS spaces successive API requests.
	MinRequestIntervalMS int `yaml:"min_request_interval_ms"`
	// NumResults is how many results one search requests (1-10).
	NumResults int `yaml:"num_results"`
}

// Settings is the optional on-disk tuning file. Every field has a default;
// the file only needs to name what it overrides.
type Settings struct {
	Search    SearchSettings    `yaml:"search"`
	Synthesis synthesis.Options `yaml:"synthesis"`
}

// Config holds credentials and settings for one process.
type Config struct {
	GoogleAPIKey   string
	SearchEngineID string
	Settings       Settings
}

// DefaultSettings returns the tuned defaults.
func DefaultSettings() Settings {
	return Settings{
		Search: SearchSettings{
			MinRequestIntervalMS: 100,
			NumResults:           5,
		},
		Synthesis: synthesis.DefaultOptions(),
	}
}

// Load reads credentials from the environment and settings from the
// settings file if one exists. A missing settings file is not an error;
// missing credentials are reported via IsConfigured, not here.
func Load(logger *logrus.Logger) *Config {
	cfg := &Config{
		GoogleAPIKey:   getEnvVar(logger, EnvAPIKey),
		SearchEngineID: getEnvVar(logger, EnvSearchEngineID),
		Settings:       DefaultSettings(),
	}

	if settings, err := loadSettings(logger, settingsPath()); err != nil {
		logger.WithError(err).Warn("Failed to load settings file, using defaults")
	} else {
		cfg.Settings = settings
	}

	return cfg
}

// IsConfigured reports whether all required credentials are present.
func (c *Config) IsConfigured() bool {
	return c.GoogleAPIKey != "" && c.SearchEngineID != ""
}

// MissingConfig returns the names of unset required environment variables.
func (c *Config) MissingConfig() []string {
	var missing []string
	if c.GoogleAPIKey == "" {
		missing = append(missing, EnvAPIKey)
	}
	if c.SearchEngineID == "" {
		missing = append(missing, EnvSearchEngineID)
	}
	return missing
}

// MinRequestInterval returns the configured request spacing.
func (c *Config) MinRequestInterval() time.Duration {
	ms := c.Settings.Search.MinRequestIntervalMS
	if ms <= 0 {
		ms = DefaultSettings().Search.MinRequestIntervalMS
	}
	return time.Duration(ms) * time.Millisecond
}

// NumResults returns the configured per-search result count, clamped to the
// provider's valid range.
func (c *Config) NumResults() int {
	n := c.Settings.Search.NumResults
	if n < 1 || n > 10 {
		return DefaultSettings().Search.NumResults
	}
	return n
}

func getEnvVar(logger *logrus.Logger, name string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		logger.WithField("variable", name).Warn("Environment variable not set")
	}
	return value
}

func settingsPath() string {
	if custom := os.Getenv(EnvSettingsPath); custom != "" {
		return custom
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultSettingsFile
	}
	return filepath.Join(homeDir, defaultSettingsFile)
}

// loadSettings parses the YAML settings file. A missing file yields the
// defaults without an error.
func loadSettings(logger *logrus.Logger, path string) (Settings, error) {
	settings := DefaultSettings()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.WithField("settings_path", path).Debug("Settings file not found, using defaults")
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse YAML settings: %w", err)
	}

	logger.WithField("settings_path", path).Info("Loaded settings file")
	return settings, nil
}
