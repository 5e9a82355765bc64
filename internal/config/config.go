// Package config loads glcheck configuration from a YAML file with
// environment variable fallbacks. The API token is required: without it no
// GitLab endpoint can be called, so loading fails fast.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the GitLab instance checked when no override is given.
const DefaultBaseURL = "https://code.swecha.org"

// ErrMissingToken indicates no API token was found in the config file or
// environment. This is a fatal startup condition.
var ErrMissingToken = errors.New("no API token configured (set token in config file or GLCHECK_TOKEN)")

// Config holds the process-wide settings. It is constructed once at startup
// and passed explicitly to every component that needs it.
type Config struct {
	// Token is the PRIVATE-TOKEN value sent with every API request.
	Token string `yaml:"token"`
	// BaseURL is the root of the GitLab instance, without /api/v4.
	BaseURL string `yaml:"base_url"`
	// HistoryPath is the SQLite file recording completed check runs.
	// Empty means the default location under the user config dir.
	HistoryPath string `yaml:"history_path"`
}

// APIBase returns the REST API root for the configured instance.
func (c Config) APIBase() string {
	return strings.TrimRight(c.BaseURL, "/") + "/api/v4"
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "glcheck", "config.yaml")
}

// DefaultHistoryPath returns the conventional history database location.
func DefaultHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "glcheck-history.db"
	}
	return filepath.Join(dir, "glcheck", "history.db")
}

// Load reads the config file at path (optional), applies environment
// fallbacks, and validates the result. A missing file is not an error;
// a missing token is.
func Load(path string) (Config, error) {
	var cfg Config

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Fall through to environment-only configuration.
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if cfg.Token == "" {
		cfg.Token = os.Getenv("GLCHECK_TOKEN")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = getenv("GLCHECK_BASE_URL", DefaultBaseURL)
	}
	if cfg.HistoryPath == "" {
		cfg.HistoryPath = getenv("GLCHECK_HISTORY_PATH", DefaultHistoryPath())
	}

	if cfg.Token == "" {
		return Config{}, ErrMissingToken
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
