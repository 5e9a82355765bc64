package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"token: file-token\nbase_url: https://git.example.org\nhistory_path: "+filepath.Join(dir, "h.db")+"\n",
	), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.Token)
	assert.Equal(t, "https://git.example.org", cfg.BaseURL)
	assert.Equal(t, "https://git.example.org/api/v4", cfg.APIBase())
}

func TestLoadEnvFallback(t *testing.T) {
	t.Setenv("GLCHECK_TOKEN", "env-token")
	t.Setenv("GLCHECK_BASE_URL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestLoadFileTokenWins(t *testing.T) {
	t.Setenv("GLCHECK_TOKEN", "env-token")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("token: file-token\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.Token)
}

func TestLoadMissingTokenIsFatal(t *testing.T) {
	t.Setenv("GLCHECK_TOKEN", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("token: [unclosed\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestAPIBaseTrimsSlash(t *testing.T) {
	cfg := Config{BaseURL: "https://git.example.org/"}
	assert.Equal(t, "https://git.example.org/api/v4", cfg.APIBase())
}
