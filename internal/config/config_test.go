package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCreatesDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv(homeEnv, home)
	t.Setenv("TRACEBUG_BASE_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultProfile, cfg.ActiveProfile)
	assert.Equal(t, DefaultBaseURL, cfg.GetBaseURL())
	assert.Zero(t, cfg.GetTimeout())
	assert.True(t, cfg.IsValid())
	assert.Equal(t, filepath.Join(home, ".tracebug"), cfg.Dir())

	_, err = os.Stat(filepath.Join(home, ".tracebug", "config.json"))
	assert.NoError(t, err)
}

func TestLoadConfigReadsProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("TRACEBUG_BASE_URL", "")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"profiles": {
			"default": {"base_url": "http://127.0.0.1:8000"},
			"prod": {"base_url": "https://tracebug.onrender.com", "timeout_seconds": 30}
		},
		"active_profile": "prod"
	}`), 0600))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "https://tracebug.onrender.com", cfg.GetBaseURL())
	assert.Equal(t, 30*time.Second, cfg.GetTimeout())
	assert.Equal(t, []string{"default", "prod"}, cfg.ProfileNames())
}

func TestEnvironmentOverridesBaseURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("TRACEBUG_BASE_URL", "http://backend:9000")

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000", cfg.GetBaseURL())
}

func TestMissingActiveProfileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("TRACEBUG_BASE_URL", "")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"profiles": {"b": {"base_url": "http://b"}, "a": {"base_url": "http://a"}},
		"active_profile": "gone"
	}`), 0600))

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "a", cfg.ActiveProfile)
	assert.Equal(t, "http://a", cfg.GetBaseURL())
}

func TestNoProfilesIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"profiles": {}}`), 0600))

	_, err := LoadConfigFrom(path)
	assert.Error(t, err)
}

func TestUseProfileAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("TRACEBUG_BASE_URL", "")

	cfg, err := LoadConfigFrom(path)
	require.NoError(t, err)

	cfg.Profiles["staging"] = Profile{BaseURL: "http://staging"}
	require.NoError(t, cfg.UseProfile("staging"))
	assert.Error(t, cfg.UseProfile("missing"))
	require.NoError(t, cfg.Save())

	reloaded, err := LoadConfigFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "staging", reloaded.ActiveProfile)
	assert.Equal(t, "http://staging", reloaded.GetBaseURL())
}
