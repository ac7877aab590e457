package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultBaseURL = "http://127.0.0.1:8000"
	DefaultProfile = "default"

	homeEnv    = "TRACEBUG_HOME"
	envPrefix  = "TRACEBUG"
	configName = "config.json"
	configDir  = ".tracebug"
)

type Profile struct {
	BaseURL        string `json:"base_url" mapstructure:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" mapstructure:"timeout_seconds"`
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles" mapstructure:"profiles"`
	ActiveProfile  string             `json:"active_profile" mapstructure:"active_profile"`
	currentProfile *Profile
	baseURLEnv     string
	path           string
}

// LoadConfig reads the config file, creating a default one on first run.
// TRACEBUG_BASE_URL overrides the active profile's base URL.
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadConfigFrom(configPath)
}

// LoadConfigFrom is LoadConfig for an explicit file path
func LoadConfigFrom(configPath string) (*Config, error) {
	// Ensure config directory exists
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := saveConfig(defaultConfig(), configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetEnvPrefix(envPrefix)
	if err := v.BindEnv("base_url"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	config.baseURLEnv = v.GetString("base_url")
	config.path = configPath

	// Validate and set current profile
	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return &config, nil
}

func (c *Config) IsValid() bool {
	return c.GetBaseURL() != ""
}

// GetBaseURL returns the environment override or the active profile's URL
func (c *Config) GetBaseURL() string {
	if c.baseURLEnv != "" {
		return c.baseURLEnv
	}
	if c.currentProfile == nil {
		return ""
	}
	return c.currentProfile.BaseURL
}

// GetTimeout returns the HTTP timeout; zero means none
func (c *Config) GetTimeout() time.Duration {
	if c.currentProfile == nil || c.currentProfile.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.currentProfile.TimeoutSeconds) * time.Second
}

// Dir is the directory holding the config file and the log
func (c *Config) Dir() string {
	return filepath.Dir(c.path)
}

// ProfileNames returns profile names in sorted order
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UseProfile makes name the active profile
func (c *Config) UseProfile(name string) error {
	if _, exists := c.Profiles[name]; !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	c.ActiveProfile = name
	return c.setCurrentProfile()
}

func GetConfigPath() (string, error) {
	var baseDir string

	// Use TRACEBUG_HOME if set, otherwise use user's home directory
	if home := os.Getenv(homeEnv); home != "" {
		baseDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = homeDir
	}

	return filepath.Join(baseDir, configDir, configName), nil
}

func ensureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func defaultConfig() *Config {
	return &Config{
		Profiles: map[string]Profile{
			DefaultProfile: {
				BaseURL: DefaultBaseURL,
			},
		},
		ActiveProfile: DefaultProfile,
	}
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	if c.path == "" {
		configPath, err := GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		c.path = configPath
	}

	return saveConfig(c, c.path)
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// Fall back to the first profile by name
		c.ActiveProfile = c.ProfileNames()[0]
		profile = c.Profiles[c.ActiveProfile]
	}

	c.currentProfile = &profile
	return nil
}
