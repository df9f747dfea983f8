// Package config handles loading lintel.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultKeyEnv is the environment variable consulted for the assistant
// API key when the config file does not name one.
const DefaultKeyEnv = "LINTEL_API_KEY"

// Config represents the lintel.toml configuration file.
type Config struct {
	// Plan is the path to the plan file commands operate on.
	Plan string `toml:"plan"`

	// APIAddr is the listen address for `lintel serve`.
	APIAddr string `toml:"api_addr"`

	// WebAddr is the listen address for `lintel web`.
	WebAddr string `toml:"web_addr"`

	// Zoom is the default timeline zoom level (week, month, quarter).
	Zoom string `toml:"zoom"`

	// Year is the default timeline year for month and quarter zoom.
	Year int `toml:"year"`

	Assistant Assistant `toml:"assistant"`
}

// Assistant contains chat assistant configuration.
type Assistant struct {
	// Endpoint is the base URL of the generateContent-style API.
	Endpoint string `toml:"endpoint"`

	// Model selects the model name appended to the endpoint path.
	Model string `toml:"model"`

	// KeyEnv names the environment variable holding the API key.
	// The key itself never lives in the config file.
	KeyEnv string `toml:"key_env"`
}

// APIKey resolves the assistant API key from the configured environment
// variable, falling back to DefaultKeyEnv.
func (a Assistant) APIKey() string {
	env := strings.TrimSpace(a.KeyEnv)
	if env == "" {
		env = DefaultKeyEnv
	}
	return os.Getenv(env)
}

// Load loads configuration from the working directory and the global
// config file. Returns an empty config if no config files exist.
func Load(dir string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, "lintel.toml"))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	return merged, nil
}

func globalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "lintel", "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Plan = mergeString(projectMeta.IsDefined("plan"), projectCfg.Plan, globalCfg.Plan)
	merged.APIAddr = mergeString(projectMeta.IsDefined("api_addr"), projectCfg.APIAddr, globalCfg.APIAddr)
	merged.WebAddr = mergeString(projectMeta.IsDefined("web_addr"), projectCfg.WebAddr, globalCfg.WebAddr)
	merged.Zoom = mergeString(projectMeta.IsDefined("zoom"), projectCfg.Zoom, globalCfg.Zoom)
	merged.Year = globalCfg.Year
	if projectMeta.IsDefined("year") {
		merged.Year = projectCfg.Year
	}
	merged.Assistant.Endpoint = mergeString(projectMeta.IsDefined("assistant", "endpoint"), projectCfg.Assistant.Endpoint, globalCfg.Assistant.Endpoint)
	merged.Assistant.Model = mergeString(projectMeta.IsDefined("assistant", "model"), projectCfg.Assistant.Model, globalCfg.Assistant.Model)
	merged.Assistant.KeyEnv = mergeString(projectMeta.IsDefined("assistant", "key_env"), projectCfg.Assistant.KeyEnv, globalCfg.Assistant.KeyEnv)

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}
