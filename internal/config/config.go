// Package config handles global configuration and translator credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/cite/config.yml.
type GlobalConfig struct {
	Zotero        ZoteroConfig `yaml:"zotero,omitempty"`
	DefaultFormat string       `yaml:"default_format,omitempty"`
}

// ZoteroConfig holds translation server credentials in the config file.
type ZoteroConfig struct {
	APIURL string `yaml:"api_url,omitempty"`
	APIKey string `yaml:"api_key,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "cite"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// HistoryDBFile is the query history database name under the data dir.
	HistoryDBFile = "history.db"
)

// Environment variable names for translator credentials. These take
// precedence over the config file.
const (
	EnvAPIURL = "ZOTERO_API_URL"
	EnvAPIKey = "ZOTERO_API_KEY"
)

// Credentials is the read-only translator server configuration resolved
// once at command start. Absence is a valid state: it only disables
// comparison mode.
type Credentials struct {
	APIURL string
	APIKey string
}

// Enabled reports whether a translation server is configured.
func (c Credentials) Enabled() bool {
	return c.APIURL != ""
}

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/cite/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// HistoryDBPath returns the path to the query history database.
// Respects XDG_DATA_HOME, defaults to ~/.local/share/cite/history.db.
func HistoryDBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, GlobalConfigDir, HistoryDBFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// SaveGlobalConfig writes the global configuration file, creating the
// config directory if needed, and refreshes the cache.
func SaveGlobalConfig(cfg *GlobalConfig) error {
	path := GlobalConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	globalConfigCache = cfg
	return nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// ResolveCredentials resolves translator credentials, environment first,
// then the global config file. Missing credentials are not an error.
func ResolveCredentials() Credentials {
	if u := os.Getenv(EnvAPIURL); u != "" {
		return Credentials{APIURL: u, APIKey: os.Getenv(EnvAPIKey)}
	}

	cfg, err := LoadGlobalConfig()
	if err != nil {
		return Credentials{}
	}
	return Credentials{APIURL: cfg.Zotero.APIURL, APIKey: cfg.Zotero.APIKey}
}
