// Package config loads the steamicons configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds operator-tunable settings. Every field has a working
// default; a config file only needs the keys being overridden.
type Config struct {
	// SteamPath overrides Steam installation discovery.
	SteamPath string `yaml:"steam_path"`

	// CDNBase is the scheme and host icons are downloaded from.
	CDNBase string `yaml:"cdn_base"`

	// AppInfoAPI is the base URL of the anonymous appinfo service used by
	// the fast lookup path.
	AppInfoAPI string `yaml:"appinfo_api"`

	// SteamCMDURL is the bootstrap archive fetched when SteamCMD is
	// missing.
	SteamCMDURL string `yaml:"steamcmd_url"`

	// OutputWaitSeconds bounds how long to wait for SteamCMD's output
	// file to finish flushing.
	OutputWaitSeconds int `yaml:"output_wait_seconds"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CDNBase:           "https://cdn.cloudflare.steamstatic.com",
		AppInfoAPI:        "https://api.steamcmd.net",
		SteamCMDURL:       "https://steamcdn-a.akamaihd.net/client/installer/steamcmd.zip",
		OutputWaitSeconds: 10,
	}
}

// OutputWait returns the output-file wait bound as a duration.
func (c Config) OutputWait() time.Duration {
	return time.Duration(c.OutputWaitSeconds) * time.Second
}

// Dir returns the steamicons config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/steamicons if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "steamicons"), nil
}

// Load reads the config file at path, or {Dir}/config.yaml when path is
// empty. A missing file yields the defaults without an error. The
// STEAMICONS_STEAM_PATH environment variable overrides steam_path from
// any source.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		dir, err := Dir()
		if err != nil {
			return cfg, err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STEAMICONS_STEAM_PATH"); v != "" {
		cfg.SteamPath = v
	}
}
