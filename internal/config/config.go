// Package config loads the optional summon config file. Everything in it is
// a default that command-line flags override; a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config models config.yaml.
type Config struct {
	Agent   string  `yaml:"agent"`   // default agent id for invoke
	Timeout string  `yaml:"timeout"` // default invocation timeout, duration string
	Webhook Webhook `yaml:"webhook"`
	Upload  Upload  `yaml:"upload"`
}

// Webhook holds default delivery settings for invocation reports.
type Webhook struct {
	URL        string `yaml:"url"`
	AuthType   string `yaml:"auth_type"`
	AuthToken  string `yaml:"auth_token"`
	Retries    *int   `yaml:"retries"`
	RetryDelay string `yaml:"retry_delay"`
	Timeout    string `yaml:"timeout"`
}

// Upload holds default transcript upload settings.
type Upload struct {
	Provider string         `yaml:"provider"`
	Config   map[string]any `yaml:"config"`
}

// DefaultPath returns the conventional config location,
// $XDG_CONFIG_HOME/summon/config.yaml or the platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(dir, "summon", "config.yaml"), nil
}

// Load reads the config at path. An empty path means the default location.
// A file that does not exist yields an empty Config; a file that exists but
// does not parse is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}
