// Package config loads the treelog configuration file: endpoint URLs for the
// visualizer service and the default location of the local log store.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	defaultAPIBaseURL        = "https://api.canopy.dev/staging"
	defaultVisualizerBaseURL = "https://viz.canopy.dev"
)

// Config configures the CLI and upload client.
type Config struct {
	// APIBaseURL is the visualizer API endpoint logs are POSTed to.
	APIBaseURL string `yaml:"api_base_url"`
	// VisualizerBaseURL is the site access URLs are built against.
	VisualizerBaseURL string `yaml:"visualizer_base_url"`
	// DBPath overrides store discovery when set.
	DBPath string `yaml:"db_path"`
}

func (c *Config) defaults() {
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}
	if c.VisualizerBaseURL == "" {
		c.VisualizerBaseURL = defaultVisualizerBaseURL
	}
}

// Load reads a config file. A missing file is not an error: it yields the
// defaults, so running without any config just works.
func Load(path string) (*Config, error) {
	c := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.defaults()
			return c, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	c.defaults()
	return c, nil
}

// Discover loads the config from TREELOG_CONFIG if set, otherwise from
// ~/.config/treelog/config.yaml, otherwise returns the defaults.
func Discover() (*Config, error) {
	if path := os.Getenv("TREELOG_CONFIG"); path != "" {
		return Load(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		c := &Config{}
		c.defaults()
		return c, nil
	}
	return Load(filepath.Join(home, ".config", "treelog", "config.yaml"))
}
