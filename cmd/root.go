package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"canopy/treelog/internal/config"
	"canopy/treelog/internal/store"
)

var (
	dbPath     string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "treelog",
	Short: "Capture, inspect and upload search-tree visualization logs",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the .treelog.db log store")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file")
}

// LoadConfig loads the config from --config, TREELOG_CONFIG or the default
// location.
func LoadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.Discover()
}

// DiscoverDB finds the log store path using priority: env > flag > config >
// walk-up > XDG fallback. Unlike a lookup of an existing database, the
// fallback path is always usable: the store is created on first open.
func DiscoverDB(cfg *config.Config) (string, error) {
	// 1. Environment variable
	if envPath := os.Getenv("TREELOG_DB"); envPath != "" {
		return envPath, nil
	}

	// 2. CLI flag
	if dbPath != "" {
		return dbPath, nil
	}

	// 3. Config file
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, nil
	}

	// 4. Walk up from CWD looking for an existing store
	dir, err := os.Getwd()
	if err == nil {
		for {
			candidate := filepath.Join(dir, ".treelog.db")
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	// 5. XDG fallback
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("no store location found (set TREELOG_DB or use --db): %w", err)
	}
	xdgDir := filepath.Join(home, ".local", "share", "canopy-treelog")
	if err := os.MkdirAll(xdgDir, 0o755); err != nil {
		return "", fmt.Errorf("creating store directory: %w", err)
	}
	return filepath.Join(xdgDir, "treelog.db"), nil
}

// OpenStore discovers and opens the log store.
func OpenStore(cfg *config.Config) (*store.Store, error) {
	path, err := DiscoverDB(cfg)
	if err != nil {
		return nil, err
	}
	return store.Open(path)
}
