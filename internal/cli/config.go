package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CLIConfig holds CLI configuration persisted to disk.
type CLIConfig struct {
	DBPath    string `yaml:"db_path,omitempty"`
	ImagesDir string `yaml:"images_dir,omitempty"`
}

// configPath returns the path to the CLI config file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "casaviva", "config.yaml"), nil
}

// loadConfig reads the CLI config from disk.
// Returns a zero-value config if the file doesn't exist.
func loadConfig() (CLIConfig, error) {
	path, err := configPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return CLIConfig{}, nil
	}
	if err != nil {
		return CLIConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// saveConfig writes the CLI config to disk.
func saveConfig(cfg CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// getDBPath returns the database path from env var or config.
func getDBPath() string {
	if v := os.Getenv("CASAVIVA_DB"); v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil {
		return cfg.DBPath
	}
	return ""
}

// imagesDir returns the image directory from flag, env var, config,
// or the default next to the database.
func imagesDir() string {
	if flagImages != "" {
		return flagImages
	}
	if v := os.Getenv("CASAVIVA_IMAGES"); v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil && cfg.ImagesDir != "" {
		return cfg.ImagesDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "images"
	}
	return filepath.Join(home, ".casaviva", "images")
}
