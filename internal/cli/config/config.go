// Package config loads the project configuration from stratum.yml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the Stratum project configuration
type Config struct {
	ModelDir string       `mapstructure:"model_dir"`
	Catalog  string       `mapstructure:"catalog"`
	Strict   bool         `mapstructure:"strict"`
	Report   ReportConfig `mapstructure:"report"`
}

// ReportConfig represents report output configuration
type ReportConfig struct {
	Format string `mapstructure:"format"`
}

// Load loads the configuration from stratum.yml or stratum.yaml. The file is
// searched for in the current directory and upward through the ancestors, so
// commands work from anywhere inside a project; relative model and catalog
// paths resolve against the project root.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("model_dir", "model")
	v.SetDefault("strict", false)
	v.SetDefault("report.format", "text")

	v.SetConfigName("stratum")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	root, rootErr := GetProjectRoot()
	if rootErr == nil {
		v.AddConfigPath(root)
	}

	v.SetEnvPrefix("STRATUM")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if rootErr == nil {
		if !filepath.IsAbs(config.ModelDir) {
			config.ModelDir = filepath.Join(root, config.ModelDir)
		}
		if config.Catalog != "" && !filepath.IsAbs(config.Catalog) {
			config.Catalog = filepath.Join(root, config.Catalog)
		}
	}

	return &config, nil
}

// InProject checks if the current directory is inside a Stratum project
func InProject() bool {
	_, err := GetProjectRoot()
	return err == nil
}

// GetProjectRoot tries to find the project root by looking for stratum.yml
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "stratum.yml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "stratum.yaml")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Stratum project (no stratum.yml found)")
		}
		dir = parent
	}
}
