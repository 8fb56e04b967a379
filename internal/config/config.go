// Package config loads the optional envfetch configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"envfetch/internal/names"
)

const (
	// DefaultPrintFormat renders one variable per line for `print`.
	DefaultPrintFormat = `{name} = "{value}"`

	envPrefix   = "ENVFETCH"
	envConfig   = "ENVFETCH_CONFIG"
	configDir   = "envfetch"
	configFile  = "config.yaml"
	placeholder = "{name}"
)

// Config is the user configuration.
type Config struct {
	PrintFormat         string  `mapstructure:"print_format" yaml:"print_format"`
	RcFile              string  `mapstructure:"rc_file" yaml:"rc_file"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold" yaml:"similarity_threshold"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		PrintFormat:         DefaultPrintFormat,
		SimilarityThreshold: names.DefaultThreshold,
	}
}

// DefaultConfigPath returns $ENVFETCH_CONFIG or the file under the user
// config directory.
func DefaultConfigPath() (string, error) {
	if path := strings.TrimSpace(os.Getenv(envConfig)); path != "" {
		return path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot find config directory: %w", err)
	}
	return filepath.Join(dir, configDir, configFile), nil
}

// Load reads configuration from path, or DefaultConfigPath when path is
// empty. A missing file yields the defaults. ENVFETCH_* variables override
// file values.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault("print_format", cfg.PrintFormat)
	v.SetDefault("rc_file", cfg.RcFile)
	v.SetDefault("similarity_threshold", cfg.SimilarityThreshold)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.RcFile = expandHome(cfg.RcFile)
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be within [0,1], got %v", c.SimilarityThreshold)
	}
	if !strings.Contains(c.PrintFormat, placeholder) {
		return fmt.Errorf("print_format must contain %s", placeholder)
	}
	return nil
}

// WriteDefault writes the default config to path, or DefaultConfigPath when
// path is empty, and returns the path written.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
