// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config carries the binary's own settings, read from argonaut.toml in the
// current directory or the user config directory. Environment conventions
// (NO_COLOR, ARGONAUT_*) override the file.
type Config struct {
	NoColor  bool `mapstructure:"no_color"`
	NoPrompt bool `mapstructure:"no_prompt"`
	Explain  bool `mapstructure:"explain"`
	Debug    bool `mapstructure:"debug"`
	// ModelPaths are the directories searched for relative model file
	// arguments, in order.
	ModelPaths []string `mapstructure:"model_paths"`
}

const (
	configName = "argonaut"
	configExt  = "toml"
)

// loadConfig reads the configuration, falling back to defaults when no file
// exists. An explicit path must exist and parse.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("no_color", false)
	v.SetDefault("no_prompt", false)
	v.SetDefault("explain", false)
	v.SetDefault("debug", false)
	v.SetDefault("model_paths", []string{"."})

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configExt)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, configName))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("load config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// findModel resolves a model file argument against the configured search
// paths. Absolute paths and paths that exist as given are used directly.
func (c *Config) findModel(arg string) (string, error) {
	if filepath.IsAbs(arg) {
		return arg, nil
	}
	if _, err := os.Stat(arg); err == nil {
		return arg, nil
	}
	for _, dir := range c.ModelPaths {
		candidate := filepath.Join(dir, arg)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("model file %s not found in %v", arg, c.ModelPaths)
}
