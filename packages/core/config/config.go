package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the pagespec project configuration
type Config struct {
	DefaultEnvironment string                       `yaml:"defaultEnvironment,omitempty"`
	Output             string                       `yaml:"output,omitempty"`     // console, json, junit, tap, html
	OutputFile         string                       `yaml:"outputFile,omitempty"` // write report here instead of stdout
	Verbose            *bool                        `yaml:"verbose,omitempty"`
	NoColor            *bool                        `yaml:"noColor,omitempty"`
	Variables          map[string]string            `yaml:"variables,omitempty"`
	Environments       map[string]map[string]string `yaml:"environments,omitempty"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

// boolPtr returns a pointer to a bool value
func boolPtr(b bool) *bool {
	return &b
}

// BoolPtr is exported version of boolPtr for external use
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// ConfigFilenames contains the possible config file names, in lookup order
var ConfigFilenames = []string{
	"pagespec.config.yaml",
	".pagespec.config.yaml",
	".pagespecrc.yaml",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	config.Path = path

	return config, nil
}

// Validate reports settings that can never work.
func (c *Config) Validate() error {
	if c.Output != "" && !IsOutputFormat(c.Output) {
		return fmt.Errorf("unknown output format %q", c.Output)
	}
	if c.DefaultEnvironment != "" && len(c.Environments) > 0 {
		if _, ok := c.Environments[c.DefaultEnvironment]; !ok {
			return fmt.Errorf("defaultEnvironment %q is not defined in environments", c.DefaultEnvironment)
		}
	}
	return nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.DefaultEnvironment != "" {
		result.DefaultEnvironment = other.DefaultEnvironment
	}
	if other.Output != "" {
		result.Output = other.Output
	}
	if other.OutputFile != "" {
		result.OutputFile = other.OutputFile
	}
	if other.Path != "" {
		result.Path = other.Path
	}

	// Boolean flags - only override if explicitly set in other config
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	if len(other.Variables) > 0 {
		result.Variables = maps.Clone(c.Variables)
		if result.Variables == nil {
			result.Variables = make(map[string]string)
		}
		maps.Copy(result.Variables, other.Variables)
	}

	if len(other.Environments) > 0 {
		result.Environments = make(map[string]map[string]string, len(c.Environments))
		for name, vars := range c.Environments {
			result.Environments[name] = maps.Clone(vars)
		}
		for name, vars := range other.Environments {
			if result.Environments[name] == nil {
				result.Environments[name] = make(map[string]string)
			}
			maps.Copy(result.Environments[name], vars)
		}
	}

	return &result
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
