package config

import (
	"context"
	"fmt"
	"slices"

	"github.com/sethvargo/go-envconfig"
)

// OutputFormats lists the report formats the CLI understands.
var OutputFormats = []string{"console", "json", "junit", "tap", "html"}

// IsOutputFormat reports whether name is one of OutputFormats.
func IsOutputFormat(name string) bool {
	return slices.Contains(OutputFormats, name)
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Output:  "console",
		Verbose: boolPtr(false),
		NoColor: boolPtr(false),
	}
}

// EnvDefaults holds the PAGESPEC_* variables that seed command-line flag defaults.
type EnvDefaults struct {
	Environment string   `env:"PAGESPEC_ENV"`
	EnvFile     string   `env:"PAGESPEC_ENV_FILE"`
	ConfigFile  string   `env:"PAGESPEC_CONFIG"`
	Output      string   `env:"PAGESPEC_OUTPUT,default=console"`
	OutputFile  string   `env:"PAGESPEC_OUTPUT_FILE"`
	NoColor     bool     `env:"PAGESPEC_NO_COLOR,default=false"`
	Quiet       bool     `env:"PAGESPEC_QUIET,default=false"`
	Tags        []string `env:"PAGESPEC_TAGS"`
}

// LoadEnvDefaults returns EnvDefaults populated from the process environment.
func LoadEnvDefaults(ctx context.Context) (EnvDefaults, error) {
	return processEnvDefaults(ctx, envconfig.OsLookuper())
}

// LoadEnvDefaultsFrom is LoadEnvDefaults reading from a fixed map.
func LoadEnvDefaultsFrom(ctx context.Context, vars map[string]string) (EnvDefaults, error) {
	return processEnvDefaults(ctx, envconfig.MapLookuper(vars))
}

func processEnvDefaults(ctx context.Context, lookuper envconfig.Lookuper) (EnvDefaults, error) {
	var defaults EnvDefaults
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &defaults,
		Lookuper: lookuper,
	}); err != nil {
		return EnvDefaults{}, fmt.Errorf("reading PAGESPEC_* environment: %w", err)
	}
	if !IsOutputFormat(defaults.Output) {
		return EnvDefaults{}, fmt.Errorf("PAGESPEC_OUTPUT: unknown output format %q", defaults.Output)
	}
	return defaults, nil
}
