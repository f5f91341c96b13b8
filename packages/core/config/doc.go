// Package config handles configuration loading for pagespec.
//
// It provides functionality for:
//   - Loading the project file (pagespec.config.yaml and friends)
//   - Default configuration values and merging
//   - Environment-variable defaults for command-line flags
package config
