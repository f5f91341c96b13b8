package env

import (
	"fmt"

	"github.com/joho/godotenv"
)

// LoadDotEnv parses a .env file and returns its key-value pairs.
// Values are not exported to the process environment.
func LoadDotEnv(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read env file %s: %w", path, err)
	}
	return vars, nil
}

// LoadAndExportDotEnv parses a .env file and exports each pair that is not
// already set, so {{$NAME}} references can see it.
func LoadAndExportDotEnv(path string) (map[string]string, error) {
	vars, err := LoadDotEnv(path)
	if err != nil {
		return nil, err
	}
	if err := godotenv.Load(path); err != nil {
		return nil, fmt.Errorf("exporting env file %s: %w", path, err)
	}
	return vars, nil
}
