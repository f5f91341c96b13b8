package env

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

type Environment struct {
	Name      string
	Variables map[string]string
}

// LoadEnvironment picks envName out of the config's environments block.
// An empty name yields an empty environment; an unknown one is an error.
func LoadEnvironment(configEnvs map[string]map[string]string, envName string) (*Environment, error) {
	env := &Environment{
		Name:      envName,
		Variables: make(map[string]string),
	}
	if envName == "" {
		return env, nil
	}

	vars, ok := configEnvs[envName]
	if !ok {
		known := slices.Sorted(maps.Keys(configEnvs))
		if len(known) == 0 {
			return nil, fmt.Errorf("unknown environment %q: config defines no environments", envName)
		}
		return nil, fmt.Errorf("unknown environment %q (available: %s)", envName, strings.Join(known, ", "))
	}
	maps.Copy(env.Variables, vars)
	return env, nil
}

func MergeVariables(sources ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, src := range sources {
		maps.Copy(result, src)
	}
	return result
}

// ParseAssignments turns key=value pairs into a map. The value may contain '='.
func ParseAssignments(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("invalid variable %q: expected key=value", pair)
		}
		result[key] = value
	}
	return result, nil
}
