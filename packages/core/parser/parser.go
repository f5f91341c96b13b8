package parser

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Suite file extensions recognised when collecting files from directories.
var SuiteExtensions = []string{".pagespec.yaml", ".pagespec.yml"}

// IsSuiteFile reports whether path has a suite file extension.
func IsSuiteFile(path string) bool {
	base := filepath.Base(path)
	for _, ext := range SuiteExtensions {
		if strings.HasSuffix(base, ext) && len(base) > len(ext) {
			return true
		}
	}
	return false
}

// ValidationError lists every problem found in a suite document.
type ValidationError struct {
	Path     string
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("%s: %s", e.Path, e.Problems[0])
	}
	return fmt.Sprintf("%s: %d problems:\n  - %s", e.Path, len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

// ParseFile reads and parses the suite file at path.
func ParseFile(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite file: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes and validates a suite document. path is used for error
// messages and is stored on the returned suite.
func Parse(data []byte, path string) (*Suite, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ValidationError{Path: path, Problems: []string{"suite file is empty"}}
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Path: path, Problems: []string{fmt.Sprintf("invalid YAML: %v", err)}}
	}
	if _, ok := doc.(map[string]any); !ok {
		return nil, &ValidationError{Path: path, Problems: []string{"suite document must be a mapping"}}
	}

	if problems := validateSchema(doc); len(problems) > 0 {
		return nil, &ValidationError{Path: path, Problems: problems}
	}

	suite := &Suite{}
	if err := yaml.Unmarshal(data, suite); err != nil {
		return nil, &ValidationError{Path: path, Problems: []string{fmt.Sprintf("decoding suite: %v", err)}}
	}
	suite.Path = path

	if problems := validate(suite); len(problems) > 0 {
		return nil, &ValidationError{Path: path, Problems: problems}
	}

	return suite, nil
}
