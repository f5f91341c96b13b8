package artifact

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// StdinSource is the source name that makes Load read from standard input.
const StdinSource = "-"

// Artifact is an immutable text blob loaded from a named source.
type Artifact struct {
	Source string
	Text   string
}

// Len returns the size of the artifact text in bytes.
func (a *Artifact) Len() int {
	return len(a.Text)
}

// LoadError reports that an artifact source could not be read.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot read artifact %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads the whole source into memory. A source of "-" reads stdin.
func Load(source string) (*Artifact, error) {
	if source == "" {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("empty artifact path")}
	}
	if source == StdinSource {
		return LoadReader("stdin", os.Stdin)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return fromBytes(source, data), nil
}

// LoadReader buffers r completely and returns it as an artifact named name.
func LoadReader(name string, r io.Reader) (*Artifact, error) {
	if r == nil {
		return nil, &LoadError{Source: name, Err: fmt.Errorf("nil reader")}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Source: name, Err: err}
	}
	return fromBytes(name, data), nil
}

// FromString wraps text that is already in memory.
func FromString(name, text string) *Artifact {
	return fromBytes(name, []byte(text))
}

func fromBytes(source string, data []byte) *Artifact {
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	return &Artifact{Source: source, Text: text}
}
