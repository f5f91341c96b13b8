package output

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/pagespec/packages/core/artifact"
	"github.com/abdul-hamid-achik/pagespec/packages/core/runner"
	"github.com/google/uuid"
)

// JSONOutput represents the complete JSON output structure
type JSONOutput struct {
	RunID    string      `json:"runId"`
	Summary  JSONSummary `json:"summary"`
	Suites   []JSONSuite `json:"suites"`
	Tests    []JSONTest  `json:"tests"`
	Errors   []JSONError `json:"errors,omitempty"`
	Duration float64     `json:"duration"`
	Time     string      `json:"time"`
}

// JSONSummary represents the test summary
type JSONSummary struct {
	Suites  int  `json:"suites"`
	Total   int  `json:"total"`
	Passed  int  `json:"passed"`
	Failed  int  `json:"failed"`
	Errors  int  `json:"errors"`
	Success bool `json:"success"`
}

// JSONSuite summarises one suite file
type JSONSuite struct {
	File     string  `json:"file"`
	Name     string  `json:"name"`
	Artifact string  `json:"artifact"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Duration float64 `json:"duration"`
}

// JSONTest represents a single check result
type JSONTest struct {
	Name    string `json:"name"`
	Suite   string `json:"suite"`
	File    string `json:"file"`
	Section string `json:"section,omitempty"`
	Kind    string `json:"kind"`
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSONError represents a suite that could not run
type JSONError struct {
	Message  string `json:"message"`
	Artifact string `json:"artifact,omitempty"`
}

// JSONFormatter formats test results as JSON
type JSONFormatter struct {
	writer  io.Writer
	runID   string
	suites  []JSONSuite
	results []JSONTest
	errors  []JSONError
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer:  os.Stdout,
		runID:   uuid.NewString(),
		suites:  make([]JSONSuite, 0),
		results: make([]JSONTest, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

// JSONWithRunID replaces the generated run id.
func JSONWithRunID(id string) JSONOption {
	return func(f *JSONFormatter) {
		f.runID = id
	}
}

// RunID returns the id stamped on this run's output.
func (f *JSONFormatter) RunID() string {
	return f.runID
}

func (f *JSONFormatter) FormatResult(result *runner.RunResult) {
	f.suites = append(f.suites, JSONSuite{
		File:     result.File,
		Name:     result.Name,
		Artifact: result.ArtifactPath,
		Passed:   result.Passed,
		Failed:   result.Failed,
		Duration: float64(result.Duration.Milliseconds()),
	})

	for _, r := range result.Results {
		test := JSONTest{
			Name:    r.Description,
			Suite:   result.Name,
			File:    result.File,
			Section: r.Section,
			Kind:    r.Kind.String(),
			Passed:  r.Passed,
			Message: r.Message,
		}
		if r.Err != nil {
			test.Error = r.Err.Error()
		}
		f.results = append(f.results, test)
	}
}

func (f *JSONFormatter) FormatError(err error) {
	jerr := JSONError{Message: err.Error()}
	var loadErr *artifact.LoadError
	if errors.As(err, &loadErr) {
		jerr.Artifact = loadErr.Source
	}
	f.errors = append(f.errors, jerr)
}

func (f *JSONFormatter) FormatHeader(version string) {
	// No header needed for JSON output
}

// Flush writes the accumulated JSON output
func (f *JSONFormatter) Flush(totalDuration time.Duration) error {
	var passed, failed int
	for _, t := range f.results {
		if t.Passed {
			passed++
		} else {
			failed++
		}
	}

	output := JSONOutput{
		RunID: f.runID,
		Summary: JSONSummary{
			Suites:  len(f.suites),
			Total:   len(f.results),
			Passed:  passed,
			Failed:  failed,
			Errors:  len(f.errors),
			Success: failed == 0 && len(f.errors) == 0,
		},
		Suites:   f.suites,
		Tests:    f.results,
		Errors:   f.errors,
		Duration: float64(totalDuration.Milliseconds()),
		Time:     time.Now().Format(time.RFC3339),
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(output)
}
