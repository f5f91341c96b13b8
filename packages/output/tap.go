package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/pagespec/packages/core/runner"
)

// TAPFormatter formats test results in TAP (Test Anything Protocol) version 13
type TAPFormatter struct {
	writer    io.Writer
	testCount int
	results   []tapResult
	bailOuts  []string
}

type tapResult struct {
	number  int
	name    string
	suite   string
	section string
	passed  bool
	message string
	error   string
}

type TAPOption func(*TAPFormatter)

func NewTAPFormatter(opts ...TAPOption) *TAPFormatter {
	f := &TAPFormatter{
		writer:  os.Stdout,
		results: make([]tapResult, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func TAPWithWriter(w io.Writer) TAPOption {
	return func(f *TAPFormatter) {
		f.writer = w
	}
}

func (f *TAPFormatter) FormatResult(result *runner.RunResult) {
	for _, r := range result.Results {
		f.testCount++
		tr := tapResult{
			number:  f.testCount,
			name:    r.Description,
			suite:   result.Name,
			section: r.Section,
			passed:  r.Passed,
			message: r.Message,
		}
		if r.Err != nil {
			tr.error = r.Err.Error()
		}
		f.results = append(f.results, tr)
	}
}

// FormatError records a fatal error, written as "Bail out!" after the results.
func (f *TAPFormatter) FormatError(err error) {
	f.bailOuts = append(f.bailOuts, strings.ReplaceAll(err.Error(), "\n", " "))
}

func (f *TAPFormatter) FormatHeader(version string) {
	// Header is written in Flush
}

// Flush writes the accumulated TAP output
func (f *TAPFormatter) Flush(totalDuration time.Duration) error {
	fmt.Fprintf(f.writer, "TAP version 13\n")
	fmt.Fprintf(f.writer, "1..%d\n", f.testCount)

	for _, r := range f.results {
		if r.passed {
			fmt.Fprintf(f.writer, "ok %d - %s\n", r.number, escapeTAPDescription(r.name))
			continue
		}

		fmt.Fprintf(f.writer, "not ok %d - %s\n", r.number, escapeTAPDescription(r.name))
		fmt.Fprintf(f.writer, "  ---\n")
		fmt.Fprintf(f.writer, "  message: %s\n", escapeYAML(r.message))
		fmt.Fprintf(f.writer, "  suite: %s\n", escapeYAML(r.suite))
		if r.section != "" {
			fmt.Fprintf(f.writer, "  section: %s\n", escapeYAML(r.section))
		}
		if r.error != "" {
			fmt.Fprintf(f.writer, "  severity: error\n")
		} else {
			fmt.Fprintf(f.writer, "  severity: fail\n")
		}
		fmt.Fprintf(f.writer, "  ...\n")
	}

	for _, msg := range f.bailOuts {
		fmt.Fprintf(f.writer, "Bail out! %s\n", msg)
	}

	fmt.Fprintln(f.writer)
	return nil
}

// escapeTAPDescription keeps '#' from being read as a directive.
func escapeTAPDescription(s string) string {
	return strings.ReplaceAll(s, "#", "\\#")
}

func escapeYAML(s string) string {
	// Simple YAML escaping - wrap in quotes if contains special chars
	if s == "" || strings.ContainsAny(s, ":\n\"'[]{}#&*!|>%@`") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		return "\"" + s + "\""
	}
	return s
}
