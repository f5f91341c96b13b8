package output

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/pagespec/packages/core/runner"
)

// HTMLOutput represents the complete HTML output structure
type HTMLOutput struct {
	Version       string
	Summary       HTMLSummary
	Suites        []HTMLSuite
	Errors        []string
	Duration      float64
	Time          string
	PassedPercent float64
	FailedPercent float64
}

// HTMLSummary represents the test summary for HTML output
type HTMLSummary struct {
	Total  int
	Passed int
	Failed int
}

// HTMLSuite is one suite file with its checks grouped by section
type HTMLSuite struct {
	Name     string
	File     string
	Artifact string
	Passed   int
	Failed   int
	Duration float64
	Sections []HTMLSection
}

// HTMLSection groups consecutive checks that share a section header
type HTMLSection struct {
	Name  string
	Tests []HTMLTest
}

// HTMLTest represents a single check result for HTML output
type HTMLTest struct {
	Name        string
	Kind        string
	Passed      bool
	Message     string
	Error       string
	StatusClass string
}

// HTMLFormatter formats test results as HTML
type HTMLFormatter struct {
	writer  io.Writer
	suites  []HTMLSuite
	errors  []string
	version string
}

// HTMLOption is a functional option for HTMLFormatter
type HTMLOption func(*HTMLFormatter)

// NewHTMLFormatter creates a new HTML formatter
func NewHTMLFormatter(opts ...HTMLOption) *HTMLFormatter {
	f := &HTMLFormatter{
		writer: os.Stdout,
		suites: make([]HTMLSuite, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// HTMLWithWriter sets the output writer
func HTMLWithWriter(w io.Writer) HTMLOption {
	return func(f *HTMLFormatter) {
		f.writer = w
	}
}

// FormatResult accumulates a suite result
func (f *HTMLFormatter) FormatResult(result *runner.RunResult) {
	suite := HTMLSuite{
		Name:     result.Name,
		File:     result.File,
		Artifact: result.ArtifactPath,
		Passed:   result.Passed,
		Failed:   result.Failed,
		Duration: float64(result.Duration.Milliseconds()),
	}

	for i, r := range result.Results {
		if i == 0 || r.Section != result.Results[i-1].Section {
			suite.Sections = append(suite.Sections, HTMLSection{Name: r.Section})
		}

		test := HTMLTest{
			Name:        r.Description,
			Kind:        r.Kind.String(),
			Passed:      r.Passed,
			Message:     r.Message,
			StatusClass: "passed",
		}
		if !r.Passed {
			test.StatusClass = "failed"
		}
		if r.Err != nil {
			test.Error = r.Err.Error()
			test.StatusClass = "errored"
		}

		last := &suite.Sections[len(suite.Sections)-1]
		last.Tests = append(last.Tests, test)
	}

	f.suites = append(f.suites, suite)
}

// FormatError records a suite that could not run
func (f *HTMLFormatter) FormatError(err error) {
	f.errors = append(f.errors, err.Error())
}

// FormatHeader captures the version for the HTML report
func (f *HTMLFormatter) FormatHeader(version string) {
	f.version = version
}

// Flush writes the accumulated HTML output
func (f *HTMLFormatter) Flush(totalDuration time.Duration) error {
	var passed, failed int
	for _, s := range f.suites {
		passed += s.Passed
		failed += s.Failed
	}

	total := passed + failed
	var passedPct, failedPct float64
	if total > 0 {
		passedPct = float64(passed) / float64(total) * 100
		failedPct = float64(failed) / float64(total) * 100
	}

	output := HTMLOutput{
		Version: f.version,
		Summary: HTMLSummary{
			Total:  total,
			Passed: passed,
			Failed: failed,
		},
		Suites:        f.suites,
		Errors:        f.errors,
		Duration:      float64(totalDuration.Milliseconds()),
		Time:          time.Now().Format("2006-01-02 15:04:05"),
		PassedPercent: passedPct,
		FailedPercent: failedPct,
	}

	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}

	return tmpl.Execute(f.writer, output)
}
