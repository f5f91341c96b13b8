package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/pagespec/packages/assertions"
	"github.com/abdul-hamid-achik/pagespec/packages/core/artifact"
	"github.com/abdul-hamid-achik/pagespec/packages/core/parser"
	"github.com/abdul-hamid-achik/pagespec/packages/core/runner"
	"github.com/fatih/color"
)

const (
	compactRuleWidth   = 40
	sectionedRuleWidth = 50
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
	quiet   bool

	suites  int
	passed  int
	failed  int
	errored int
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

// WithQuiet hides passing checks; failures and summaries are still printed.
func WithQuiet(q bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.quiet = q
	}
}

type palette struct {
	green, red, cyan, bold func(a ...any) string
}

func (f *ConsoleFormatter) palette() palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if f.noColor {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		green: mk(color.FgGreen),
		red:   mk(color.FgRed),
		cyan:  mk(color.FgCyan),
		bold:  mk(color.Bold),
	}
}

func (f *ConsoleFormatter) FormatResult(result *runner.RunResult) {
	f.suites++
	f.passed += result.Passed
	f.failed += result.Failed

	p := f.palette()
	if result.Style == parser.StyleSectioned {
		f.formatSectioned(result, p)
	} else {
		f.formatCompact(result, p)
	}
}

func (f *ConsoleFormatter) formatCompact(result *runner.RunResult, p palette) {
	fmt.Fprintf(f.writer, "%s\n\n", p.bold(result.Title))
	f.formatArtifact(result, p)

	f.formatChecks(result, p, func(r *assertions.Result) string {
		if r.Passed {
			return p.green("✓") + " " + r.Description
		}
		return p.red("✗") + " " + r.Description
	})

	rule := strings.Repeat("=", compactRuleWidth)
	fmt.Fprintf(f.writer, "\n%s\n", rule)
	fmt.Fprintf(f.writer, "Tests: %s, %s\n",
		p.green(fmt.Sprintf("%d passed", result.Passed)),
		p.red(fmt.Sprintf("%d failed", result.Failed)))
	fmt.Fprintf(f.writer, "%s\n", rule)
	f.formatDuration(result.Duration, p)
}

func (f *ConsoleFormatter) formatSectioned(result *runner.RunResult, p palette) {
	rule := strings.Repeat("=", sectionedRuleWidth)
	fmt.Fprintf(f.writer, "%s\n\n", p.bold(result.Title))
	fmt.Fprintf(f.writer, "%s\n", rule)
	f.formatArtifact(result, p)

	f.formatChecks(result, p, func(r *assertions.Result) string {
		if r.Passed {
			return p.green("✅ PASS:") + " " + r.Description
		}
		return p.red("❌ FAIL:") + " " + r.Description
	})

	status := p.green("✅ All tests passed!")
	if !result.Success() {
		status = p.red("❌ Some tests failed")
	}
	fmt.Fprintf(f.writer, "\n%s\n", rule)
	fmt.Fprintf(f.writer, "\n%s\n\n", p.bold("📊 Test Summary:"))
	fmt.Fprintf(f.writer, "   Total: %d\n", result.Total())
	fmt.Fprintf(f.writer, "   Passed: %d\n", result.Passed)
	fmt.Fprintf(f.writer, "   Failed: %d\n", result.Failed)
	fmt.Fprintf(f.writer, "   Status: %s\n", status)
	fmt.Fprintf(f.writer, "\n%s\n", rule)
	f.formatDuration(result.Duration, p)
}

// formatChecks prints one line per result, a header whenever the section
// changes and an Error line for assertion failures and unexpected errors.
func (f *ConsoleFormatter) formatChecks(result *runner.RunResult, p palette, line func(*assertions.Result) string) {
	failingSections := make(map[string]bool)
	for _, r := range result.Results {
		if !r.Passed {
			failingSections[r.Section] = true
		}
	}

	current := ""
	for _, r := range result.Results {
		if f.quiet && r.Passed {
			continue
		}
		if r.Section != current {
			current = r.Section
			if current != "" && (!f.quiet || failingSections[current]) {
				fmt.Fprintf(f.writer, "\n%s\n\n", p.bold(current+":"))
			}
		}

		fmt.Fprintln(f.writer, line(r))
		if !r.Passed && (r.Kind == assertions.KindAssertion || r.Err != nil) {
			fmt.Fprintf(f.writer, "  Error: %s\n", r.Message)
		}
	}
}

func (f *ConsoleFormatter) formatArtifact(result *runner.RunResult, p palette) {
	if !f.verbose || result.Artifact == nil {
		return
	}
	fmt.Fprintf(f.writer, "%s\n", p.cyan(fmt.Sprintf("Suite: %s", result.File)))
	fmt.Fprintf(f.writer, "%s\n", p.cyan(fmt.Sprintf("Artifact: %s (%d bytes)", result.ArtifactPath, result.Artifact.Len())))
}

func (f *ConsoleFormatter) formatDuration(d time.Duration, p palette) {
	if f.verbose {
		fmt.Fprintf(f.writer, "%s\n", p.cyan(fmt.Sprintf("Time:  %dms", d.Milliseconds())))
	}
}

func (f *ConsoleFormatter) FormatError(err error) {
	f.errored++
	p := f.palette()

	var loadErr *artifact.LoadError
	if errors.As(err, &loadErr) {
		fmt.Fprintf(f.writer, "%s\n", p.red("❌ FATAL: Could not read "+loadErr.Source))
		if f.verbose {
			fmt.Fprintf(f.writer, "   %v\n", loadErr.Err)
		}
		return
	}
	fmt.Fprintf(f.writer, "%s %v\n", p.red("Error:"), err)
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	if !f.verbose {
		return
	}
	p := f.palette()
	fmt.Fprintf(f.writer, "%s %s\n\n", p.bold("pagespec"), version)
}

// Flush prints an aggregate line when more than one suite was attempted.
func (f *ConsoleFormatter) Flush(totalDuration time.Duration) error {
	if f.suites+f.errored <= 1 {
		return nil
	}
	p := f.palette()

	fmt.Fprintf(f.writer, "\n%s %d suites", p.bold("All suites:"), f.suites)
	if f.errored > 0 {
		fmt.Fprintf(f.writer, ", %s", p.red(fmt.Sprintf("%d errored", f.errored)))
	}
	fmt.Fprintf(f.writer, " | %s, %s, %d total",
		p.green(fmt.Sprintf("%d passed", f.passed)),
		p.red(fmt.Sprintf("%d failed", f.failed)),
		f.passed+f.failed)
	if f.verbose {
		fmt.Fprintf(f.writer, " (%dms)", totalDuration.Milliseconds())
	}
	fmt.Fprintln(f.writer)
	return nil
}
