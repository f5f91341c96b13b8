package runner

import (
	"github.com/abdul-hamid-achik/pagespec/packages/assertions"
	"github.com/abdul-hamid-achik/pagespec/packages/core/artifact"
)

// Exit statuses derived from a report.
const (
	ExitPassed = 0
	ExitFailed = 1
)

// Report is the aggregate outcome of one suite run. Passed+Failed always
// equals len(Results).
type Report struct {
	Artifact *artifact.Artifact
	Results  []*assertions.Result
	Passed   int
	Failed   int
}

func (r *Report) Total() int {
	return len(r.Results)
}

// Success reports whether no check failed. An empty report succeeds.
func (r *Report) Success() bool {
	return r.Failed == 0
}

func (r *Report) ExitCode() int {
	return ExitCode(r.Failed)
}

// ExitCode is 0 when nothing failed and 1 otherwise.
func ExitCode(failed int) int {
	if failed == 0 {
		return ExitPassed
	}
	return ExitFailed
}

// RunSuite evaluates every check in order against art. It never stops early
// and never panics; a check that panics is recorded as a failure.
func RunSuite(checks []*assertions.Check, art *artifact.Artifact) *Report {
	text := ""
	if art != nil {
		text = art.Text
	}

	report := &Report{
		Artifact: art,
		Results:  assertions.EvaluateAll(checks, text),
	}
	for _, result := range report.Results {
		if result.Passed {
			report.Passed++
		} else {
			report.Failed++
		}
	}
	return report
}
