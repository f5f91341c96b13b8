package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/abdul-hamid-achik/pagespec/packages/core/artifact"
	"github.com/abdul-hamid-achik/pagespec/packages/core/runner"
)

// Exit codes for pagespec CLI
const (
	// ExitSuccess indicates all checks passed
	ExitSuccess = 0

	// ExitTestFailure indicates one or more checks failed
	ExitTestFailure = 1

	// ExitParseError indicates a suite file could not be read, decoded or compiled
	ExitParseError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitLoadError indicates an artifact could not be read
	ExitLoadError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// ExitError carries an exit status out of a command. Reported is set when
// the error was already shown to the user.
type ExitError struct {
	Code     int
	Err      error
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: ExitUsageError, Err: fmt.Errorf(format, args...)}
}

// exitCodeFor classifies an error returned by the runner.
func exitCodeFor(err error) int {
	var loadErr *artifact.LoadError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &loadErr):
		return ExitLoadError
	case errors.Is(err, runner.ErrConfig):
		return ExitConfigError
	case errors.Is(err, runner.ErrParse):
		return ExitParseError
	default:
		return ExitTestFailure
	}
}

// exitCode maps the error returned by the root command to a process status,
// printing it to w unless it was already reported.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if !exitErr.Reported && exitErr.Err != nil {
			fmt.Fprintf(w, "Error: %v\n", exitErr.Err)
		}
		return exitErr.Code
	}

	// Anything else comes from cobra itself: unknown flags, bad arguments.
	fmt.Fprintf(w, "Error: %v\n", err)
	return ExitUsageError
}
