// Package runner executes pagespec suite files.
//
// A run has three separate steps, each usable on its own:
//   - RunSuite evaluates compiled checks against an artifact and returns a Report
//   - a formatter from the output package prints the Report
//   - ExitCode maps the failure count to a process status
//
// Runner.RunFile chains them for one suite file: parse, resolve variables,
// compile, filter, load the artifact and run.
package runner
