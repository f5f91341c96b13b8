// Package output provides formatters for displaying suite reports.
//
// Supported output formats:
//   - Console: the compact and sectioned terminal layouts
//   - JSON: machine-readable report stamped with a run id
//   - JUnit: JUnit XML for CI integration
//   - TAP: Test Anything Protocol version 13
//   - HTML: a standalone report page
//
// Every formatter has FormatResult, FormatError and FormatHeader, and a Flush
// method that writes anything accumulated across suites.
package output
