// Package cmd implements the pagespec CLI commands using Cobra.
//
// Available commands:
//   - run: Evaluate suite files against their artifacts
//   - validate: Check suite files without reading artifacts
//   - list: Display the checks each suite would run
//   - init: Create a starter config, suite and page
//   - schema: Print the JSON Schema for suite files
//   - version: Show pagespec version information
//
// Exit statuses are defined in exitcodes.go and carried out of RunE as
// *ExitError values.
package cmd
