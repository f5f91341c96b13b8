package cmd

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/pagespec/packages/core/runner"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <suite|directory>...",
	Short: "Validate suite files without reading artifacts",
	Long: `Validate suite files against the suite schema and compile their checks
without reading any artifact.

Examples:
  pagespec validate site.pagespec.yaml
  pagespec validate ./suites/`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	files, err := runner.CollectSuiteFiles(args)
	if err != nil {
		return &ExitError{Code: exitCodeFor(err), Err: err}
	}

	if len(files) == 0 {
		return usageError("no *.pagespec.yaml files found in %s", strings.Join(args, ", "))
	}

	// Variables stay unresolved here, so patterns that need them are checked by run.
	r := runner.NewRunner(&runner.Config{DeferUnresolvedPatterns: true})

	code := ExitSuccess
	for _, file := range files {
		plan, err := r.Prepare(file)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error in %s: %v\n", file, err)
			if code == ExitSuccess {
				code = exitCodeFor(err)
			}
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s (%d checks)\n", file, len(plan.Checks))
	}

	if code != ExitSuccess {
		return &ExitError{Code: code, Reported: true}
	}
	return nil
}
