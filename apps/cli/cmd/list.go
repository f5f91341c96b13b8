package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/abdul-hamid-achik/pagespec/packages/core/parser"
	"github.com/abdul-hamid-achik/pagespec/packages/core/runner"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <suite|directory>...",
	Short: "List the checks in suite files",
	Long: `List every suite with its artifact, sections and checks.

Examples:
  pagespec list space.pagespec.yaml
  pagespec list ./suites/`,
	Args: cobra.MinimumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	files, err := runner.CollectSuiteFiles(args)
	if err != nil {
		return &ExitError{Code: exitCodeFor(err), Err: err}
	}

	if len(files) == 0 {
		return usageError("no *.pagespec.yaml files found in %s", strings.Join(args, ", "))
	}

	code := ExitSuccess
	out := cmd.OutOrStdout()
	for _, file := range files {
		suite, err := parser.ParseFile(file)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error parsing %s: %v\n", file, err)
			code = ExitParseError
			continue
		}

		fmt.Fprintf(out, "\n%s: %s\n", file, suite.DisplayName())
		fmt.Fprintf(out, "  artifact: %s\n", suite.Artifact)
		if len(suite.Tags) > 0 {
			fmt.Fprintf(out, "  tags: %v\n", suite.Tags)
		}

		listChecks(out, "  ", suite.Checks)
		for _, section := range suite.Sections {
			fmt.Fprintf(out, "  %s:\n", section.Header())
			listChecks(out, "    ", section.Checks)
		}
	}

	if code != ExitSuccess {
		return &ExitError{Code: code, Reported: true}
	}
	return nil
}

func listChecks(w io.Writer, indent string, checks []*parser.Check) {
	for _, c := range checks {
		fmt.Fprintf(w, "%s- %s\n", indent, c.Name)
		if len(c.Tags) > 0 {
			fmt.Fprintf(w, "%s  tags: %v\n", indent, c.Tags)
		}
	}
}
