package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/pagespec/packages/core/parser"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema for suite files",
	Long: `Print the JSON Schema that suite files are validated against.

Point your editor's YAML language server at it for completion:
  pagespec schema > pagespec.schema.json`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), parser.SchemaJSON())
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
