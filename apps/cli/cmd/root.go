package cmd

import (
	"context"
	"os"

	"github.com/abdul-hamid-achik/pagespec/packages/core/config"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// envDefaults seeds flag defaults from PAGESPEC_* variables. It is a package
// variable so it is ready before any init registers flags.
var envDefaults, envDefaultsErr = loadEnvDefaults()

func loadEnvDefaults() (config.EnvDefaults, error) {
	defaults, err := config.LoadEnvDefaults(context.Background())
	if err != nil {
		return config.EnvDefaults{Output: "console"}, err
	}
	return defaults, nil
}

var rootCmd = &cobra.Command{
	Use:   "pagespec",
	Short: "Declarative content checks for static pages.",
	Long: `pagespec checks the text of static artifacts, usually HTML pages,
against suites of substring and pattern checks written in YAML. It prints a
report and exits non-zero when any check fails.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	err := rootCmd.Execute()
	os.Exit(exitCode(rootCmd.ErrOrStderr(), err))
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
}
