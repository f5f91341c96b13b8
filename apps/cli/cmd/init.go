package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/pagespec/packages/core/config"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new pagespec project",
	Long: `Initialize a new pagespec project in the current directory.

This creates:
  - pagespec.config.yaml   - Configuration file with environments
  - example.pagespec.yaml  - Example suite
  - example.html           - Page the example suite checks

Examples:
  pagespec init
  pagespec init --force`,
	Args: cobra.NoArgs,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

const exampleSuite = `name: example page
artifact: "{{page}}"
style: sectioned
tags: [example]

checks:
  - name: page is not empty
    notEmpty: true

sections:
  - name: Structure Tests
    icon: "📋"
    checks:
      - name: Has DOCTYPE declaration
        contains: "<!DOCTYPE html>"
      - name: Has page title
        matches: "<title>[^<]+</title>"
      - name: has proper head section
        expect:
          - contains: '<meta charset="UTF-8">'
            message: Should have charset meta tag
          - containsFold: viewport
            message: Should have viewport meta tag

  - name: Content Tests
    icon: "📝"
    checks:
      - name: Greets the visitor
        containsFold: "{{greeting}}"
      - name: Has at least two links
        count:
          pattern: "<a\\s+href="
          min: 2
      - name: No leftover placeholders
        notContains: "TODO"
`

const exampleHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Example Page</title>
</head>
<body>
    <h1>Hello, pagespec!</h1>
    <nav>
        <a href="/docs">Docs</a>
        <a href="/about">About</a>
    </nav>
</body>
</html>
`

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, config.ConfigFilenames[0])
	suiteFile := filepath.Join(cwd, "example.pagespec.yaml")
	pageFile := filepath.Join(cwd, "example.html")

	if !forceInit {
		for _, f := range []string{configFile, suiteFile, pageFile} {
			if _, err := os.Stat(f); err == nil {
				return usageError("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	cfg := config.DefaultConfig()
	cfg.DefaultEnvironment = "dev"
	cfg.Variables = map[string]string{
		"page": "example.html",
	}
	cfg.Environments = map[string]map[string]string{
		"dev": {
			"greeting": "hello",
		},
		"prod": {
			"greeting": "hello, pagespec",
		},
	}

	if err := cfg.SaveConfig(configFile); err != nil {
		return &ExitError{Code: ExitConfigError, Err: fmt.Errorf("failed to create config file: %w", err)}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	for _, f := range []struct {
		path    string
		content string
	}{
		{suiteFile, exampleSuite},
		{pageFile, exampleHTML},
	} {
		if err := os.WriteFile(f.path, []byte(f.content), 0644); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Base(f.path), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", f.path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\npagespec project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'pagespec run example.pagespec.yaml' to check the example page.\n")

	return nil
}
