package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/abdul-hamid-achik/pagespec/packages/core/artifact"
	"github.com/abdul-hamid-achik/pagespec/packages/core/config"
	"github.com/abdul-hamid-achik/pagespec/packages/core/env"
	"github.com/abdul-hamid-achik/pagespec/packages/core/runner"
	"github.com/abdul-hamid-achik/pagespec/packages/logging"
	"github.com/abdul-hamid-achik/pagespec/packages/output"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <suite|directory>...",
	Short: "Run suite files against their artifacts",
	Long: `Run the checks in one or more *.pagespec.yaml suite files.

Examples:
  pagespec run examples/
  pagespec run site.pagespec.yaml --env staging
  pagespec run site.pagespec.yaml --artifact dist/index.html
  curl -s https://example.com | pagespec run site.pagespec.yaml --artifact -
  pagespec run ./suites --tags smoke --output junit --output-file report.xml
  pagespec run space.pagespec.yaml --section "Canvas*" --name "*button*"
  pagespec run ./suites --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	envFlag        string
	envFileFlag    string
	configFlag     string
	varFlags       []string
	artifactFlag   string
	nameFlag       string
	tagsFlag       string
	sectionFlag    string
	verboseFlag    int // 0=off, 1=-v, 2=-vv
	quietFlag      bool
	noColorFlag    bool
	outputFlag     string
	outputFileFlag string
	dryRunFlag     bool
	watchFlag      bool
)

func init() {
	// Suite flags
	runCmd.Flags().StringVarP(&envFlag, "env", "e", envDefaults.Environment, "Config environment to use (env: PAGESPEC_ENV)")
	runCmd.Flags().StringVar(&envFileFlag, "env-file", envDefaults.EnvFile, "Path to .env file for variable interpolation (env: PAGESPEC_ENV_FILE)")
	runCmd.Flags().StringVar(&configFlag, "config", envDefaults.ConfigFile, "Path to config file (env: PAGESPEC_CONFIG)")
	runCmd.Flags().StringArrayVar(&varFlags, "var", nil, "Set a variable, key=value (repeatable)")
	runCmd.Flags().StringVar(&artifactFlag, "artifact", "", "Check this artifact instead of the one each suite names (- for stdin)")

	// Filter flags
	runCmd.Flags().StringVarP(&nameFlag, "name", "n", "", "Run only checks matching name pattern (*x*, x*, *x)")
	runCmd.Flags().StringVarP(&tagsFlag, "tags", "t", strings.Join(envDefaults.Tags, ","), "Run only checks with any of these tags (comma-separated) (env: PAGESPEC_TAGS)")
	runCmd.Flags().StringVar(&sectionFlag, "section", "", "Run only checks in sections matching pattern")

	// Output flags
	runCmd.Flags().CountVarP(&verboseFlag, "verbose", "v", "Verbose output (-v, -vv for more detail)")
	runCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", envDefaults.Quiet, "Only print failing checks and summaries (env: PAGESPEC_QUIET)")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", envDefaults.NoColor, "Disable colored output (env: PAGESPEC_NO_COLOR)")
	runCmd.Flags().StringVarP(&outputFlag, "output", "o", envDefaults.Output, "Output format: console, json, junit, tap, html (env: PAGESPEC_OUTPUT)")
	runCmd.Flags().StringVar(&outputFileFlag, "output-file", envDefaults.OutputFile, "Write output to file (default: stdout) (env: PAGESPEC_OUTPUT_FILE)")

	// Execution flags
	runCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Parse and show what would run without reading artifacts")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch suites and artifacts for changes and re-run")
}

// Formatter interface for all output formatters
type Formatter interface {
	FormatResult(result *runner.RunResult)
	FormatError(err error)
	FormatHeader(version string)
}

// Flushable interface for formatters that need to flush output
type Flushable interface {
	Flush(totalDuration time.Duration) error
}

// settings is the config file with given flags merged over it.
type settings struct {
	config      *config.Config
	environment string
	output      string
	outputFile  string
	verbose     bool
	noColor     bool
}

// given reports whether a flag was set on the command line or through its
// PAGESPEC_* variable. Only given flags override the config file.
func given(cmd *cobra.Command, flag, envKey string) bool {
	if cmd.Flags().Changed(flag) {
		return true
	}
	_, ok := os.LookupEnv(envKey)
	return ok
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	if envDefaultsErr != nil {
		return nil, &ExitError{Code: ExitConfigError, Err: envDefaultsErr}
	}

	fileConfig, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, &ExitError{Code: ExitConfigError, Err: err}
	}

	overrides := &config.Config{}
	if given(cmd, "env", "PAGESPEC_ENV") {
		overrides.DefaultEnvironment = envFlag
	}
	if given(cmd, "output", "PAGESPEC_OUTPUT") {
		overrides.Output = outputFlag
	}
	if given(cmd, "output-file", "PAGESPEC_OUTPUT_FILE") {
		overrides.OutputFile = outputFileFlag
	}
	if verboseFlag > 0 {
		overrides.Verbose = config.BoolPtr(true)
	}
	if given(cmd, "no-color", "PAGESPEC_NO_COLOR") {
		overrides.NoColor = config.BoolPtr(noColorFlag)
	}
	cfg := fileConfig.Merge(overrides)

	s := &settings{
		config:      cfg,
		environment: cfg.DefaultEnvironment,
		output:      strings.ToLower(cfg.Output),
		outputFile:  cfg.OutputFile,
		verbose:     cfg.GetVerbose(),
		noColor:     cfg.GetNoColor(),
	}
	if s.output == "" {
		s.output = config.DefaultConfig().Output
	}
	if !config.IsOutputFormat(s.output) {
		return nil, usageError("unknown output format %q (want one of %s)", s.output, strings.Join(config.OutputFormats, ", "))
	}
	return s, nil
}

func newLogger(cmd *cobra.Command, s *settings) zerolog.Logger {
	verbosity := verboseFlag
	if s.verbose && verbosity == 0 {
		verbosity = 1
	}
	return logging.New(cmd.ErrOrStderr(), logging.Options{
		Verbosity: verbosity,
		Quiet:     quietFlag,
		NoColor:   s.noColor,
	})
}

func newFormatter(format string, w io.Writer, s *settings) Formatter {
	switch format {
	case "json":
		return output.NewJSONFormatter(output.JSONWithWriter(w))
	case "junit":
		return output.NewJUnitFormatter(output.JUnitWithWriter(w))
	case "tap":
		return output.NewTAPFormatter(output.TAPWithWriter(w))
	case "html":
		return output.NewHTMLFormatter(output.HTMLWithWriter(w))
	default: // "console"
		return output.NewConsoleFormatter(
			output.WithWriter(w),
			output.WithVerbose(s.verbose),
			output.WithNoColor(s.noColor || s.outputFile != ""),
			output.WithQuiet(quietFlag),
		)
	}
}

func splitTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func runCommand(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, s)

	if s.config.Path != "" {
		logger.Debug().Str("config", s.config.Path).Msg("config loaded")
	}

	vars, err := env.ParseAssignments(varFlags)
	if err != nil {
		return usageError("%v", err)
	}
	if watchFlag && artifactFlag == artifact.StdinSource {
		return usageError("--watch cannot read the artifact from stdin")
	}

	files, err := runner.CollectSuiteFiles(args)
	if err != nil {
		return &ExitError{Code: exitCodeFor(err), Err: err}
	}
	if len(files) == 0 {
		return usageError("no *.pagespec.yaml files found in %s", strings.Join(args, ", "))
	}

	cfg := &runner.Config{
		Environment:        s.environment,
		EnvFile:            envFileFlag,
		Variables:          vars,
		ConfigVariables:    s.config.Variables,
		ConfigEnvironments: s.config.Environments,
		ArtifactOverride:   artifactFlag,
		Stdin:              cmd.InOrStdin(),
		NameFilter:         nameFlag,
		TagsFilter:         splitTags(tagsFlag),
		SectionFilter:      sectionFlag,
		Logger:             &logger,
	}
	r := runner.NewRunner(cfg)

	if dryRunFlag {
		return dryRun(cmd, r, files)
	}

	var outWriter io.Writer = cmd.OutOrStdout()
	if s.outputFile != "" {
		file, err := os.Create(s.outputFile)
		if err != nil {
			return &ExitError{Code: ExitConfigError, Err: fmt.Errorf("cannot create output file: %w", err)}
		}
		defer file.Close()
		outWriter = file
	}

	code, watched := runSuites(r, files, newFormatter(s.output, outWriter, s))

	if !watchFlag {
		if code != ExitSuccess {
			return &ExitError{Code: code, Reported: true}
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher, err := newFileWatcher(append(watched, files...), logger)
	if err != nil {
		return &ExitError{Code: ExitConfigError, Err: err}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	err = watcher.Run(ctx, func(changed string) {
		if f, ok := outWriter.(*os.File); ok && s.outputFile != "" {
			if err := f.Truncate(0); err != nil {
				logger.Warn().Err(err).Str("file", s.outputFile).Msg("cannot truncate output file")
			}
			_, _ = f.Seek(0, io.SeekStart)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n\nFile changed: %s\nRe-running suites...\n\n", changed)

		// Fresh formatter: json/junit/tap/html accumulate state.
		runSuites(r, files, newFormatter(s.output, outWriter, s))
		fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
	})
	if err != nil {
		return &ExitError{Code: ExitConfigError, Err: err}
	}
	return nil
}

// runSuites runs every file, reports through formatter and returns the exit
// status together with the artifact paths it read. Suite errors outrank
// check failures; the first error decides the status.
func runSuites(r *runner.Runner, files []string, formatter Formatter) (int, []string) {
	formatter.FormatHeader(version)

	code := ExitSuccess
	var artifacts []string
	start := time.Now()

	for _, file := range files {
		result, err := r.RunFile(file)
		if err != nil {
			formatter.FormatError(err)
			if code == ExitSuccess || code == ExitTestFailure {
				code = exitCodeFor(err)
			}
			continue
		}

		formatter.FormatResult(result)
		if result.ArtifactPath != artifact.StdinSource {
			artifacts = append(artifacts, result.ArtifactPath)
		}
		if !result.Success() && code == ExitSuccess {
			code = ExitTestFailure
		}
	}

	if flushable, ok := formatter.(Flushable); ok {
		if err := flushable.Flush(time.Since(start)); err != nil {
			formatter.FormatError(fmt.Errorf("error writing output: %w", err))
			if code == ExitSuccess {
				code = ExitTestFailure
			}
		}
	}
	return code, artifacts
}

func dryRun(cmd *cobra.Command, r *runner.Runner, files []string) error {
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
		fmt.Fprintf(cmd.OutOrStdout(), "Would run: %s (%d checks against %s", file, len(plan.Checks), plan.ArtifactPath)
		if plan.Filtered > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), ", %d filtered", plan.Filtered)
		}
		fmt.Fprintln(cmd.OutOrStdout(), ")")
	}
	if code != ExitSuccess {
		return &ExitError{Code: code, Reported: true}
	}
	return nil
}
