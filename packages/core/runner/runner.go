package runner

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/abdul-hamid-achik/pagespec/packages/assertions"
	"github.com/abdul-hamid-achik/pagespec/packages/core/artifact"
	"github.com/abdul-hamid-achik/pagespec/packages/core/env"
	"github.com/abdul-hamid-achik/pagespec/packages/core/parser"
	"github.com/abdul-hamid-achik/pagespec/packages/logging"
	"github.com/rs/zerolog"
)

var (
	// ErrParse wraps suite read, schema and compile failures.
	ErrParse = errors.New("invalid suite")
	// ErrConfig wraps failures in variable sources such as environments and env files.
	ErrConfig = errors.New("invalid configuration")
)

type Runner struct {
	config *Config
	logger zerolog.Logger

	baseOnce sync.Once
	base     *env.Resolver
	baseErr  error
}

type Config struct {
	Environment        string
	EnvFile            string
	Variables          map[string]string // --var overrides, highest precedence
	ConfigVariables    map[string]string
	ConfigEnvironments map[string]map[string]string
	ArtifactOverride   string
	Stdin              io.Reader // read when the artifact is "-"; os.Stdin when nil
	NameFilter         string
	TagsFilter         []string
	SectionFilter      string
	// DeferUnresolvedPatterns lets suites whose patterns depend on variables
	// that are not set compile anyway; validate uses it.
	DeferUnresolvedPatterns bool
	Logger                  *zerolog.Logger
}

func NewRunner(cfg *Config) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Runner{
		config: cfg,
		logger: logger,
	}
}

// RunResult is a Report together with what the suite file said about it.
type RunResult struct {
	File         string
	Name         string
	Title        string
	Style        string
	ArtifactPath string
	*Report
	Duration time.Duration
}

// Plan is a parsed, compiled and filtered suite that has not touched its
// artifact yet.
type Plan struct {
	Suite        *parser.Suite
	Checks       []*assertions.Check
	ArtifactPath string
	Title        string
	Style        string
	// Filtered counts checks removed by name, tag or section filters.
	Filtered int
}

// Prepare parses and compiles the suite at path without reading its artifact.
func (r *Runner) Prepare(path string) (*Plan, error) {
	suite, err := parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	resolver, err := r.newResolver(suite)
	if err != nil {
		return nil, err
	}

	var opts []assertions.CompileOption
	if r.config.DeferUnresolvedPatterns {
		opts = append(opts, assertions.DeferUnresolvedPatterns())
	}
	checks, err := assertions.Compile(suite, resolver.Resolve, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}

	plan := &Plan{
		Suite:        suite,
		ArtifactPath: r.artifactPath(suite, resolver),
		Style:        suite.EffectiveStyle(),
	}
	plan.Title = resolver.Resolve(suite.Title)
	if plan.Title == "" {
		plan.Title = DefaultTitle(plan.Style, plan.ArtifactPath)
	}

	all := suite.AllChecks()
	for i, check := range checks {
		if !r.shouldRun(check, all[i].Section) {
			plan.Filtered++
			continue
		}
		plan.Checks = append(plan.Checks, check)
	}

	r.logger.Debug().
		Str("suite", path).
		Str("artifact", plan.ArtifactPath).
		Int("checks", len(plan.Checks)).
		Int("variables", len(resolver.Variables())).
		Int("filtered", plan.Filtered).
		Msg("suite compiled")

	return plan, nil
}

// RunFile runs the suite at path. A missing or unreadable artifact is
// returned as an error wrapping *artifact.LoadError and produces no report.
func (r *Runner) RunFile(path string) (*RunResult, error) {
	plan, err := r.Prepare(path)
	if err != nil {
		return nil, err
	}
	return r.Run(plan)
}

// Run loads the plan's artifact and evaluates its checks.
func (r *Runner) Run(plan *Plan) (*RunResult, error) {
	start := time.Now()

	art, err := r.loadArtifact(plan.ArtifactPath)
	if err != nil {
		return nil, fmt.Errorf("suite %s: %w", plan.Suite.Path, err)
	}
	r.logger.Debug().Str("artifact", art.Source).Int("bytes", art.Len()).Msg("artifact loaded")

	report := RunSuite(plan.Checks, art)

	return &RunResult{
		File:         plan.Suite.Path,
		Name:         plan.Suite.DisplayName(),
		Title:        plan.Title,
		Style:        plan.Style,
		ArtifactPath: plan.ArtifactPath,
		Report:       report,
		Duration:     time.Since(start),
	}, nil
}

// baseResolver holds the variables every suite shares, lowest precedence
// first: config variables, the selected environment and the env file. The
// env file is also exported so {{$NAME}} references can see it. It is built
// on first use and reused for every later suite.
func (r *Runner) baseResolver() (*env.Resolver, error) {
	r.baseOnce.Do(func() {
		environment, err := env.LoadEnvironment(r.config.ConfigEnvironments, r.config.Environment)
		if err != nil {
			r.baseErr = fmt.Errorf("%w: %w", ErrConfig, err)
			return
		}

		var dotenv map[string]string
		if r.config.EnvFile != "" {
			dotenv, err = env.LoadAndExportDotEnv(r.config.EnvFile)
			if err != nil {
				r.baseErr = fmt.Errorf("%w: %w", ErrConfig, err)
				return
			}
		}

		r.base = env.NewResolver()
		r.base.SetVariables(env.MergeVariables(r.config.ConfigVariables, environment.Variables, dotenv))
	})
	return r.base, r.baseErr
}

// newResolver clones the base resolver and layers the suite's own variables
// and the command-line overrides on top.
func (r *Runner) newResolver(suite *parser.Suite) (*env.Resolver, error) {
	base, err := r.baseResolver()
	if err != nil {
		return nil, err
	}

	resolver := base.Clone()
	resolver.SetWarnFunc(logging.Warnf(r.logger.With().Str("suite", suite.Path).Logger()))
	resolver.SetVariables(suite.Variables)
	resolver.SetVariables(r.config.Variables)
	return resolver, nil
}

func (r *Runner) artifactPath(suite *parser.Suite, resolver *env.Resolver) string {
	if r.config.ArtifactOverride != "" {
		return r.config.ArtifactOverride
	}

	path := resolver.Resolve(suite.Artifact)
	if path == artifact.StdinSource || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(suite.Path), path)
}

func (r *Runner) loadArtifact(path string) (*artifact.Artifact, error) {
	if path == artifact.StdinSource && r.config.Stdin != nil {
		return artifact.LoadReader("stdin", r.config.Stdin)
	}
	return artifact.Load(path)
}

func (r *Runner) shouldRun(check *assertions.Check, section *parser.Section) bool {
	if r.config.NameFilter != "" {
		if !matchesPattern(check.Description, r.config.NameFilter) {
			return false
		}
	}

	if len(r.config.TagsFilter) > 0 {
		if !hasAnyTag(check.Tags, r.config.TagsFilter) {
			return false
		}
	}

	if r.config.SectionFilter != "" {
		if section == nil || !matchesPattern(strings.ToLower(section.Name), strings.ToLower(r.config.SectionFilter)) {
			return false
		}
	}

	return true
}

// DefaultTitle is the report title used when a suite does not set one.
func DefaultTitle(style, artifactPath string) string {
	base := filepath.Base(artifactPath)
	if artifactPath == artifact.StdinSource {
		base = "stdin"
	}
	if style == parser.StyleSectioned {
		return fmt.Sprintf("🚀 Running %s Test Suite", base)
	}
	return fmt.Sprintf("Running tests for %s...", base)
}

func matchesPattern(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	if len(pattern) > 1 && pattern[0] == '*' && pattern[len(pattern)-1] == '*' {
		return strings.Contains(name, pattern[1:len(pattern)-1])
	}

	if pattern[0] == '*' {
		return strings.HasSuffix(name, pattern[1:])
	}

	if pattern[len(pattern)-1] == '*' {
		return strings.HasPrefix(name, pattern[:len(pattern)-1])
	}

	return name == pattern
}

func hasAnyTag(tags []string, filters []string) bool {
	for _, filter := range filters {
		for _, tag := range tags {
			if tag == filter {
				return true
			}
		}
	}
	return false
}
