package runner

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdul-hamid-achik/pagespec/packages/assertions"
	"github.com/abdul-hamid-achik/pagespec/packages/core/artifact"
	"github.com/abdul-hamid-achik/pagespec/packages/core/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helloPage = "<html><body>hi</body></html>"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunSuite_BodyAndHeadScenario(t *testing.T) {
	checks := []*assertions.Check{
		assertions.Boolean("has body", assertions.Contains("<body>")),
		assertions.Boolean("has head", assertions.Contains("<head>")),
	}

	report := RunSuite(checks, artifact.FromString("page.html", helloPage))

	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.ExitCode())
	require.Len(t, report.Results, 2)
	assert.True(t, report.Results[0].Passed)
	assert.Equal(t, "has head", report.Results[1].Description)
	assert.Equal(t, assertions.GenericFailureMessage, report.Results[1].Message)
}

func TestRunSuite_EmptySuite(t *testing.T) {
	report := RunSuite(nil, artifact.FromString("page.html", helloPage))
	assert.Equal(t, 0, report.Passed)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 0, report.Total())
	assert.True(t, report.Success())
	assert.Equal(t, 0, report.ExitCode())
}

func TestRunSuite_PanickingCheckDoesNotStopSuite(t *testing.T) {
	calls := 0
	checks := []*assertions.Check{
		assertions.Boolean("always throws", func(string) bool {
			calls++
			panic(errors.New("boom"))
		}),
		assertions.Boolean("after the throw", assertions.Contains("hi")),
	}

	report := RunSuite(checks, artifact.FromString("page.html", helloPage))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, "unexpected error: boom", report.Results[0].Message)
	assert.True(t, report.Results[1].Passed)
}

func TestRunSuite_AssertionShortCircuit(t *testing.T) {
	secondRan := false
	checks := []*assertions.Check{
		assertions.Assertion("closing tags",
			assertions.Assert(assertions.Contains("</head>"), "Should have closing head tag"),
			assertions.Assert(func(string) bool {
				secondRan = true
				return true
			}, "Should have closing html tag"),
		),
	}

	report := RunSuite(checks, artifact.FromString("page.html", helloPage))
	require.Len(t, report.Results, 1)
	assert.Equal(t, "Should have closing head tag", report.Results[0].Message)
	assert.False(t, secondRan)
}

func TestRunSuite_CountInvariantAndIdempotence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	needles := []string{"<body>", "<head>", "hi", "</html>", "nope", ""}

	for i := 0; i < 50; i++ {
		n := rng.Intn(12)
		checks := make([]*assertions.Check, 0, n)
		for j := 0; j < n; j++ {
			needle := needles[rng.Intn(len(needles))]
			switch rng.Intn(3) {
			case 0:
				checks = append(checks, assertions.Boolean(needle, assertions.Contains(needle)))
			case 1:
				checks = append(checks, assertions.Assertion(needle,
					assertions.Assert(assertions.NotContains(needle), "present")))
			default:
				checks = append(checks, assertions.Boolean("panics", func(string) bool { panic("x") }))
			}
		}

		art := artifact.FromString("page.html", helloPage)
		first := RunSuite(checks, art)
		second := RunSuite(checks, art)

		assert.Equal(t, len(checks), first.Passed+first.Failed, "iteration %d", i)
		assert.Equal(t, first, second, "iteration %d", i)
	}
}

func TestRunSuite_NilArtifact(t *testing.T) {
	report := RunSuite([]*assertions.Check{assertions.Boolean("empty", assertions.NotEmpty())}, nil)
	assert.Equal(t, 1, report.Failed)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(0))
	for _, failed := range []int{1, 2, 79} {
		assert.Equal(t, 1, ExitCode(failed))
	}
}

func TestNewRunner(t *testing.T) {
	t.Run("with nil config", func(t *testing.T) {
		r := NewRunner(nil)
		assert.NotNil(t, r)
		assert.NotNil(t, r.config)
	})

	t.Run("with custom config", func(t *testing.T) {
		r := NewRunner(&Config{Environment: "staging", NameFilter: "Has*"})
		assert.Equal(t, "staging", r.config.Environment)
	})
}

func TestRunner_RunFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.html", helloPage)
	suite := writeFile(t, dir, "page.pagespec.yaml", `name: hello
artifact: page.html
checks:
  - name: has body
    contains: "<body>"
  - name: has head
    contains: "<head>"
`)

	result, err := NewRunner(nil).RunFile(suite)
	require.NoError(t, err)

	assert.Equal(t, suite, result.File)
	assert.Equal(t, "hello", result.Name)
	assert.Equal(t, filepath.Join(dir, "page.html"), result.ArtifactPath)
	assert.Equal(t, parser.StyleCompact, result.Style)
	assert.Equal(t, "Running tests for page.html...", result.Title)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.ExitCode())
}

func TestRunner_RunFile_MissingArtifact(t *testing.T) {
	dir := t.TempDir()
	suite := writeFile(t, dir, "page.pagespec.yaml", "artifact: nonexistent.html\nchecks:\n  - name: a\n    contains: a\n")

	result, err := NewRunner(nil).RunFile(suite)
	require.Error(t, err)
	assert.Nil(t, result)

	var loadErr *artifact.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, filepath.Join(dir, "nonexistent.html"), loadErr.Source)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, ErrParse)
}

func TestRunner_RunFile_ParseAndCompileErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("schema error", func(t *testing.T) {
		suite := writeFile(t, dir, "bad.pagespec.yaml", "artifact: a.html\nchecks: nope\n")
		_, err := NewRunner(nil).RunFile(suite)
		assert.ErrorIs(t, err, ErrParse)
		var ve *parser.ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("regex broken after resolution", func(t *testing.T) {
		suite := writeFile(t, dir, "regex.pagespec.yaml", "artifact: a.html\nchecks:\n  - name: r\n    matches: \"{{p}}\"\n")
		_, err := NewRunner(&Config{Variables: map[string]string{"p": "("}}).RunFile(suite)
		assert.ErrorIs(t, err, ErrParse)
		assert.ErrorContains(t, err, "invalid regex pattern")
	})

	t.Run("missing suite file", func(t *testing.T) {
		_, err := NewRunner(nil).RunFile(filepath.Join(dir, "missing.pagespec.yaml"))
		assert.ErrorIs(t, err, ErrParse)
	})
}

func TestRunner_VariablePrecedence(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"config.html", "env.html", "dotenv.html", "suite.html", "flag.html"} {
		writeFile(t, dir, name, name)
	}
	envFile := writeFile(t, dir, ".env", "page=dotenv.html\n")

	suite := writeFile(t, dir, "vars.pagespec.yaml", `artifact: "{{page}}"
checks:
  - name: "page is {{page}}"
    contains: "{{page}}"
`)
	suiteWithVars := writeFile(t, dir, "suitevars.pagespec.yaml", `artifact: "{{page}}"
variables:
  page: suite.html
checks:
  - name: content
    contains: "{{page}}"
`)

	base := Config{
		ConfigVariables:    map[string]string{"page": "config.html"},
		ConfigEnvironments: map[string]map[string]string{"staging": {"page": "env.html"}},
	}

	tests := []struct {
		name     string
		suite    string
		mutate   func(c *Config)
		expected string
	}{
		{name: "config variables", suite: suite, mutate: func(*Config) {}, expected: "config.html"},
		{name: "environment", suite: suite, mutate: func(c *Config) { c.Environment = "staging" }, expected: "env.html"},
		{name: "env file", suite: suite, mutate: func(c *Config) { c.Environment = "staging"; c.EnvFile = envFile }, expected: "dotenv.html"},
		{name: "suite variables", suite: suiteWithVars, mutate: func(c *Config) { c.EnvFile = envFile }, expected: "suite.html"},
		{name: "flag overrides", suite: suiteWithVars, mutate: func(c *Config) {
			c.EnvFile = envFile
			c.Variables = map[string]string{"page": "flag.html"}
		}, expected: "flag.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)

			result, err := NewRunner(&cfg).RunFile(tt.suite)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.expected), result.ArtifactPath)
			assert.Equal(t, 1, result.Passed, "artifact content should match the resolved variable")
		})
	}
}

func TestRunner_RunFileWithoutChecks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.html", helloPage)
	suite := writeFile(t, dir, "empty.pagespec.yaml", "artifact: page.html\nchecks: []\n")

	result, err := NewRunner(nil).RunFile(suite)
	require.NoError(t, err)
	assert.Zero(t, result.Passed)
	assert.Zero(t, result.Failed)
	assert.Empty(t, result.Results)
	assert.Equal(t, ExitPassed, result.ExitCode())
}

func TestRunner_EnvFileExportedAndShared(t *testing.T) {
	const key = "PAGESPEC_RUNNER_TEST_GREETING"
	_, set := os.LookupEnv(key)
	require.False(t, set)
	t.Cleanup(func() { os.Unsetenv(key) })

	dir := t.TempDir()
	writeFile(t, dir, "page.html", "<h1>Hello</h1>")
	envFile := writeFile(t, dir, "test.env", key+"=Hello\nheading=h1\n")
	first := writeFile(t, dir, "a.pagespec.yaml", `artifact: page.html
checks:
  - name: greets from the process environment
    contains: "{{$`+key+`}}"
`)
	second := writeFile(t, dir, "b.pagespec.yaml", `artifact: page.html
checks:
  - name: heading from the env file
    contains: "<{{heading}}>"
`)

	r := NewRunner(&Config{EnvFile: envFile})

	result, err := r.RunFile(first)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, "Hello", os.Getenv(key))

	// The env file is read once per runner.
	require.NoError(t, os.Remove(envFile))
	result, err = r.RunFile(second)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Passed)
}

func TestRunner_ConfigErrors(t *testing.T) {
	dir := t.TempDir()
	suite := writeFile(t, dir, "a.pagespec.yaml", "artifact: a.html\nchecks:\n  - name: a\n    contains: a\n")

	_, err := NewRunner(&Config{Environment: "qa"}).RunFile(suite)
	assert.ErrorIs(t, err, ErrConfig)

	_, err = NewRunner(&Config{EnvFile: filepath.Join(dir, "missing.env")}).RunFile(suite)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestRunner_ArtifactOverrideAndStdin(t *testing.T) {
	dir := t.TempDir()
	other := writeFile(t, dir, "other.html", "<head></head>")
	suite := writeFile(t, dir, "a.pagespec.yaml", "artifact: missing.html\nstyle: sectioned\nchecks:\n  - name: has head\n    contains: \"<head>\"\n")

	result, err := NewRunner(&Config{ArtifactOverride: other}).RunFile(suite)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, "🚀 Running other.html Test Suite", result.Title)

	result, err = NewRunner(&Config{
		ArtifactOverride: artifact.StdinSource,
		Stdin:            strings.NewReader("<head>"),
	}).RunFile(suite)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, "stdin", result.Artifact.Source)
}

func TestRunner_Filters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "page.html", helloPage)
	suite := writeFile(t, dir, "f.pagespec.yaml", `artifact: page.html
tags: [page]
checks:
  - name: has body
    tags: [smoke]
    contains: "<body>"
sections:
  - name: Structure Tests
    icon: "📋"
    checks:
      - name: has head
        contains: "<head>"
      - name: has html
        tags: [smoke]
        contains: "<html>"
  - name: Canvas Tests
    checks:
      - name: has canvas
        contains: "<canvas"
`)

	tests := []struct {
		name     string
		cfg      Config
		expected []string
	}{
		{name: "no filter", expected: []string{"has body", "has head", "has html", "has canvas"}},
		{name: "name prefix", cfg: Config{NameFilter: "has h*"}, expected: []string{"has head", "has html"}},
		{name: "name contains", cfg: Config{NameFilter: "*can*"}, expected: []string{"has canvas"}},
		{name: "tags", cfg: Config{TagsFilter: []string{"smoke"}}, expected: []string{"has body", "has html"}},
		{name: "suite tags inherited", cfg: Config{TagsFilter: []string{"page"}}, expected: []string{"has body", "has head", "has html", "has canvas"}},
		{name: "section", cfg: Config{SectionFilter: "structure tests"}, expected: []string{"has head", "has html"}},
		{name: "section glob", cfg: Config{SectionFilter: "canvas*"}, expected: []string{"has canvas"}},
		{name: "combined", cfg: Config{SectionFilter: "Structure*", TagsFilter: []string{"smoke"}}, expected: []string{"has html"}},
		{name: "nothing matches", cfg: Config{NameFilter: "zzz"}, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			result, err := NewRunner(&cfg).RunFile(suite)
			require.NoError(t, err)

			var names []string
			for _, r := range result.Results {
				names = append(names, r.Description)
			}
			assert.Equal(t, tt.expected, names)
			assert.Equal(t, len(tt.expected), result.Passed+result.Failed)
		})
	}
}

func TestRunner_Prepare(t *testing.T) {
	dir := t.TempDir()
	suite := writeFile(t, dir, "p.pagespec.yaml", "artifact: never-read.html\nchecks:\n  - name: a\n    contains: a\n  - name: b\n    contains: b\n")

	plan, err := NewRunner(&Config{NameFilter: "a"}).Prepare(suite)
	require.NoError(t, err)
	assert.Len(t, plan.Checks, 1)
	assert.Equal(t, 1, plan.Filtered)
	assert.Equal(t, filepath.Join(dir, "never-read.html"), plan.ArtifactPath)
}

func TestRunner_ExampleSuites(t *testing.T) {
	examples := filepath.Join("..", "..", "..", "examples")

	tests := []struct {
		file     string
		total    int
		style    string
		title    string
		sections int
	}{
		{file: "garden.pagespec.yaml", total: 12, style: parser.StyleCompact, title: "Running tests for index.html...", sections: 0},
		{file: "space.pagespec.yaml", total: 79, style: parser.StyleSectioned, title: "🚀 Running 2space.html Test Suite", sections: 10},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := NewRunner(nil).RunFile(filepath.Join(examples, tt.file))
			require.NoError(t, err)

			assert.Equal(t, tt.total, result.Total())
			assert.Equal(t, tt.total, result.Passed, "failed: %v", failedNames(result.Report))
			assert.Equal(t, tt.style, result.Style)
			assert.Equal(t, tt.title, result.Title)

			seen := map[string]bool{}
			for _, r := range result.Results {
				if r.Section != "" {
					seen[r.Section] = true
				}
			}
			assert.Len(t, seen, tt.sections)
		})
	}
}

func failedNames(report *Report) []string {
	var names []string
	for _, r := range report.Results {
		if !r.Passed {
			names = append(names, fmt.Sprintf("%s (%s)", r.Description, r.Message))
		}
	}
	return names
}

func TestCollectSuiteFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.pagespec.yaml", "")
	writeFile(t, dir, "a.pagespec.yml", "")
	writeFile(t, dir, "notes.yaml", "")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))
	writeFile(t, dir, "nested/c.pagespec.yaml", "")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules"), 0755))
	writeFile(t, dir, "node_modules/d.pagespec.yaml", "")
	explicit := writeFile(t, dir, "explicit.txt", "")

	files, err := CollectSuiteFiles([]string{dir, explicit, filepath.Join(dir, "b.pagespec.yaml")})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.pagespec.yml"),
		filepath.Join(dir, "b.pagespec.yaml"),
		filepath.Join(dir, "explicit.txt"),
		filepath.Join(dir, "nested", "c.pagespec.yaml"),
	}, files)

	_, err = CollectSuiteFiles([]string{filepath.Join(dir, "missing")})
	assert.ErrorIs(t, err, ErrParse)
}

func TestMatchesPattern(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		expected bool
	}{
		{"exact match", "testName", true},
		{"prefix match", "test*", true},
		{"suffix match", "*Name", true},
		{"contains match", "*stNa*", true},
		{"no match", "other*", false},
		{"empty pattern", "", true},
		{"lone star", "*", true},
	}

	for _, tt := range tests {
		t.Run(tt.name+" - "+tt.pattern, func(t *testing.T) {
			result := matchesPattern("testName", tt.pattern)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestHasAnyTag(t *testing.T) {
	tests := []struct {
		tags     []string
		filters  []string
		expected bool
	}{
		{[]string{"smoke", "canvas"}, []string{"smoke"}, true},
		{[]string{"smoke", "canvas"}, []string{"integration"}, false},
		{[]string{"smoke", "canvas"}, []string{"smoke", "integration"}, true},
		{[]string{}, []string{"smoke"}, false},
		{[]string{"smoke"}, []string{}, false},
	}

	for _, tt := range tests {
		result := hasAnyTag(tt.tags, tt.filters)
		assert.Equal(t, tt.expected, result)
	}
}

func TestDefaultTitle(t *testing.T) {
	assert.Equal(t, "Running tests for index.html...", DefaultTitle(parser.StyleCompact, "/site/index.html"))
	assert.Equal(t, "🚀 Running 2space.html Test Suite", DefaultTitle(parser.StyleSectioned, "2space.html"))
	assert.Equal(t, "Running tests for stdin...", DefaultTitle(parser.StyleCompact, "-"))
}
