package assertions

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdul-hamid-achik/pagespec/packages/core/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSuite(t *testing.T, input string) *parser.Suite {
	t.Helper()
	suite, err := parser.Parse([]byte(input), "test.pagespec.yaml")
	require.NoError(t, err)
	return suite
}

func TestCompile_StylesAndSections(t *testing.T) {
	suite := parseSuite(t, `artifact: index.html
tags: [smoke]
checks:
  - name: has body
    contains: "<body>"
sections:
  - name: Closing Tests
    icon: "📋"
    checks:
      - name: has proper closing tags
        tags: [structure, smoke]
        expect:
          - contains: "</body>"
            message: Should have closing body tag
          - contains: "</html>"
            message: Should have closing html tag`)

	checks, err := Compile(suite, nil)
	require.NoError(t, err)
	require.Len(t, checks, 2)

	assert.Equal(t, KindBoolean, checks[0].Kind)
	assert.Equal(t, "", checks[0].Section)
	assert.Equal(t, []string{"smoke"}, checks[0].Tags)

	assert.Equal(t, KindAssertion, checks[1].Kind)
	assert.Equal(t, "📋 Closing Tests", checks[1].Section)
	assert.Equal(t, []string{"smoke", "structure"}, checks[1].Tags)
	require.Len(t, checks[1].Conditions, 2)
	assert.Equal(t, "Should have closing html tag", checks[1].Conditions[1].Message)

	result := Evaluate(checks[1], "<body></body>")
	assert.False(t, result.Passed)
	assert.Equal(t, "Should have closing html tag", result.Message)
}

func TestCompile_Operators(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		text     string
		expected bool
	}{
		{name: "contains", yaml: `contains: "<h1>"`, text: "<h1>Hi</h1>", expected: true},
		{name: "not contains", yaml: `notContains: "<marquee>"`, text: "<h1>Hi</h1>", expected: true},
		{name: "contains fold", yaml: `containsFold: "FLOWER"`, text: "<title>Flowers</title>", expected: true},
		{name: "matches", yaml: `matches: "🌹|🌷"`, text: "a 🌷 b", expected: true},
		{name: "count", yaml: `count: {pattern: "flower-card", min: 3}`, text: "flower-card flower-card", expected: false},
		{name: "not empty", yaml: `notEmpty: true`, text: "", expected: false},
		{name: "any of", yaml: "anyOf:\n      - contains: a\n      - contains: z", text: "z", expected: true},
		{name: "all of", yaml: "allOf:\n      - contains: a\n      - contains: z", text: "z", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suite := parseSuite(t, "artifact: a.html\nchecks:\n  - name: x\n    "+tt.yaml+"\n")
			checks, err := Compile(suite, nil)
			require.NoError(t, err)
			require.Len(t, checks, 1)
			assert.Equal(t, tt.expected, Evaluate(checks[0], tt.text).Passed)
		})
	}
}

func TestCompile_ResolvesVariables(t *testing.T) {
	suite := parseSuite(t, `artifact: a.html
checks:
  - name: has planet
    expect:
      - contains: "{{planet}}"
        message: "Should mention {{planet}}"
  - name: has many planets
    count: {pattern: "{{planetPattern}}", min: 2}`)

	vars := map[string]string{"planet": "Terra Nova", "planetPattern": "Terra|Azure"}
	resolve := func(s string) string {
		for k, v := range vars {
			s = strings.ReplaceAll(s, "{{"+k+"}}", v)
		}
		return s
	}

	checks, err := Compile(suite, resolve)
	require.NoError(t, err)

	result := Evaluate(checks[0], "Crimson Giant")
	assert.Equal(t, "Should mention Terra Nova", result.Message)
	assert.True(t, Evaluate(checks[1], "Terra Nova, Azure Ring").Passed)
}

func TestCompile_InvalidResolvedPattern(t *testing.T) {
	suite := parseSuite(t, `artifact: a.html
checks:
  - name: broken
    matches: "{{pattern}}"`)

	_, err := Compile(suite, func(string) string { return "(" })
	require.Error(t, err)
	assert.Contains(t, err.Error(), `check "broken"`)
	assert.Contains(t, err.Error(), "invalid regex pattern")
}

func TestCompile_DeferUnresolvedPatterns(t *testing.T) {
	suite := parseSuite(t, `artifact: a.html
checks:
  - name: heading
    matches: "{{open}}h1>)"
  - name: cards
    count: {pattern: "{{open}}div)", min: 1}`)

	_, err := Compile(suite, nil)
	require.Error(t, err)

	checks, err := Compile(suite, nil, DeferUnresolvedPatterns())
	require.NoError(t, err)
	require.Len(t, checks, 2)

	result := Evaluate(checks[0], "<h1>hi</h1>")
	assert.False(t, result.Passed)
	assert.Contains(t, result.Message, "invalid regex pattern")

	// Resolved patterns compile normally.
	resolved, err := Compile(suite, func(s string) string {
		return strings.ReplaceAll(s, "{{open}}", "(<")
	}, DeferUnresolvedPatterns())
	require.NoError(t, err)
	assert.True(t, Evaluate(resolved[0], "<h1>hi</h1>").Passed)
	assert.True(t, Evaluate(resolved[1], "<div>").Passed)

	// Patterns without variables still fail compilation.
	_, err = Compile(parseSuite(t, `artifact: a.html
checks:
  - name: plain
    matches: "ok"`), func(string) string { return "(" }, DeferUnresolvedPatterns())
	assert.Error(t, err)
}

func TestCompile_PredicateWithoutOperator(t *testing.T) {
	_, err := newCompiler(nil, nil).predicate(&parser.Predicate{})
	assert.Error(t, err)
}

func TestCompile_ExampleSuites(t *testing.T) {
	suite, err := parser.ParseFile(filepath.Join("..", "..", "examples", "garden.pagespec.yaml"))
	require.NoError(t, err)

	checks, err := Compile(suite, nil)
	require.NoError(t, err)
	require.Len(t, checks, 12)

	page := strings.Replace(gardenPage, "<title>", `<meta name="viewport" content="width=device-width"><title>`, 1)
	page += "\n<style>.f { animation: sway 2s; }</style>"
	results := EvaluateAll(checks, page)
	for _, r := range results {
		assert.True(t, r.Passed, "%s: %s", r.Description, r.Message)
	}
}
