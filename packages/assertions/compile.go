package assertions

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/pagespec/packages/core/parser"
)

// ResolveFunc expands {{variables}} in suite literals.
type ResolveFunc func(string) string

// CompileOption configures Compile.
type CompileOption func(*compiler)

// DeferUnresolvedPatterns keeps a pattern that still contains a {{variable}}
// after resolution and does not compile from failing the whole suite. The
// check reports the compile error when it is evaluated instead.
func DeferUnresolvedPatterns() CompileOption {
	return func(c *compiler) {
		c.deferUnresolved = true
	}
}

func newCompiler(resolve ResolveFunc, opts []CompileOption) *compiler {
	if resolve == nil {
		resolve = func(s string) string { return s }
	}
	c := &compiler{resolve: resolve}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile turns a parsed suite into checks, in declaration order: top-level
// checks first, then each section's checks. Suite tags are inherited by
// every check.
func Compile(suite *parser.Suite, resolve ResolveFunc, opts ...CompileOption) ([]*Check, error) {
	c := newCompiler(resolve, opts)

	all := suite.AllChecks()
	checks := make([]*Check, 0, len(all))
	for _, sc := range all {
		check, err := c.check(sc.Check)
		if err != nil {
			return nil, fmt.Errorf("check %q: %w", sc.Check.Name, err)
		}
		if sc.Section != nil {
			check = check.InSection(sc.Section.Header())
		}
		checks = append(checks, check.WithTags(mergeTags(suite.Tags, sc.Check.Tags)...))
	}
	return checks, nil
}

type compiler struct {
	resolve         ResolveFunc
	deferUnresolved bool
}

func (c *compiler) check(pc *parser.Check) (*Check, error) {
	if !pc.IsAssertion() {
		p, err := c.predicate(&pc.Predicate)
		if err != nil {
			return nil, err
		}
		return Boolean(pc.Name, p), nil
	}

	conditions := make([]Condition, 0, len(pc.Expect))
	for i, cond := range pc.Expect {
		p, err := c.predicate(&cond.Predicate)
		if err != nil {
			return nil, fmt.Errorf("expect[%d]: %w", i, err)
		}
		conditions = append(conditions, Assert(p, c.resolve(cond.Message)))
	}
	return Assertion(pc.Name, conditions...), nil
}

func (c *compiler) predicate(p *parser.Predicate) (Predicate, error) {
	switch op := p.Operator(); op {
	case parser.OpContains:
		return Contains(c.resolve(p.Contains)), nil
	case parser.OpNotContains:
		return NotContains(c.resolve(p.NotContains)), nil
	case parser.OpContainsFold:
		return ContainsFold(c.resolve(p.ContainsFold)), nil
	case parser.OpMatches:
		return c.pattern(p.Matches, Matches)
	case parser.OpCount:
		return c.pattern(p.Count.Pattern, func(re *regexp.Regexp) Predicate {
			return CountAtLeast(re, p.Count.Min)
		})
	case parser.OpNotEmpty:
		return NotEmpty(), nil
	case parser.OpAnyOf, parser.OpAllOf:
		children := p.AnyOf
		if op == parser.OpAllOf {
			children = p.AllOf
		}
		preds := make([]Predicate, 0, len(children))
		for i, child := range children {
			cp, err := c.predicate(child)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", op, i, err)
			}
			preds = append(preds, cp)
		}
		if op == parser.OpAllOf {
			return AllOf(preds...), nil
		}
		return AnyOf(preds...), nil
	default:
		return nil, fmt.Errorf("predicate must set exactly one operator")
	}
}

func (c *compiler) pattern(pattern string, build func(*regexp.Regexp) Predicate) (Predicate, error) {
	resolved := c.resolve(pattern)
	re, err := regexp.Compile(resolved)
	if err == nil {
		return build(re), nil
	}

	err = fmt.Errorf("invalid regex pattern %q: %w", resolved, err)
	if c.deferUnresolved && strings.Contains(resolved, "{{") {
		return func(string) bool { panic(err) }, nil
	}
	return nil, err
}

func mergeTags(suiteTags, checkTags []string) []string {
	if len(suiteTags) == 0 && len(checkTags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(suiteTags)+len(checkTags))
	var tags []string
	for _, list := range [][]string{suiteTags, checkTags} {
		for _, t := range list {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}
