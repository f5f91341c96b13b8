package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// validate enforces the rules the JSON Schema cannot: one operator per
// predicate node, boolean and assertion styles not mixed, and regexps that
// compile. Patterns containing {{variables}} are checked after resolution.
func validate(s *Suite) []string {
	var problems []string

	for i, c := range s.Checks {
		problems = append(problems, validateCheck(c, fmt.Sprintf("checks[%d]", i))...)
	}
	for i, sec := range s.Sections {
		for j, c := range sec.Checks {
			problems = append(problems, validateCheck(c, fmt.Sprintf("sections[%d].checks[%d]", i, j))...)
		}
	}

	return problems
}

func validateCheck(c *Check, path string) []string {
	inline := c.Predicate.Operators()

	if c.IsAssertion() {
		if len(inline) > 0 {
			return []string{fmt.Sprintf("%s (%s): cannot combine expect with %s", path, c.Name, inline[0])}
		}
		var problems []string
		for i, cond := range c.Expect {
			problems = append(problems, validatePredicate(&cond.Predicate, fmt.Sprintf("%s.expect[%d]", path, i))...)
		}
		return problems
	}

	if len(inline) == 0 {
		return []string{fmt.Sprintf("%s (%s): check needs an operator or an expect list", path, c.Name)}
	}
	return validatePredicate(&c.Predicate, path)
}

func validatePredicate(p *Predicate, path string) []string {
	ops := p.Operators()
	switch len(ops) {
	case 0:
		return []string{fmt.Sprintf("%s: no operator set", path)}
	case 1:
	default:
		names := make([]string, len(ops))
		for i, op := range ops {
			names[i] = op.String()
		}
		return []string{fmt.Sprintf("%s: exactly one operator allowed, got %s", path, strings.Join(names, ", "))}
	}

	switch ops[0] {
	case OpMatches:
		return validatePattern(p.Matches, path)
	case OpCount:
		if p.Count.Min < 0 {
			return []string{fmt.Sprintf("%s: count min must not be negative", path)}
		}
		return validatePattern(p.Count.Pattern, path)
	case OpAnyOf, OpAllOf:
		children := p.AnyOf
		if ops[0] == OpAllOf {
			children = p.AllOf
		}
		var problems []string
		for i, child := range children {
			problems = append(problems, validatePredicate(child, fmt.Sprintf("%s.%s[%d]", path, ops[0], i))...)
		}
		return problems
	}
	return nil
}

func validatePattern(pattern, path string) []string {
	if strings.Contains(pattern, "{{") {
		return nil
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return []string{fmt.Sprintf("%s: invalid regular expression %q: %v", path, pattern, err)}
	}
	return nil
}
