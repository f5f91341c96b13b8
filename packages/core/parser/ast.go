package parser

// Report layouts understood by the console formatter.
const (
	StyleCompact   = "compact"
	StyleSectioned = "sectioned"
)

// Suite is a decoded suite file.
type Suite struct {
	Path        string            `yaml:"-"`
	Name        string            `yaml:"name,omitempty"`
	Description string            `yaml:"description,omitempty"`
	Artifact    string            `yaml:"artifact"`
	Style       string            `yaml:"style,omitempty"`
	Title       string            `yaml:"title,omitempty"`
	Tags        []string          `yaml:"tags,omitempty"`
	Variables   map[string]string `yaml:"variables,omitempty"`
	Checks      []*Check          `yaml:"checks,omitempty"`
	Sections    []*Section        `yaml:"sections,omitempty"`
}

// Section groups checks under a printed header.
type Section struct {
	Name   string   `yaml:"name"`
	Icon   string   `yaml:"icon,omitempty"`
	Checks []*Check `yaml:"checks,omitempty"`
}

// Header is the text printed above the section's checks.
func (s *Section) Header() string {
	if s.Icon == "" {
		return s.Name
	}
	return s.Icon + " " + s.Name
}

// Check is either boolean style (an inline predicate) or assertion style
// (an expect list), never both.
type Check struct {
	Name      string       `yaml:"name"`
	Tags      []string     `yaml:"tags,omitempty"`
	Predicate `yaml:",inline"`
	Expect    []*Condition `yaml:"expect,omitempty"`
}

// IsAssertion reports whether the check uses an expect list.
func (c *Check) IsAssertion() bool {
	return len(c.Expect) > 0
}

// Condition is one step of an assertion-style check.
type Condition struct {
	Predicate `yaml:",inline"`
	Message   string `yaml:"message,omitempty"`
}

// Predicate holds exactly one operator.
type Predicate struct {
	Contains     string       `yaml:"contains,omitempty"`
	NotContains  string       `yaml:"notContains,omitempty"`
	ContainsFold string       `yaml:"containsFold,omitempty"`
	Matches      string       `yaml:"matches,omitempty"`
	Count        *Count       `yaml:"count,omitempty"`
	NotEmpty     bool         `yaml:"notEmpty,omitempty"`
	AnyOf        []*Predicate `yaml:"anyOf,omitempty"`
	AllOf        []*Predicate `yaml:"allOf,omitempty"`
}

// Count requires at least Min matches of Pattern.
type Count struct {
	Pattern string `yaml:"pattern"`
	Min     int    `yaml:"min"`
}

// Operator identifies which field of a Predicate is set.
type Operator int

const (
	OpNone Operator = iota
	OpContains
	OpNotContains
	OpContainsFold
	OpMatches
	OpCount
	OpNotEmpty
	OpAnyOf
	OpAllOf
)

func (o Operator) String() string {
	switch o {
	case OpContains:
		return "contains"
	case OpNotContains:
		return "notContains"
	case OpContainsFold:
		return "containsFold"
	case OpMatches:
		return "matches"
	case OpCount:
		return "count"
	case OpNotEmpty:
		return "notEmpty"
	case OpAnyOf:
		return "anyOf"
	case OpAllOf:
		return "allOf"
	default:
		return "none"
	}
}

// Operators returns every operator set on p, in declaration order.
func (p *Predicate) Operators() []Operator {
	var ops []Operator
	if p.Contains != "" {
		ops = append(ops, OpContains)
	}
	if p.NotContains != "" {
		ops = append(ops, OpNotContains)
	}
	if p.ContainsFold != "" {
		ops = append(ops, OpContainsFold)
	}
	if p.Matches != "" {
		ops = append(ops, OpMatches)
	}
	if p.Count != nil {
		ops = append(ops, OpCount)
	}
	if p.NotEmpty {
		ops = append(ops, OpNotEmpty)
	}
	if len(p.AnyOf) > 0 {
		ops = append(ops, OpAnyOf)
	}
	if len(p.AllOf) > 0 {
		ops = append(ops, OpAllOf)
	}
	return ops
}

// Operator returns the single operator set on p, or OpNone when zero or
// several are set.
func (p *Predicate) Operator() Operator {
	ops := p.Operators()
	if len(ops) != 1 {
		return OpNone
	}
	return ops[0]
}

// SuiteCheck is a check together with the section it was declared in.
type SuiteCheck struct {
	Check   *Check
	Section *Section
}

// AllChecks flattens top-level checks followed by each section's checks.
func (s *Suite) AllChecks() []SuiteCheck {
	var all []SuiteCheck
	for _, c := range s.Checks {
		all = append(all, SuiteCheck{Check: c})
	}
	for _, sec := range s.Sections {
		for _, c := range sec.Checks {
			all = append(all, SuiteCheck{Check: c, Section: sec})
		}
	}
	return all
}

// DisplayName returns the suite name, falling back to the artifact path.
func (s *Suite) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Artifact
}

// EffectiveStyle returns the report layout, defaulting to compact.
func (s *Suite) EffectiveStyle() string {
	if s.Style == "" {
		return StyleCompact
	}
	return s.Style
}
