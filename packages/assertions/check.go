package assertions

const (
	// GenericFailureMessage is recorded when a boolean-style check returns false.
	GenericFailureMessage = "predicate returned false"
	// DefaultAssertionMessage is used for a failing condition without a message.
	DefaultAssertionMessage = "Assertion failed"
)

// Kind tags which style a Check uses.
type Kind int

const (
	KindBoolean Kind = iota
	KindAssertion
)

func (k Kind) String() string {
	if k == KindAssertion {
		return "assertion"
	}
	return "boolean"
}

// Predicate is a pure function of the artifact text.
type Predicate func(text string) bool

// Condition is one step of an assertion-style check.
type Condition struct {
	Predicate Predicate
	Message   string
}

// Check is a named predicate over an artifact.
type Check struct {
	Description string
	Section     string
	Tags        []string
	Kind        Kind
	Predicate   Predicate
	Conditions  []Condition
}

// Boolean builds a boolean-style check.
func Boolean(description string, p Predicate) *Check {
	return &Check{
		Description: description,
		Kind:        KindBoolean,
		Predicate:   p,
	}
}

// Assertion builds an assertion-style check from ordered conditions.
func Assertion(description string, conditions ...Condition) *Check {
	return &Check{
		Description: description,
		Kind:        KindAssertion,
		Conditions:  conditions,
	}
}

// Assert pairs a predicate with the message recorded when it fails.
func Assert(p Predicate, message string) Condition {
	return Condition{Predicate: p, Message: message}
}

// InSection returns a copy of c placed under the named section.
func (c *Check) InSection(section string) *Check {
	clone := *c
	clone.Section = section
	return &clone
}

// WithTags returns a copy of c carrying the given tags.
func (c *Check) WithTags(tags ...string) *Check {
	clone := *c
	clone.Tags = append([]string(nil), tags...)
	return &clone
}
