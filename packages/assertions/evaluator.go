package assertions

import (
	"errors"
	"fmt"
)

// ErrNoPredicate is recorded for a check that has nothing to evaluate.
var ErrNoPredicate = errors.New("check has no predicate")

// Result is the outcome of evaluating one check.
type Result struct {
	Description string
	Section     string
	Kind        Kind
	Passed      bool
	Message     string
	// Err is set when the check panicked or was malformed, as opposed to a
	// predicate that simply did not hold.
	Err error
}

// Evaluate runs check against text. It never panics: a panic raised by a
// predicate is recovered and recorded as a failure.
func Evaluate(check *Check, text string) (result *Result) {
	result = &Result{
		Description: check.Description,
		Section:     check.Section,
		Kind:        check.Kind,
	}

	defer func() {
		if rec := recover(); rec != nil {
			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}
			result.Passed = false
			result.Err = err
			result.Message = fmt.Sprintf("unexpected error: %v", err)
		}
	}()

	switch check.Kind {
	case KindAssertion:
		if len(check.Conditions) == 0 {
			return fail(result, ErrNoPredicate)
		}
		for _, cond := range check.Conditions {
			if cond.Predicate == nil {
				return fail(result, ErrNoPredicate)
			}
			if !cond.Predicate(text) {
				result.Message = cond.Message
				if result.Message == "" {
					result.Message = DefaultAssertionMessage
				}
				return result
			}
		}
		result.Passed = true
	default:
		if check.Predicate == nil {
			return fail(result, ErrNoPredicate)
		}
		result.Passed = check.Predicate(text)
		if !result.Passed {
			result.Message = GenericFailureMessage
		}
	}

	return result
}

func fail(result *Result, err error) *Result {
	result.Passed = false
	result.Err = err
	result.Message = err.Error()
	return result
}

// EvaluateAll evaluates every check in order.
func EvaluateAll(checks []*Check, text string) []*Result {
	results := make([]*Result, len(checks))
	for i, c := range checks {
		results[i] = Evaluate(c, text)
	}
	return results
}
