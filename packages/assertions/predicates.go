package assertions

import (
	"regexp"
	"strings"
)

// Contains holds when the text contains substr.
func Contains(substr string) Predicate {
	return func(text string) bool {
		return strings.Contains(text, substr)
	}
}

// NotContains holds when the text does not contain substr.
func NotContains(substr string) Predicate {
	return Not(Contains(substr))
}

// ContainsFold is a case-insensitive Contains. It scans the text in place
// rather than lowering a copy of it on every call.
func ContainsFold(substr string) Predicate {
	return Matches(regexp.MustCompile("(?i)" + regexp.QuoteMeta(substr)))
}

// Matches holds when re matches anywhere in the text.
func Matches(re *regexp.Regexp) Predicate {
	return func(text string) bool {
		return re.MatchString(text)
	}
}

// CountMatches returns the number of non-overlapping matches of re in text.
func CountMatches(re *regexp.Regexp, text string) int {
	return len(re.FindAllStringIndex(text, -1))
}

// CountAtLeast holds when re matches at least min times.
func CountAtLeast(re *regexp.Regexp, min int) Predicate {
	return func(text string) bool {
		if min <= 0 {
			return true
		}
		return len(re.FindAllStringIndex(text, min)) >= min
	}
}

// NotEmpty holds for any non-empty text.
func NotEmpty() Predicate {
	return func(text string) bool {
		return len(text) > 0
	}
}

// AnyOf holds when at least one predicate holds. Evaluation stops at the
// first match.
func AnyOf(preds ...Predicate) Predicate {
	return func(text string) bool {
		for _, p := range preds {
			if p(text) {
				return true
			}
		}
		return false
	}
}

// AllOf holds when every predicate holds. Evaluation stops at the first miss.
func AllOf(preds ...Predicate) Predicate {
	return func(text string) bool {
		for _, p := range preds {
			if !p(text) {
				return false
			}
		}
		return true
	}
}

// Not negates p.
func Not(p Predicate) Predicate {
	return func(text string) bool {
		return !p(text)
	}
}
