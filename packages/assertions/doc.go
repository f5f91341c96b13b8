// Package assertions provides the checks pagespec evaluates against an artifact.
//
// A Check comes in two styles:
//   - Boolean: a single predicate; false is recorded with a generic message
//   - Assertion: ordered (predicate, message) conditions; the first failing
//     condition's message is recorded and later conditions are not evaluated
//
// Predicates are built from two primitives, substring containment and
// regular-expression matching, plus the combinators AnyOf, AllOf and Not.
package assertions
