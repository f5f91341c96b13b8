// Package artifact loads the text under test.
//
// An artifact is read exactly once, decoded as UTF-8 and never mutated
// afterwards. Any failure to read it is reported as a *LoadError, which
// callers treat as fatal for the suite that named it.
package artifact
