package env

import (
	"maps"
	"os"
	"regexp"
	"strings"
	"sync"
)

var variablePattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// WarnFunc is a function type for handling warnings
type WarnFunc func(format string, args ...any)

// Resolver substitutes {{name}} references with layered variables and
// {{$NAME}} references with process environment values.
type Resolver struct {
	mu        sync.RWMutex
	variables map[string]string
	warnFunc  WarnFunc
}

func NewResolver() *Resolver {
	return &Resolver{
		variables: make(map[string]string),
	}
}

// SetWarnFunc sets a function to be called when a reference stays unresolved
func (r *Resolver) SetWarnFunc(fn WarnFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnFunc = fn
}

func (r *Resolver) warn(format string, args ...any) {
	r.mu.RLock()
	fn := r.warnFunc
	r.mu.RUnlock()
	if fn != nil {
		fn(format, args...)
	}
}

// SetVariables layers vars over the current set. Later calls win.
func (r *Resolver) SetVariables(vars map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	maps.Copy(r.variables, vars)
}

func (r *Resolver) Resolve(input string) string {
	return variablePattern.ReplaceAllStringFunc(input, func(match string) string {
		expr := strings.TrimSpace(match[2 : len(match)-2])

		if envVar, ok := strings.CutPrefix(expr, "$"); ok {
			if val, set := os.LookupEnv(envVar); set {
				return val
			}
			r.warn("unresolved environment variable: $%s", envVar)
			return match
		}

		r.mu.RLock()
		val, ok := r.variables[expr]
		r.mu.RUnlock()
		if ok {
			return val
		}

		r.warn("unresolved variable: %s", expr)
		return match
	})
}

// Variables returns a copy of the current variable set.
func (r *Resolver) Variables() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.variables)
}

func (r *Resolver) Clone() *Resolver {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Resolver{
		variables: maps.Clone(r.variables),
		warnFunc:  r.warnFunc,
	}
}
