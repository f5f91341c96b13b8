package parser

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// suiteSchema describes the shape of a suite document. Rules that need more
// than structure (one operator per predicate, regexp syntax) live in validate.go.
const suiteSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "pagespec suite",
  "type": "object",
  "required": ["artifact"],
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string"},
    "description": {"type": "string"},
    "artifact": {"type": "string", "minLength": 1},
    "style": {"enum": ["compact", "sectioned"]},
    "title": {"type": "string"},
    "tags": {"type": "array", "items": {"type": "string"}},
    "variables": {
      "type": "object",
      "additionalProperties": {"type": ["string", "number", "boolean"]}
    },
    "checks": {"type": "array", "items": {"$ref": "#/definitions/check"}},
    "sections": {"type": "array", "items": {"$ref": "#/definitions/section"}}
  },
  "definitions": {
    "section": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "icon": {"type": "string"},
        "checks": {"type": "array", "items": {"$ref": "#/definitions/check"}}
      }
    },
    "count": {
      "type": "object",
      "required": ["pattern", "min"],
      "additionalProperties": false,
      "properties": {
        "pattern": {"type": "string", "minLength": 1},
        "min": {"type": "integer", "minimum": 0}
      }
    },
    "check": {
      "type": "object",
      "required": ["name"],
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "tags": {"type": "array", "items": {"type": "string"}},
        "contains": {"type": "string", "minLength": 1},
        "notContains": {"type": "string", "minLength": 1},
        "containsFold": {"type": "string", "minLength": 1},
        "matches": {"type": "string", "minLength": 1},
        "count": {"$ref": "#/definitions/count"},
        "notEmpty": {"const": true},
        "anyOf": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/predicate"}},
        "allOf": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/predicate"}},
        "expect": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/condition"}}
      }
    },
    "condition": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "message": {"type": "string"},
        "contains": {"type": "string", "minLength": 1},
        "notContains": {"type": "string", "minLength": 1},
        "containsFold": {"type": "string", "minLength": 1},
        "matches": {"type": "string", "minLength": 1},
        "count": {"$ref": "#/definitions/count"},
        "notEmpty": {"const": true},
        "anyOf": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/predicate"}},
        "allOf": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/predicate"}}
      }
    },
    "predicate": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "contains": {"type": "string", "minLength": 1},
        "notContains": {"type": "string", "minLength": 1},
        "containsFold": {"type": "string", "minLength": 1},
        "matches": {"type": "string", "minLength": 1},
        "count": {"$ref": "#/definitions/count"},
        "notEmpty": {"const": true},
        "anyOf": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/predicate"}},
        "allOf": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/predicate"}}
      }
    }
  }
}`

var schema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(suiteSchema))
	if err != nil {
		return nil, fmt.Errorf("loading suite schema: %w", err)
	}
	return s, nil
})

// SchemaJSON returns the JSON Schema used to validate suite documents.
func SchemaJSON() string {
	return suiteSchema
}

// validateSchema checks a generic decoded document against the suite schema.
func validateSchema(doc any) []string {
	s, err := schema()
	if err != nil {
		return []string{err.Error()}
	}

	result, err := s.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return []string{fmt.Sprintf("schema validation error: %v", err)}
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "(root)" {
			problems = append(problems, desc.Description())
			continue
		}
		problems = append(problems, fmt.Sprintf("%s: %s", schemaFieldPath(field), desc.Description()))
	}
	return problems
}

// schemaFieldPath turns gojsonschema's "sections.1.checks.0" into
// "sections[1].checks[0]".
func schemaFieldPath(field string) string {
	parts := strings.Split(field, ".")
	var b strings.Builder
	for i, part := range parts {
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			b.WriteString(".")
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
