// Package parser reads pagespec suite files.
//
// A suite file is a YAML document naming the artifact under test and an
// ordered list of checks, optionally grouped into sections:
//
//	artifact: index.html
//	style: compact
//	checks:
//	  - name: has CSS styling
//	    contains: "<style>"
//	  - name: has proper closing tags
//	    expect:
//	      - contains: "</body>"
//	        message: Should have closing body tag
//
// Documents are validated against an embedded JSON Schema before they are
// decoded, then checked for rules the schema cannot express (exactly one
// operator per predicate, compilable regular expressions).
package parser
