package printer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/roach88/woql/internal/woql"
)

// Dialect selects the host-language spelling of the rendered calls.
type Dialect int

const (
	JS Dialect = iota
	Python
	// DSL is the bare call syntax read back by package dsl: no call
	// prefix and $Name variables.
	DSL
)

// ParseDialect accepts "js", "javascript", "python", "py" or "dsl".
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(s) {
	case "js", "javascript":
		return JS, nil
	case "python", "py":
		return Python, nil
	case "dsl", "woql":
		return DSL, nil
	}
	return JS, fmt.Errorf("unknown dialect %q (want js, python or dsl)", s)
}

func (d Dialect) String() string {
	switch d {
	case Python:
		return "python"
	case DSL:
		return "dsl"
	}
	return "js"
}

// pythonReserved are call names that collide with Python keywords.
var pythonReserved = map[string]bool{
	"and":  true,
	"or":   true,
	"not":  true,
	"from": true,
	"as":   true,
	"if":   true,
}

func (d Dialect) prefix() string {
	switch d {
	case Python:
		return "WOQLQuery()."
	case DSL:
		return ""
	}
	return "WOQL."
}

// variable spells a variable reference. DSL names that are not plain
// identifiers go through var().
func (d Dialect) variable(name string) string {
	if d != DSL {
		return quote(woql.VariablePrefix + name)
	}
	if isIdentifier(name) {
		return "$" + name
	}
	return "var(" + quote(name) + ")"
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

func (d Dialect) callName(name string) string {
	if d == Python && pythonReserved[name] {
		return "woql_" + name
	}
	return name
}

func (d Dialect) boolean(b bool) string {
	switch {
	case d == Python && b:
		return "True"
	case d == Python:
		return "False"
	case b:
		return "true"
	}
	return "false"
}

func (d Dialect) null() string {
	if d == Python {
		return "None"
	}
	return "null"
}
