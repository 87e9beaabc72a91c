// Package vocab holds the well-known short names that WOQL callers may use in
// place of full prefixed IRIs, and the default datatypes for host literals.
package vocab

import (
	"maps"
	"strings"
)

// Default datatypes assigned to untyped host values.
const (
	DefaultString   = "xsd:string"
	DefaultNumber   = "xsd:decimal"
	DefaultBoolean  = "xsd:boolean"
	DefaultDateTime = "xsd:dateTime"
	NonNegativeInt  = "xsd:nonNegativeInteger"
	Double          = "xsd:double"
)

// Table maps short names to prefixed IRIs.
type Table map[string]string

var defaultTable = Table{
	"type":             "rdf:type",
	"label":            "rdfs:label",
	"comment":          "rdfs:comment",
	"range":            "rdfs:range",
	"domain":           "rdfs:domain",
	"subClassOf":       "rdfs:subClassOf",
	"subPropertyOf":    "rdfs:subPropertyOf",
	"Class":            "owl:Class",
	"DatatypeProperty": "owl:DatatypeProperty",
	"ObjectProperty":   "owl:ObjectProperty",
	"string":           "xsd:string",
	"integer":          "xsd:integer",
	"decimal":          "xsd:decimal",
	"boolean":          "xsd:boolean",
	"dateTime":         "xsd:dateTime",
	"date":             "xsd:date",
	"email":            "xdd:email",
	"json":             "xdd:json",
	"coordinate":       "xdd:coordinate",
	"line":             "xdd:coordinatePolyline",
	"polygon":          "xdd:coordinatePolygon",
}

// Default returns a copy of the built-in table.
func Default() Table {
	return maps.Clone(defaultTable)
}

// Merge returns a new table with extra entries layered over t.
func (t Table) Merge(extra map[string]string) Table {
	out := maps.Clone(t)
	if out == nil {
		out = Table{}
	}
	maps.Copy(out, extra)
	return out
}

// Expand resolves a short name. Names that already carry a prefix or a
// scheme, and names the table does not know, are returned unchanged.
func (t Table) Expand(name string) string {
	if strings.Contains(name, ":") {
		return name
	}
	if full, ok := t[name]; ok {
		return full
	}
	return name
}

// Expand resolves name against the built-in table.
func Expand(name string) string {
	return defaultTable.Expand(name)
}
