// Package schema checks the structural contract of WOQL JSON-LD documents
// against an embedded CUE schema.
package schema

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/woql/internal/ir"
	"github.com/roach88/woql/internal/woql"
)

//go:embed schema.cue
var schemaSource string

// definitions maps an operator to the CUE definition its node must satisfy.
// Operators without an entry are checked against #Query.
var definitions = map[string]string{
	"Limit":         "#Limit",
	"Start":         "#Start",
	"Select":        "#Select",
	"Distinct":      "#Select",
	"Triple":        "#Triple",
	"AddTriple":     "#Triple",
	"DeleteTriple":  "#Triple",
	"AddedTriple":   "#Triple",
	"DeletedTriple": "#Triple",
	"Path":          "#Path",
	"OrderBy":       "#OrderBy",
}

// queryKeys hold sub-queries rather than operands.
var queryKeys = map[string]bool{
	"query": true,
	"and":   true,
	"or":    true,
	"test":  true,
	"then":  true,
	"else":  true,
}

var payloadKeys = []string{"variable", "node", "data", "list", "dictionary"}

// Issue is one violation, located by a dotted path into the document.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationError lists every issue found in a document.
type ValidationError struct {
	Issues []Issue `json:"issues"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		msgs[i] = issue.String()
	}
	return fmt.Sprintf("invalid query document (%d issues): %s", len(e.Issues), strings.Join(msgs, "; "))
}

// Validator holds a compiled schema. A cue.Context is not safe for
// concurrent use, so checks are serialised.
type Validator struct {
	mu     sync.Mutex
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{ctx: ctx, schema: v}, nil
}

var defaultValidator = sync.OnceValues(NewValidator)

// Validate checks a JSON document. It returns *ValidationError when the
// document is well-formed JSON that breaks the contract.
func Validate(doc []byte) error {
	v, err := defaultValidator()
	if err != nil {
		return err
	}
	return v.Validate(doc)
}

// Validate checks a JSON document.
func (v *Validator) Validate(doc []byte) error {
	val, err := ir.UnmarshalIRValue(doc)
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	obj, ok := val.(ir.IRObject)
	if !ok {
		return &ValidationError{Issues: []Issue{{Message: fmt.Sprintf("document must be a JSON object, got %s", kindOf(val))}}}
	}
	return v.ValidateIR(obj)
}

// ValidateIR checks a decoded document. The empty object is valid.
func (v *Validator) ValidateIR(doc ir.IRObject) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	var issues []Issue
	v.walk("", doc, true, &issues)
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func (v *Validator) walk(path string, val ir.IRValue, queryPos bool, issues *[]Issue) {
	switch node := val.(type) {
	case ir.IRArray:
		for i, elem := range node {
			v.walk(path+"["+strconv.Itoa(i)+"]", elem, queryPos, issues)
		}
	case ir.IRObject:
		v.walkObject(path, node, queryPos, issues)
	default:
		if queryPos {
			*issues = append(*issues, Issue{Path: path, Message: fmt.Sprintf("sub-query must be an object, got %s", kindOf(val))})
		}
	}
}

func (v *Validator) walkObject(path string, obj ir.IRObject, queryPos bool, issues *[]Issue) {
	if len(obj) == 0 {
		return
	}
	if _, has := obj["@type"]; has && obj.Type() == "" {
		*issues = append(*issues, Issue{Path: join(path, "@type"), Message: "@type must be a non-empty string"})
		return
	}

	if woql.IsTagged(obj) {
		v.checkTagged(path, obj, issues)
		return
	}
	if _, ok := obj["@value"]; ok {
		v.unify(path, "#Literal", obj, issues)
		return
	}
	if queryPos {
		if obj.Type() == "" {
			*issues = append(*issues, Issue{Path: path, Message: "query object has no @type"})
			return
		}
		def, ok := definitions[obj.Type()]
		if !ok {
			def = "#Query"
		}
		v.unify(path, def, obj, issues)
	}

	for _, k := range obj.SortedKeys() {
		if k == "@type" || k == "pattern" {
			continue
		}
		v.walk(join(path, k), obj[k], queryKeys[k], issues)
	}
}

func (v *Validator) checkTagged(path string, obj ir.IRObject, issues *[]Issue) {
	var present []string
	for _, k := range payloadKeys {
		if _, ok := obj[k]; ok {
			present = append(present, k)
		}
	}
	if len(present) != 1 {
		*issues = append(*issues, Issue{
			Path:    path,
			Message: fmt.Sprintf("%s must carry exactly one of %s, got %d", obj.Type(), strings.Join(payloadKeys, ", "), len(present)),
		})
	}
	v.unify(path, "#Tagged", obj, issues)

	if list, ok := obj["list"].(ir.IRArray); ok {
		for i, elem := range list {
			if e, ok := elem.(ir.IRObject); ok && woql.IsTagged(e) {
				v.checkTagged(join(path, "list")+"["+strconv.Itoa(i)+"]", e, issues)
			}
		}
	}
}

// unify checks one node against a schema definition. Sub-queries are
// checked by the walk, so only the node's own fields matter here.
func (v *Validator) unify(path, def string, obj ir.IRObject, issues *[]Issue) {
	data, err := ir.MarshalCanonical(obj)
	if err != nil {
		*issues = append(*issues, Issue{Path: path, Message: err.Error()})
		return
	}
	node := v.ctx.CompileBytes(data)
	if err := node.Err(); err != nil {
		*issues = append(*issues, Issue{Path: path, Message: err.Error()})
		return
	}

	schema := v.schema.LookupPath(cue.ParsePath(def))
	if err := schema.Unify(node).Validate(cue.Concrete(true)); err != nil {
		for _, e := range cueerrors.Errors(err) {
			*issues = append(*issues, Issue{Path: path, Message: e.Error()})
		}
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func kindOf(v ir.IRValue) string {
	switch v.(type) {
	case ir.IRArray:
		return "array"
	case ir.IRString:
		return "string"
	case ir.IRInt, ir.IRNumber:
		return "number"
	case ir.IRBool:
		return "boolean"
	case ir.IRNull:
		return "null"
	}
	return "object"
}
