package woql

import (
	"github.com/roach88/woql/internal/ir"
)

// Canonicalize applies the rollup rules bottom-up:
//   - And and Or with no children become {}; with one child, that child.
//   - A node whose "query" is empty becomes {}, except Comment, which
//     keeps its comment and drops the query.
//   - Empty objects are dropped from lists; survivors keep their order.
//
// Tagged values and JSON-LD literals are left untouched. Canonicalize is
// idempotent and never fails.
func Canonicalize(doc ir.IRObject) ir.IRObject {
	return canonicalObject(doc)
}

func canonicalObject(obj ir.IRObject) ir.IRObject {
	if isLeafObject(obj) {
		return obj
	}

	out := make(ir.IRObject, len(obj))
	for k, v := range obj {
		out[k] = canonicalValue(v)
	}

	switch out.Type() {
	case "And":
		return collapse(out, "and")
	case "Or":
		return collapse(out, "or")
	}

	if sub, ok := out["query"].(ir.IRObject); ok && sub.Type() == "" {
		if out.Type() != "Comment" {
			return ir.IRObject{}
		}
		delete(out, "query")
	}
	return out
}

func canonicalValue(v ir.IRValue) ir.IRValue {
	switch val := v.(type) {
	case ir.IRObject:
		return canonicalObject(val)
	case ir.IRArray:
		out := make(ir.IRArray, 0, len(val))
		for _, e := range val {
			c := canonicalValue(e)
			if obj, ok := c.(ir.IRObject); ok && len(obj) == 0 {
				continue
			}
			out = append(out, c)
		}
		return out
	}
	return v
}

// collapse unwraps a conjunction or disjunction with fewer than two
// children.
func collapse(obj ir.IRObject, key string) ir.IRObject {
	children, _ := obj[key].(ir.IRArray)
	switch len(children) {
	case 0:
		return ir.IRObject{}
	case 1:
		if child, ok := children[0].(ir.IRObject); ok {
			return child
		}
	}
	return obj
}

func isLeafObject(obj ir.IRObject) bool {
	if _, ok := obj["@value"]; ok {
		return true
	}
	return IsTagged(obj)
}
