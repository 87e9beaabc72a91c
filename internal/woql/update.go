package woql

import "github.com/roach88/woql/internal/ir"

// updateOps are the operators that write to the database.
var updateOps = map[string]bool{
	"AddTriple":      true,
	"DeleteTriple":   true,
	"AddQuad":        true,
	"DeleteQuad":     true,
	"AddLink":        true,
	"DeleteLink":     true,
	"AddData":        true,
	"DeleteData":     true,
	"InsertDocument": true,
	"UpdateDocument": true,
	"DeleteDocument": true,
}

// IsUpdateOp reports whether op writes to the database.
func IsUpdateOp(op string) bool {
	return updateOps[op]
}

// ContainsUpdate reports whether any operator reachable from doc through
// conjunctions, disjunctions and nested sub-queries writes to the database.
// Callers use it to decide whether a commit message is required.
func ContainsUpdate(doc ir.IRObject) bool {
	if updateOps[doc.Type()] {
		return true
	}
	for _, key := range []string{"and", "or"} {
		children, _ := doc[key].(ir.IRArray)
		for _, c := range children {
			if obj, ok := c.(ir.IRObject); ok && ContainsUpdate(obj) {
				return true
			}
		}
	}
	for _, key := range []string{"query", "test", "then", "else"} {
		if obj, ok := doc[key].(ir.IRObject); ok && ContainsUpdate(obj) {
			return true
		}
	}
	return false
}
