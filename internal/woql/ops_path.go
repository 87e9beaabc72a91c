package woql

import (
	"strings"

	"github.com/roach88/woql/internal/path"
)

// Path matches object reachable from subject through pattern. pattern is a
// path.Pattern or a string in the path-pattern language. The optional
// result binds the edges walked.
//
// A pattern string that does not compile is recorded as an error and
// replaced with a predicate naming the failure, so the chain continues.
func (q *Query) Path(subject, pattern, object any, result ...any) *Query {
	n := q.open("Path")
	n.set("subject", Encode(ValueContext, subject, StringsAsNodes()))
	n.set("pattern", patternSlot{p: q.compilePattern(pattern)})
	n.set("object", Encode(ValueContext, object, StringsAsNodes()))

	if len(result) > 0 {
		n.set("path", Encode(ValueContext, result[0], AsVariable()))
	}
	if len(result) > 1 {
		q.addError("Path", "takes at most one result argument, got %d", len(result))
	}
	return q
}

func (q *Query) compilePattern(pattern any) path.Pattern {
	switch p := pattern.(type) {
	case path.Pattern:
		return p
	case string:
		compiled, err := path.Parse(p, path.WithVocabulary(q.vocab))
		if err != nil {
			q.addError("Path", "%v", err)
			return path.Predicate{Name: "invalid path pattern: " + strings.ToValidUTF8(p, "\uFFFD")}
		}
		return compiled
	default:
		q.addError("Path", "pattern must be a string or path.Pattern, got %T", pattern)
		return path.Predicate{Name: "invalid path pattern"}
	}
}
