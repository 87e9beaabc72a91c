package woql

import (
	"github.com/roach88/woql/internal/ir"
)

// And conjoins sub-queries. Sub-queries that are themselves conjunctions are
// spliced in, so And(And(a, b), c) equals And(a, b, c). Called on a
// populated cursor, the existing content becomes the first conjunct.
func (q *Query) And(subs ...*Query) *Query {
	target := q.conjunctionTarget()
	list := q.conjuncts(target)
	for _, s := range nonNil(subs) {
		list = append(list, q.graftConjuncts(s, target)...)
	}
	q.nodes[target].set("and", list)
	q.cursor = target
	return q
}

// conjunctionTarget returns the And node that And should append to,
// creating one around the cursor content when needed.
func (q *Query) conjunctionTarget() nodeID {
	c := q.cur()
	switch {
	case c.op == "And":
		return q.cursor
	case c.op == "":
		c.op = "And"
		c.fields = nil
		return q.cursor
	case c.parent != noNode && q.isLastConjunct(c.parent, q.cursor):
		return c.parent
	}

	moved := q.pushDown(q.cursor)
	c.op = "And"
	c.fields = []field{{key: "and", value: listSlot{childSlot(moved)}}}
	return q.cursor
}

// Or matches any of the sub-queries. Unlike And, nested disjunctions are
// kept as given.
func (q *Query) Or(subs ...*Query) *Query {
	n := q.open("Or")
	id := q.cursor
	list := listSlot{}
	for _, s := range nonNil(subs) {
		list = append(list, childSlot(q.graft(s, id)))
	}
	n.set("or", list)
	return q
}

func (q *Query) wrapper(op string, subs []*Query) *Query {
	q.open(op)
	q.addSubQuery(q.cursor, subs)
	return q
}

// Not succeeds when its sub-query has no solution.
func (q *Query) Not(sub ...*Query) *Query {
	return q.wrapper("Not", sub)
}

// Opt makes its sub-query optional.
func (q *Query) Opt(sub ...*Query) *Query {
	return q.wrapper("Optional", sub)
}

// Optional is an alias of Opt.
func (q *Query) Optional(sub ...*Query) *Query {
	return q.Opt(sub...)
}

// Once keeps only the first solution of its sub-query.
func (q *Query) Once(sub ...*Query) *Query {
	return q.wrapper("Once", sub)
}

// Immediately runs side effects of its sub-query without backtracking.
func (q *Query) Immediately(sub ...*Query) *Query {
	return q.wrapper("Immediately", sub)
}

// Pin keeps the solutions of its sub-query fixed across backtracking.
func (q *Query) Pin(sub ...*Query) *Query {
	return q.wrapper("Pin", sub)
}

// Select projects onto the given variables. A trailing *Query argument is
// the sub-query.
func (q *Query) Select(args ...any) *Query {
	return q.projection("Select", args)
}

// Distinct is Select with duplicate solutions removed.
func (q *Query) Distinct(args ...any) *Query {
	return q.projection("Distinct", args)
}

func (q *Query) projection(op string, args []any) *Query {
	var sub []*Query
	if len(args) > 0 {
		if s, ok := args[len(args)-1].(*Query); ok {
			sub = []*Query{s}
			args = args[:len(args)-1]
		}
	}

	n := q.open(op)
	vars := ir.IRArray{}
	for _, a := range args {
		name, ok := variableName(a)
		if !ok {
			q.addError(op, "variables must be strings, got %T", a)
			continue
		}
		vars = append(vars, ir.IRString(name))
	}
	n.set("variables", raw(vars))
	q.addSubQuery(q.cursor, sub)
	return q
}

// variableName returns the bare name of a variable argument.
func variableName(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return stripVariable(val), val != ""
	case Var:
		return stripVariable(string(val)), val != ""
	case VariableRef:
		return val.Name, val.Name != ""
	case Tagged:
		if ref, ok := val.Term.(VariableRef); ok {
			return ref.Name, true
		}
	}
	return "", false
}

// Limit keeps at most n solutions.
func (q *Query) Limit(n int, sub ...*Query) *Query {
	return q.paging("Limit", "limit", n, sub)
}

// Start skips the first n solutions.
func (q *Query) Start(n int, sub ...*Query) *Query {
	return q.paging("Start", "start", n, sub)
}

func (q *Query) paging(op, key string, count int, sub []*Query) *Query {
	node := q.open(op)
	if count < 0 {
		q.addError(op, "%s must be a non-negative integer, got %d", key, count)
		count = 0
	}
	node.set(key, raw(ir.IRInt(count)))
	q.addSubQuery(q.cursor, sub)
	return q
}

// Using runs its sub-query against a collection such as "admin/db" or
// "_commits".
func (q *Query) Using(collection string, sub ...*Query) *Query {
	return q.scoped("Using", "collection", collection, sub)
}

// From reads from the given graph.
func (q *Query) From(graph string, sub ...*Query) *Query {
	return q.scoped("From", "graph", graph, sub)
}

// Into writes to the given graph.
func (q *Query) Into(graph string, sub ...*Query) *Query {
	return q.scoped("Into", "graph", graph, sub)
}

func (q *Query) scoped(op, key, value string, sub []*Query) *Query {
	n := q.open(op)
	if value == "" {
		q.addError(op, "%s requires a %s", op, key)
	} else {
		n.set(key, raw(ir.IRString(value)))
	}
	q.addSubQuery(q.cursor, sub)
	return q
}

// Comment annotates its sub-query. The comment text survives even when the
// sub-query is empty.
func (q *Query) Comment(text string, sub ...*Query) *Query {
	n := q.open("Comment")
	n.set("comment", raw(String(text).IR()))
	q.addSubQuery(q.cursor, sub)
	return q
}

// If runs then for every solution of test, or else when test has none. A
// missing or empty branch becomes True.
func (q *Query) If(test, then, otherwise *Query) *Query {
	n := q.open("If")
	id := q.cursor
	if test == nil {
		q.addError("If", "test clause is required")
		n.set("test", childSlot(q.newNode("", id)))
	} else {
		n.set("test", childSlot(q.graft(test, id)))
	}
	n.set("then", childSlot(q.branch(then, id)))
	n.set("else", childSlot(q.branch(otherwise, id)))
	return q
}

// When runs then for every solution of test and succeeds otherwise.
func (q *Query) When(test, then *Query) *Query {
	return q.If(test, then, nil)
}

func (q *Query) branch(sub *Query, parent nodeID) nodeID {
	if sub == nil {
		return q.newNode("True", parent)
	}
	if sub.IsEmpty() {
		q.absorb(sub)
		return q.newNode("True", parent)
	}
	return q.graft(sub, parent)
}

// True always succeeds.
func (q *Query) True() *Query {
	q.open("True")
	return q
}

// Count binds count to the number of solutions of its sub-query.
func (q *Query) Count(count any, sub ...*Query) *Query {
	n := q.open("Count")
	n.set("count", Encode(DataContext, count))
	q.addSubQuery(q.cursor, sub)
	return q
}

// GroupBy collects template for each distinct binding of groupBy into
// output. groupBy is a variable name or a list of them.
func (q *Query) GroupBy(groupBy, template, output any, sub ...*Query) *Query {
	n := q.open("GroupBy")

	names := ir.IRArray{}
	for _, v := range asList(groupBy) {
		name, ok := variableName(v)
		if !ok {
			q.addError("GroupBy", "group variables must be strings, got %T", v)
			continue
		}
		names = append(names, ir.IRString(name))
	}
	n.set("group_by", raw(names))
	n.set("template", Encode(ValueContext, template, AsVariable()))
	n.set("grouped", Encode(ValueContext, output, AsVariable()))
	q.addSubQuery(q.cursor, sub)
	return q
}

// asList spreads slices of strings or values into []any.
func asList(v any) []any {
	switch val := v.(type) {
	case []any:
		return val
	case []string:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	case []Var:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	case []VariableRef:
		out := make([]any, len(val))
		for i, s := range val {
			out[i] = s
		}
		return out
	case nil:
		return nil
	}
	return []any{v}
}
