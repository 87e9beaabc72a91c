package dsl

import (
	"math"

	"github.com/roach88/woql/internal/ir"
	"github.com/roach88/woql/internal/woql"
)

// builtin evaluates one call. q is a fresh query carrying the parser's
// builder options.
type builtin func(q *woql.Query, c *call) (any, error)

type arg struct {
	pos int
	val any
}

type call struct {
	parser *Parser
	name   string
	pos    int
	end    int
	args   []arg
}

func (c *call) errorf(pos int, format string, args ...any) *SyntaxError {
	return c.parser.errorAt(pos, format, args...)
}

// arity checks the argument count. hi < 0 means no upper bound.
func (c *call) arity(lo, hi int) error {
	n := len(c.args)
	switch {
	case n < lo && lo == hi:
		return c.errorf(c.end, "%s takes %d arguments, got %d", c.name, lo, n)
	case n < lo:
		return c.errorf(c.end, "%s takes at least %d arguments, got %d", c.name, lo, n)
	case hi >= 0 && n > hi:
		return c.errorf(c.args[hi].pos, "%s takes at most %d arguments, got %d", c.name, hi, n)
	}
	return nil
}

func (c *call) value(i int) any {
	if i < len(c.args) {
		return c.args[i].val
	}
	return nil
}

func (c *call) values(from int) []any {
	if from >= len(c.args) {
		return nil
	}
	out := make([]any, 0, len(c.args)-from)
	for _, a := range c.args[from:] {
		out = append(out, a.val)
	}
	return out
}

func (c *call) query(i int) (*woql.Query, error) {
	if i >= len(c.args) {
		return nil, nil
	}
	q, ok := c.args[i].val.(*woql.Query)
	if !ok {
		return nil, c.errorf(c.args[i].pos, "%s expects a query, got %s", c.name, describe(c.args[i].val))
	}
	return q, nil
}

// queries collects the sub-queries from index i onward.
func (c *call) queries(i int) ([]*woql.Query, error) {
	var out []*woql.Query
	for j := i; j < len(c.args); j++ {
		q, err := c.query(j)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func (c *call) str(i int) (string, error) {
	s, ok := c.value(i).(string)
	if !ok {
		return "", c.errorf(c.args[i].pos, "%s expects a string, got %s", c.name, describe(c.value(i)))
	}
	return s, nil
}

func (c *call) integer(i int) (int, error) {
	if n, ok := c.value(i).(ir.IRInt); ok && n >= math.MinInt32 && n <= math.MaxInt32 {
		return int(n), nil
	}
	return 0, c.errorf(c.args[i].pos, "%s expects an integer, got %s", c.name, describe(c.value(i)))
}

func (c *call) variable(i int) (string, error) {
	switch v := c.value(i).(type) {
	case woql.Var:
		return string(v), nil
	case string:
		return v, nil
	}
	return "", c.errorf(c.args[i].pos, "%s expects a variable, got %s", c.name, describe(c.value(i)))
}

type (
	unaryFunc   func(q *woql.Query, a any) *woql.Query
	binaryFunc  func(q *woql.Query, a, b any) *woql.Query
	ternaryFunc func(q *woql.Query, a, b, c any) *woql.Query
	quadFunc    func(q *woql.Query, s, p, o any, graph string) *woql.Query
	varargsFunc func(q *woql.Query, args ...any) *woql.Query
	wrapFunc    func(q *woql.Query, sub ...*woql.Query) *woql.Query
	scopeFunc   func(q *woql.Query, value string, sub ...*woql.Query) *woql.Query
	pageFunc    func(q *woql.Query, n int, sub ...*woql.Query) *woql.Query
)

var builtins = map[string]builtin{
	"triple":         tripleOrQuad((*woql.Query).Triple, (*woql.Query).Quad),
	"add_triple":     tripleOrQuad((*woql.Query).AddTriple, (*woql.Query).AddQuad),
	"delete_triple":  tripleOrQuad((*woql.Query).DeleteTriple, (*woql.Query).DeleteQuad),
	"added_triple":   tripleOrQuad((*woql.Query).AddedTriple, (*woql.Query).AddedQuad),
	"deleted_triple": tripleOrQuad((*woql.Query).DeletedTriple, (*woql.Query).DeletedQuad),
	"quad":           quad((*woql.Query).Quad),
	"add_quad":       quad((*woql.Query).AddQuad),
	"delete_quad":    quad((*woql.Query).DeleteQuad),
	"added_quad":     quad((*woql.Query).AddedQuad),
	"deleted_quad":   quad((*woql.Query).DeletedQuad),
	"link":           ternary((*woql.Query).Link),
	"add_link":       ternary((*woql.Query).AddLink),
	"added_link":     ternary((*woql.Query).AddedLink),
	"delete_link":    ternary((*woql.Query).DeleteLink),
	"deleted_link":   ternary((*woql.Query).DeletedLink),
	"data":           ternary((*woql.Query).Data),
	"add_data":       ternary((*woql.Query).AddData),
	"added_data":     ternary((*woql.Query).AddedData),
	"delete_data":    ternary((*woql.Query).DeleteData),
	"deleted_data":   ternary((*woql.Query).DeletedData),

	"and":         junction((*woql.Query).And),
	"or":          junction((*woql.Query).Or),
	"not":         wrapper((*woql.Query).Not),
	"opt":         wrapper((*woql.Query).Opt),
	"optional":    wrapper((*woql.Query).Optional),
	"once":        wrapper((*woql.Query).Once),
	"immediately": wrapper((*woql.Query).Immediately),
	"pin":         wrapper((*woql.Query).Pin),
	"select":      varargs((*woql.Query).Select, 0),
	"distinct":    varargs((*woql.Query).Distinct, 0),
	"order_by":    varargs((*woql.Query).OrderBy, 0),
	"limit":       paging((*woql.Query).Limit),
	"start":       paging((*woql.Query).Start),
	"using":       scope((*woql.Query).Using),
	"from":        scope((*woql.Query).From),
	"into":        scope((*woql.Query).Into),
	"comment":     scope((*woql.Query).Comment),
	"count":       countCall,
	"group_by":    groupByCall,
	"if":          ifCall,
	"when":        whenCall,
	"true":        trueCall,

	"eq":          binary((*woql.Query).Eq),
	"equals":      binary((*woql.Query).Equals),
	"less":        binary((*woql.Query).Less),
	"greater":     binary((*woql.Query).Greater),
	"like":        ranged((*woql.Query).Like, 2, 3),
	"isa":         binary((*woql.Query).IsA),
	"sub":         binary((*woql.Query).Sub),
	"subsumption": binary((*woql.Query).Subsumption),
	"type_of":     binary((*woql.Query).TypeOf),
	"typecast":    ternary((*woql.Query).Typecast),
	"cast":        ternary((*woql.Query).Cast),

	"member": binary((*woql.Query).Member),
	"sum":    binary((*woql.Query).Sum),
	"length": binary((*woql.Query).Length),
	"dot":    ternary((*woql.Query).Dot),

	"concat":    binary((*woql.Query).Concat),
	"join":      ternary((*woql.Query).Join),
	"split":     ternary((*woql.Query).Split),
	"trim":      binary((*woql.Query).Trim),
	"upper":     binary((*woql.Query).Upper),
	"lower":     binary((*woql.Query).Lower),
	"pad":       padCall,
	"re":        ranged((*woql.Query).Re, 2, 3),
	"regexp":    ranged((*woql.Query).Regexp, 2, 3),
	"substr":    varargs((*woql.Query).Substr, 4),
	"substring": varargs((*woql.Query).Substr, 4),

	"eval":   binary((*woql.Query).Eval),
	"plus":   varargs((*woql.Query).Plus, 2),
	"minus":  varargs((*woql.Query).Minus, 2),
	"times":  varargs((*woql.Query).Times, 2),
	"divide": varargs((*woql.Query).Divide, 2),
	"div":    varargs((*woql.Query).Div, 2),
	"exp":    binary((*woql.Query).Exp),
	"floor":  unary((*woql.Query).Floor),

	"path": pathCall,

	"insert_document": document((*woql.Query).InsertDocument),
	"update_document": document((*woql.Query).UpdateDocument),
	"delete_document": unary((*woql.Query).DeleteDocument),
	"read_document":   binary((*woql.Query).ReadDocument),

	"idgen":        ternary((*woql.Query).IdGen),
	"unique":       ternary((*woql.Query).Unique),
	"idgen_random": binary((*woql.Query).IdGenRandom),
	"size":         resource((*woql.Query).Size),
	"triple_count": resource((*woql.Query).TripleCount),

	// Value constructors.
	"string":  stringCall,
	"literal": literalCall,
	"iri":     iriCall,
	"var":     varCall,
	"asc":     orderCall(woql.Asc),
	"desc":    orderCall(woql.Desc),
}

func unary(f unaryFunc) builtin {
	return func(q *woql.Query, c *call) (any, error) {
		if err := c.arity(1, 1); err != nil {
			return nil, err
		}
		return f(q, c.value(0)), nil
	}
}

func binary(f binaryFunc) builtin {
	return func(q *woql.Query, c *call) (any, error) {
		if err := c.arity(2, 2); err != nil {
			return nil, err
		}
		return f(q, c.value(0), c.value(1)), nil
	}
}

func ternary(f ternaryFunc) builtin {
	return func(q *woql.Query, c *call) (any, error) {
		if err := c.arity(3, 3); err != nil {
			return nil, err
		}
		return f(q, c.value(0), c.value(1), c.value(2)), nil
	}
}

func quad(f quadFunc) builtin {
	return func(q *woql.Query, c *call) (any, error) {
		if err := c.arity(4, 4); err != nil {
			return nil, err
		}
		graph, err := c.str(3)
		if err != nil {
			return nil, err
		}
		return f(q, c.value(0), c.value(1), c.value(2), graph), nil
	}
}

// tripleOrQuad reads an optional fourth graph argument.
func tripleOrQuad(t ternaryFunc, qd quadFunc) builtin {
	return func(q *woql.Query, c *call) (any, error) {
		if err := c.arity(3, 4); err != nil {
			return nil, err
		}
		if len(c.args) == 4 {
			return quad(qd)(q, c)
		}
		return t(q, c.value(0), c.value(1), c.value(2)), nil
	}
}

// ranged passes all arguments through once their count is within bounds.
func ranged(f func(q *woql.Query, a, b any, rest ...any) *woql.Query, lo, hi int) builtin {
	return func(q *woql.Query, c *call) (any, error) {
		if err := c.arity(lo, hi); err != nil {
			return nil, err
		}
		return f(q, c.value(0), c.value(1), c.values(2)...), nil
	}
}

// varargs leaves argument checking past the minimum to the builder, which
// also picks off a trailing sub-query.
func varargs(f varargsFunc, lo int) builtin {
	return func(q *woql.Query, c *call) (any, error) {
		if err := c.arity(lo, -1); err != nil {
			return nil, err
		}
		return f(q, c.values(0)...), nil
	}
}

func junction(f wrapFunc) builtin {
	return func(q *woql.Query, c *call) (any, error) {
		subs, err := c.queries(0)
		if err != nil {
			return nil, err
		}
		return f(q, subs...), nil
	}
}

func wrapper(f wrapFunc) builtin {
	return func(q *woql.Query, c *call) (any, error) {
		if err := c.arity(0, 1); err != nil {
			return nil, err
		}
		subs, err := c.queries(0)
		if err != nil {
			return nil, err
		}
		return f(q, subs...), nil
	}
}

func scope(f scopeFunc) builtin {
	return func(q *woql.Query, c *call) (any, error) {
		if err := c.arity(1, 2); err != nil {
			return nil, err
		}
		value, err := c.str(0)
		if err != nil {
			return nil, err
		}
		subs, err := c.queries(1)
		if err != nil {
			return nil, err
		}
		return f(q, value, subs...), nil
	}
}

func paging(f pageFunc) builtin {
	return func(q *woql.Query, c *call) (any, error) {
		if err := c.arity(1, 2); err != nil {
			return nil, err
		}
		n, err := c.integer(0)
		if err != nil {
			return nil, err
		}
		subs, err := c.queries(1)
		if err != nil {
			return nil, err
		}
		return f(q, n, subs...), nil
	}
}

func document(f func(q *woql.Query, doc any, identifier ...any) *woql.Query) builtin {
	return func(q *woql.Query, c *call) (any, error) {
		if err := c.arity(1, 2); err != nil {
			return nil, err
		}
		return f(q, c.value(0), c.values(1)...), nil
	}
}

func resource(f func(q *woql.Query, resource string, v any) *woql.Query) builtin {
	return func(q *woql.Query, c *call) (any, error) {
		if err := c.arity(2, 2); err != nil {
			return nil, err
		}
		name, err := c.str(0)
		if err != nil {
			return nil, err
		}
		return f(q, name, c.value(1)), nil
	}
}

func countCall(q *woql.Query, c *call) (any, error) {
	if err := c.arity(1, 2); err != nil {
		return nil, err
	}
	subs, err := c.queries(1)
	if err != nil {
		return nil, err
	}
	return q.Count(c.value(0), subs...), nil
}

func groupByCall(q *woql.Query, c *call) (any, error) {
	if err := c.arity(3, 4); err != nil {
		return nil, err
	}
	subs, err := c.queries(3)
	if err != nil {
		return nil, err
	}
	return q.GroupBy(c.value(0), c.value(1), c.value(2), subs...), nil
}

func ifCall(q *woql.Query, c *call) (any, error) {
	if err := c.arity(2, 3); err != nil {
		return nil, err
	}
	test, err := c.query(0)
	if err != nil {
		return nil, err
	}
	then, err := c.query(1)
	if err != nil {
		return nil, err
	}
	otherwise, err := c.query(2)
	if err != nil {
		return nil, err
	}
	return q.If(test, then, otherwise), nil
}

func whenCall(q *woql.Query, c *call) (any, error) {
	if err := c.arity(2, 2); err != nil {
		return nil, err
	}
	return ifCall(q, c)
}

func trueCall(q *woql.Query, c *call) (any, error) {
	if err := c.arity(0, 0); err != nil {
		return nil, err
	}
	return q.True(), nil
}

func padCall(q *woql.Query, c *call) (any, error) {
	if err := c.arity(4, 4); err != nil {
		return nil, err
	}
	return q.Pad(c.value(0), c.value(1), c.value(2), c.value(3)), nil
}

func pathCall(q *woql.Query, c *call) (any, error) {
	if err := c.arity(3, 4); err != nil {
		return nil, err
	}
	pattern, err := c.str(1)
	if err != nil {
		return nil, err
	}
	return q.Path(c.value(0), pattern, c.value(2), c.values(3)...), nil
}

func stringCall(_ *woql.Query, c *call) (any, error) {
	if err := c.arity(1, 1); err != nil {
		return nil, err
	}
	s, err := c.str(0)
	if err != nil {
		return nil, err
	}
	return woql.String(s), nil
}

func literalCall(_ *woql.Query, c *call) (any, error) {
	if err := c.arity(2, 2); err != nil {
		return nil, err
	}
	datatype, err := c.str(1)
	if err != nil {
		return nil, err
	}
	v := c.value(0)
	switch v.(type) {
	case string, bool, ir.IRInt, ir.IRNumber:
	default:
		return nil, c.errorf(c.args[0].pos, "literal expects a scalar value, got %s", describe(v))
	}
	return woql.Typed(v, datatype), nil
}

func iriCall(_ *woql.Query, c *call) (any, error) {
	if err := c.arity(1, 1); err != nil {
		return nil, err
	}
	id, err := c.str(0)
	if err != nil {
		return nil, err
	}
	return woql.Iri(id), nil
}

func varCall(_ *woql.Query, c *call) (any, error) {
	if err := c.arity(1, 1); err != nil {
		return nil, err
	}
	name, err := c.str(0)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, c.errorf(c.args[0].pos, "variable name must not be empty")
	}
	return woql.Var(name), nil
}

func orderCall(order func(variable string) woql.Order) builtin {
	return func(_ *woql.Query, c *call) (any, error) {
		if err := c.arity(1, 1); err != nil {
			return nil, err
		}
		name, err := c.variable(0)
		if err != nil {
			return nil, err
		}
		return order(name), nil
	}
}
