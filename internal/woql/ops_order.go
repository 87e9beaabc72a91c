package woql

import (
	"github.com/roach88/woql/internal/ir"
)

// Order is one ordering term of OrderBy.
type Order struct {
	Variable  string
	Direction string
}

// Asc orders by variable ascending.
func Asc(variable string) Order {
	return Order{Variable: stripVariable(variable), Direction: "asc"}
}

// Desc orders by variable descending.
func Desc(variable string) Order {
	return Order{Variable: stripVariable(variable), Direction: "desc"}
}

func (o Order) template() ir.IRObject {
	return ir.Obj(
		ir.O("@type", ir.IRString("OrderTemplate")),
		ir.O("variable", ir.IRString(o.Variable)),
		ir.O("order", ir.IRString(o.Direction)),
	)
}

// OrderBy sorts solutions. Each argument is a variable (ascending), an
// Order, or a [variable, "asc"|"desc"] pair. A trailing *Query is the
// sub-query.
func (q *Query) OrderBy(args ...any) *Query {
	var sub []*Query
	if len(args) > 0 {
		if s, ok := args[len(args)-1].(*Query); ok {
			sub = []*Query{s}
			args = args[:len(args)-1]
		}
	}

	n := q.open("OrderBy")
	ordering := listSlot{}
	for _, a := range args {
		o, ok := q.orderTerm(a)
		if !ok {
			continue
		}
		ordering = append(ordering, raw(o.template()))
	}
	n.set("ordering", ordering)
	q.addSubQuery(q.cursor, sub)
	return q
}

func (q *Query) orderTerm(v any) (Order, bool) {
	switch val := v.(type) {
	case Order:
		if val.Direction != "asc" && val.Direction != "desc" {
			q.addError("OrderBy", "order must be asc or desc, got %q", val.Direction)
			return Order{}, false
		}
		return val, true
	case []string:
		return q.orderPair(toAny(val))
	case []any:
		return q.orderPair(val)
	}
	if name, ok := variableName(v); ok {
		return Asc(name), true
	}
	q.addError("OrderBy", "ordering terms must be variables or [variable, order] pairs, got %T", v)
	return Order{}, false
}

func (q *Query) orderPair(pair []any) (Order, bool) {
	if len(pair) != 2 {
		q.addError("OrderBy", "ordering pair must have two elements, got %d", len(pair))
		return Order{}, false
	}
	name, ok := variableName(pair[0])
	dir, dirOK := pair[1].(string)
	if !ok || !dirOK {
		q.addError("OrderBy", "ordering pair must be [variable, order]")
		return Order{}, false
	}
	return q.orderTerm(Order{Variable: name, Direction: dir})
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
