package woql

// Eval evaluates an arithmetic expression into result. expression is
// usually a *Query built with Plus, Times and friends.
func (q *Query) Eval(expression, result any) *Query {
	n := q.open("Eval")
	id := q.cursor
	n.set("expression", q.arithOperand(expression, id))
	n.set("result", Encode(ArithmeticContext, result))
	return q
}

// Plus adds its operands. More than two operands fold to the right, so
// Plus(a, b, c) is Plus(a, Plus(b, c)).
func (q *Query) Plus(args ...any) *Query { return q.arithmetic("Plus", args) }

// Minus subtracts, folding to the right like Plus.
func (q *Query) Minus(args ...any) *Query { return q.arithmetic("Minus", args) }

// Times multiplies, folding to the right like Plus.
func (q *Query) Times(args ...any) *Query { return q.arithmetic("Times", args) }

// Divide divides, folding to the right like Plus.
func (q *Query) Divide(args ...any) *Query { return q.arithmetic("Divide", args) }

// Div is integer division, folding to the right like Plus.
func (q *Query) Div(args ...any) *Query { return q.arithmetic("Div", args) }

// Exp raises base to exponent.
func (q *Query) Exp(base, exponent any) *Query {
	return q.arithmetic("Exp", []any{base, exponent})
}

// Floor rounds its argument down.
func (q *Query) Floor(argument any) *Query {
	n := q.open("Floor")
	n.set("argument", q.arithOperand(argument, q.cursor))
	return q
}

func (q *Query) arithmetic(op string, args []any) *Query {
	q.open(op)
	if len(args) < 2 {
		q.addError(op, "requires at least two operands, got %d", len(args))
	}
	q.fillArithmetic(q.cursor, op, args)
	return q
}

func (q *Query) fillArithmetic(id nodeID, op string, args []any) {
	if len(args) == 0 {
		return
	}
	q.nodes[id].set("left", q.arithOperand(args[0], id))
	switch {
	case len(args) == 2:
		q.nodes[id].set("right", q.arithOperand(args[1], id))
	case len(args) > 2:
		child := q.newNode(op, id)
		q.fillArithmetic(child, op, args[1:])
		q.nodes[id].set("right", childSlot(child))
	}
}

func (q *Query) arithOperand(v any, parent nodeID) slot {
	if sub, ok := v.(*Query); ok && sub != nil {
		return childSlot(q.graft(sub, parent))
	}
	return Encode(ArithmeticContext, v)
}
