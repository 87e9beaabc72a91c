package woql

// Eq unifies two values.
func (q *Query) Eq(left, right any) *Query {
	n := q.open("Equals")
	n.set("left", Encode(ValueContext, left, StringsAsNodes()))
	n.set("right", Encode(ValueContext, right, StringsAsNodes()))
	return q
}

// Equals is an alias of Eq.
func (q *Query) Equals(left, right any) *Query {
	return q.Eq(left, right)
}

// Less compares two data values.
func (q *Query) Less(left, right any) *Query {
	return q.binaryData("Less", left, right)
}

// Greater compares two data values.
func (q *Query) Greater(left, right any) *Query {
	return q.binaryData("Greater", left, right)
}

func (q *Query) binaryData(op string, left, right any) *Query {
	n := q.open(op)
	n.set("left", Encode(DataContext, left))
	n.set("right", Encode(DataContext, right))
	return q
}

// Like binds the string similarity of left and right. similarity is
// optional.
func (q *Query) Like(left, right any, similarity ...any) *Query {
	n := q.open("Like")
	n.set("left", Encode(DataContext, left))
	n.set("right", Encode(DataContext, right))
	switch len(similarity) {
	case 0:
	case 1:
		n.set("similarity", Encode(DataContext, similarity[0]))
	default:
		q.addError("Like", "takes at most one similarity argument, got %d", len(similarity))
		n.set("similarity", Encode(DataContext, similarity[0]))
	}
	return q
}

// IsA checks that element has the given type.
func (q *Query) IsA(element, typ any) *Query {
	n := q.open("IsA")
	n.set("element", q.nodeTerm("IsA", "element", element))
	n.set("type", q.nodeTerm("IsA", "type", typ))
	return q
}

// Subsumption checks that child is a subclass of parent.
func (q *Query) Subsumption(child, parent any) *Query {
	n := q.open("Subsumption")
	n.set("child", q.nodeTerm("Subsumption", "child", child))
	n.set("parent", q.nodeTerm("Subsumption", "parent", parent))
	return q
}

// Sub is an alias of Subsumption.
func (q *Query) Sub(child, parent any) *Query {
	return q.Subsumption(child, parent)
}

// TypeOf binds the type of value.
func (q *Query) TypeOf(value, typ any) *Query {
	n := q.open("TypeOf")
	n.set("value", Encode(ValueContext, value))
	n.set("type", Encode(NodeContext, typ))
	return q
}

// Typecast converts value to typ and binds the result.
func (q *Query) Typecast(value, typ, result any) *Query {
	n := q.open("Typecast")
	n.set("value", Encode(ValueContext, value))
	n.set("type", Encode(NodeContext, typ))
	n.set("result", Encode(ValueContext, result))
	return q
}

// Cast is an alias of Typecast.
func (q *Query) Cast(value, typ, result any) *Query {
	return q.Typecast(value, typ, result)
}
