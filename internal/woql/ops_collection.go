package woql

// Member relates a value to a list containing it.
func (q *Query) Member(member, list any) *Query {
	n := q.open("Member")
	n.set("member", Encode(ValueContext, member))
	n.set("list", Encode(ValueContext, list))
	return q
}

// Sum adds the numbers in list.
func (q *Query) Sum(list, result any) *Query {
	n := q.open("Sum")
	n.set("list", Encode(DataContext, list))
	n.set("result", Encode(DataContext, result))
	return q
}

// Length binds the length of list.
func (q *Query) Length(list, length any) *Query {
	n := q.open("Length")
	n.set("list", Encode(DataContext, list))
	n.set("length", Encode(DataContext, length))
	return q
}

// Dot reads field from a document value.
func (q *Query) Dot(document, field, value any) *Query {
	n := q.open("Dot")
	n.set("document", Encode(DataContext, document))
	n.set("field", Encode(DataContext, field))
	n.set("value", Encode(DataContext, value))
	return q
}
