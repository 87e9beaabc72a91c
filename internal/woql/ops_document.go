package woql

// InsertDocument inserts doc, optionally binding its identifier.
func (q *Query) InsertDocument(doc any, identifier ...any) *Query {
	return q.writeDocument("InsertDocument", doc, identifier)
}

// UpdateDocument replaces doc, optionally binding its identifier.
func (q *Query) UpdateDocument(doc any, identifier ...any) *Query {
	return q.writeDocument("UpdateDocument", doc, identifier)
}

func (q *Query) writeDocument(op string, doc any, identifier []any) *Query {
	n := q.open(op)
	if doc == nil {
		q.addError(op, "document is required")
	}
	n.set("document", Encode(ValueContext, doc))
	if len(identifier) > 0 {
		n.set("identifier", Encode(NodeContext, identifier[0]))
	}
	if len(identifier) > 1 {
		q.addError(op, "takes at most one identifier, got %d", len(identifier))
	}
	q.updated = true
	return q
}

// DeleteDocument deletes the document with the given identifier.
func (q *Query) DeleteDocument(identifier any) *Query {
	n := q.open("DeleteDocument")
	n.set("identifier", q.nodeTerm("DeleteDocument", "identifier", identifier))
	q.updated = true
	return q
}

// ReadDocument binds output to the document with the given identifier.
func (q *Query) ReadDocument(identifier, output any) *Query {
	n := q.open("ReadDocument")
	n.set("identifier", q.nodeTerm("ReadDocument", "identifier", identifier))
	n.set("document", Encode(ValueContext, output))
	return q
}
