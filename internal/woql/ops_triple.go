package woql

import "github.com/roach88/woql/internal/ir"

// edgeSpec describes one member of the triple family.
type edgeSpec struct {
	name   string // builder name used in errors
	op     string // wire operator
	object Context
	update bool
	quad   bool
}

func (q *Query) edge(spec edgeSpec, subject, predicate, object any, graph string) *Query {
	n := q.open(spec.op)
	n.set("subject", q.nodeTerm(spec.name, "subject", subject))
	n.set("predicate", q.predicateTerm(spec.name, predicate))

	switch spec.object {
	case NodeContext:
		n.set("object", Encode(NodeContext, object))
	case DataContext:
		n.set("object", Encode(DataContext, object))
	default:
		n.set("object", Encode(ValueContext, object, StringsAsNodes()))
	}

	if spec.quad {
		if graph == "" {
			q.addError(spec.name, "Quad takes four parameters, the last should be a graph filter")
		} else {
			n.set("graph", raw(ir.IRString(graph)))
		}
	}
	if spec.update {
		q.updated = true
	}
	return q
}

// nodeTerm encodes a subject-like argument, recording an error when it is
// neither an IRI string nor a variable.
func (q *Query) nodeTerm(op, role string, v any) Tagged {
	if !isNodeLike(v) {
		q.addError(op, "%s must be a URI string or variable", role)
	}
	return Encode(NodeContext, v)
}

func (q *Query) predicateTerm(op string, v any) Tagged {
	if s, ok := v.(string); ok && s != "" {
		v = q.vocab.Expand(s)
	}
	return q.nodeTerm(op, "predicate", v)
}

func isNodeLike(v any) bool {
	switch val := v.(type) {
	case string:
		return val != "" && val != VariablePrefix
	case Var:
		return stripVariable(string(val)) != ""
	case NodeRef:
		return val.ID != ""
	case VariableRef:
		return val.Name != ""
	case Tagged:
		switch val.Term.(type) {
		case NodeRef, VariableRef:
			return true
		}
	}
	return false
}

// Triple matches an edge in the current graph.
func (q *Query) Triple(subject, predicate, object any) *Query {
	return q.edge(edgeSpec{name: "Triple", op: "Triple"}, subject, predicate, object, "")
}

// AddedTriple matches an edge added in the current commit.
func (q *Query) AddedTriple(subject, predicate, object any) *Query {
	return q.edge(edgeSpec{name: "AddedTriple", op: "AddedTriple"}, subject, predicate, object, "")
}

// DeletedTriple matches an edge deleted in the current commit.
func (q *Query) DeletedTriple(subject, predicate, object any) *Query {
	return q.edge(edgeSpec{name: "DeletedTriple", op: "DeletedTriple"}, subject, predicate, object, "")
}

// AddTriple inserts an edge.
func (q *Query) AddTriple(subject, predicate, object any) *Query {
	return q.edge(edgeSpec{name: "AddTriple", op: "AddTriple", update: true}, subject, predicate, object, "")
}

// DeleteTriple removes an edge.
func (q *Query) DeleteTriple(subject, predicate, object any) *Query {
	return q.edge(edgeSpec{name: "DeleteTriple", op: "DeleteTriple", update: true}, subject, predicate, object, "")
}

// Quad matches an edge in the given graph ("instance" or "schema"). An
// empty graph is an error and leaves the graph unset.
func (q *Query) Quad(subject, predicate, object any, graph string) *Query {
	return q.edge(edgeSpec{name: "Quad", op: "Triple", quad: true}, subject, predicate, object, graph)
}

func (q *Query) AddedQuad(subject, predicate, object any, graph string) *Query {
	return q.edge(edgeSpec{name: "AddedQuad", op: "AddedTriple", quad: true}, subject, predicate, object, graph)
}

func (q *Query) DeletedQuad(subject, predicate, object any, graph string) *Query {
	return q.edge(edgeSpec{name: "DeletedQuad", op: "DeletedTriple", quad: true}, subject, predicate, object, graph)
}

func (q *Query) AddQuad(subject, predicate, object any, graph string) *Query {
	return q.edge(edgeSpec{name: "AddQuad", op: "AddTriple", quad: true, update: true}, subject, predicate, object, graph)
}

func (q *Query) DeleteQuad(subject, predicate, object any, graph string) *Query {
	return q.edge(edgeSpec{name: "DeleteQuad", op: "DeleteTriple", quad: true, update: true}, subject, predicate, object, graph)
}

// Link matches an edge whose object is a node.
func (q *Query) Link(subject, predicate, object any) *Query {
	return q.edge(edgeSpec{name: "Link", op: "Link", object: NodeContext}, subject, predicate, object, "")
}

func (q *Query) AddLink(subject, predicate, object any) *Query {
	return q.edge(edgeSpec{name: "AddLink", op: "AddLink", object: NodeContext, update: true}, subject, predicate, object, "")
}

func (q *Query) AddedLink(subject, predicate, object any) *Query {
	return q.edge(edgeSpec{name: "AddedLink", op: "AddedLink", object: NodeContext}, subject, predicate, object, "")
}

func (q *Query) DeleteLink(subject, predicate, object any) *Query {
	return q.edge(edgeSpec{name: "DeleteLink", op: "DeleteLink", object: NodeContext, update: true}, subject, predicate, object, "")
}

func (q *Query) DeletedLink(subject, predicate, object any) *Query {
	return q.edge(edgeSpec{name: "DeletedLink", op: "DeletedLink", object: NodeContext}, subject, predicate, object, "")
}

// Data matches an edge whose object is a literal.
func (q *Query) Data(subject, predicate, object any) *Query {
	return q.edge(edgeSpec{name: "Data", op: "Data", object: DataContext}, subject, predicate, object, "")
}

func (q *Query) AddData(subject, predicate, object any) *Query {
	return q.edge(edgeSpec{name: "AddData", op: "AddData", object: DataContext, update: true}, subject, predicate, object, "")
}

func (q *Query) AddedData(subject, predicate, object any) *Query {
	return q.edge(edgeSpec{name: "AddedData", op: "AddedData", object: DataContext}, subject, predicate, object, "")
}

func (q *Query) DeleteData(subject, predicate, object any) *Query {
	return q.edge(edgeSpec{name: "DeleteData", op: "DeleteData", object: DataContext, update: true}, subject, predicate, object, "")
}

func (q *Query) DeletedData(subject, predicate, object any) *Query {
	return q.edge(edgeSpec{name: "DeletedData", op: "DeletedData", object: DataContext}, subject, predicate, object, "")
}
