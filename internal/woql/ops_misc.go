package woql

import "github.com/roach88/woql/internal/ir"

// IdGen binds uri to an id built by joining keys onto base. The server
// computes the id.
func (q *Query) IdGen(base, keys, uri any) *Query {
	return q.key("LexicalKey", base, keys, uri)
}

// Unique binds uri to an id hashed from keys under base.
func (q *Query) Unique(base, keys, uri any) *Query {
	return q.key("HashKey", base, keys, uri)
}

// IdGenRandom binds uri to a random id under base.
func (q *Query) IdGenRandom(base, uri any) *Query {
	n := q.open("RandomKey")
	n.set("base", Encode(DataContext, base))
	n.set("uri", Encode(NodeContext, uri))
	return q
}

func (q *Query) key(op string, base, keys, uri any) *Query {
	n := q.open(op)
	n.set("base", Encode(DataContext, base))

	list := listSlot{}
	for _, k := range asList(keys) {
		list = append(list, Encode(DataContext, k))
	}
	if len(list) == 0 {
		q.addError(op, "key list must not be empty")
	}
	n.set("key_list", list)
	n.set("uri", Encode(NodeContext, uri))
	return q
}

// Size binds the size in bytes of a resource such as "admin/db".
func (q *Query) Size(resource string, size any) *Query {
	n := q.open("Size")
	n.set("resource", raw(ir.IRString(resource)))
	n.set("size", Encode(DataContext, size))
	return q
}

// TripleCount binds the number of triples in a resource.
func (q *Query) TripleCount(resource string, count any) *Query {
	n := q.open("TripleCount")
	n.set("resource", raw(ir.IRString(resource)))
	n.set("count", Encode(DataContext, count))
	return q
}
