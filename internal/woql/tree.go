package woql

import (
	"github.com/roach88/woql/internal/ir"
	"github.com/roach88/woql/internal/path"
)

// nodeID indexes Query.nodes.
type nodeID int

const noNode nodeID = -1

// node is one operator in the arena. An empty op is an open slot that the
// next builder call fills in.
type node struct {
	op     string
	parent nodeID
	fields []field
}

type field struct {
	key   string
	value slot
}

// slot is what a node field can hold.
type slot interface {
	slot()
}

type childSlot nodeID

type listSlot []slot

type rawSlot struct {
	v ir.IRValue
}

type patternSlot struct {
	p path.Pattern
}

func (Tagged) slot()      {}
func (childSlot) slot()   {}
func (listSlot) slot()    {}
func (rawSlot) slot()     {}
func (patternSlot) slot() {}

func raw(v ir.IRValue) rawSlot {
	return rawSlot{v: v}
}

func (n *node) get(key string) (slot, bool) {
	for _, f := range n.fields {
		if f.key == key {
			return f.value, true
		}
	}
	return nil, false
}

func (n *node) set(key string, value slot) {
	for i, f := range n.fields {
		if f.key == key {
			n.fields[i].value = value
			return
		}
	}
	n.fields = append(n.fields, field{key: key, value: value})
}

func (q *Query) newNode(op string, parent nodeID) nodeID {
	q.nodes = append(q.nodes, &node{op: op, parent: parent})
	return nodeID(len(q.nodes) - 1)
}

func (q *Query) cur() *node {
	return q.nodes[q.cursor]
}

// open prepares the cursor for op, wrapping existing content in an And
// first when the cursor is already populated.
func (q *Query) open(op string) *node {
	if q.cur().op != "" {
		q.wrapCursorWithAnd()
	}
	n := q.cur()
	n.op = op
	n.fields = nil
	return n
}

// wrapCursorWithAnd moves the cursor to a fresh empty conjunct. An And
// cursor gains a new child; a cursor that is the last conjunct of an And
// gains a sibling; anything else is pushed down into a new And.
func (q *Query) wrapCursorWithAnd() {
	c := q.cur()

	if c.op == "And" {
		q.cursor = q.appendConjunct(q.cursor)
		return
	}

	if p := c.parent; p != noNode && q.isLastConjunct(p, q.cursor) {
		q.cursor = q.appendConjunct(p)
		return
	}

	moved := q.pushDown(q.cursor)
	empty := q.newNode("", q.cursor)
	c.op = "And"
	c.fields = []field{{key: "and", value: listSlot{childSlot(moved), childSlot(empty)}}}
	q.cursor = empty
}

// pushDown copies the content of id into a new child of id and returns the
// child. The grandchildren are reparented to the copy.
func (q *Query) pushDown(id nodeID) nodeID {
	src := q.nodes[id]
	moved := q.newNode(src.op, id)
	q.nodes[moved].fields = src.fields
	for _, f := range src.fields {
		q.reparent(f.value, moved)
	}
	src.fields = nil
	return moved
}

func (q *Query) reparent(s slot, parent nodeID) {
	switch v := s.(type) {
	case childSlot:
		q.nodes[v].parent = parent
	case listSlot:
		for _, e := range v {
			q.reparent(e, parent)
		}
	}
}

func (q *Query) conjuncts(id nodeID) listSlot {
	s, _ := q.nodes[id].get("and")
	list, _ := s.(listSlot)
	return list
}

func (q *Query) isLastConjunct(parent, child nodeID) bool {
	if q.nodes[parent].op != "And" {
		return false
	}
	list := q.conjuncts(parent)
	return len(list) > 0 && list[len(list)-1] == childSlot(child)
}

// appendConjunct adds an empty child to the And at id.
func (q *Query) appendConjunct(id nodeID) nodeID {
	child := q.newNode("", id)
	q.nodes[id].set("and", append(q.conjuncts(id), childSlot(child)))
	return child
}

// render writes the subtree at id in wire form.
func (q *Query) render(id nodeID) ir.IRObject {
	n := q.nodes[id]
	obj := make(ir.IRObject, len(n.fields)+1)
	if n.op == "" && len(n.fields) == 0 {
		return obj
	}
	if n.op != "" {
		obj["@type"] = ir.IRString(n.op)
	}
	for _, f := range n.fields {
		obj[f.key] = q.renderSlot(f.value)
	}
	return obj
}

func (q *Query) renderSlot(s slot) ir.IRValue {
	switch v := s.(type) {
	case Tagged:
		return v.IR()
	case childSlot:
		return q.render(nodeID(v))
	case listSlot:
		arr := make(ir.IRArray, len(v))
		for i, e := range v {
			arr[i] = q.renderSlot(e)
		}
		return arr
	case rawSlot:
		return v.v
	case patternSlot:
		return v.p.IR()
	}
	return ir.IRNull{}
}

// decode loads a wire object into the arena under parent.
func (q *Query) decode(obj ir.IRObject, parent nodeID) nodeID {
	id := q.newNode(obj.Type(), parent)
	for _, k := range obj.SortedKeys() {
		if k == "@type" {
			continue
		}
		q.nodes[id].set(k, q.decodeSlot(obj[k], id))
	}
	return id
}

func (q *Query) decodeSlot(v ir.IRValue, parent nodeID) slot {
	switch val := v.(type) {
	case ir.IRObject:
		if t, ok := DecodeTagged(val); ok {
			return t
		}
		if path.IsPattern(val) {
			if p, err := path.FromIR(val); err == nil {
				return patternSlot{p: p}
			}
			return raw(val)
		}
		if _, ok := val["@value"]; ok {
			return raw(val)
		}
		return childSlot(q.decode(val, parent))
	case ir.IRArray:
		list := make(listSlot, len(val))
		for i, e := range val {
			list[i] = q.decodeSlot(e, parent)
		}
		return list
	default:
		return raw(v)
	}
}

// graft decodes the canonical form of sub under parent. The sub-query's
// errors and update flag carry over.
func (q *Query) graft(sub *Query, parent nodeID) nodeID {
	q.absorb(sub)
	return q.decode(sub.JSON(), parent)
}

// graftConjuncts grafts sub and returns its top-level conjuncts, splicing
// an And into its children. An empty sub yields nothing.
func (q *Query) graftConjuncts(sub *Query, parent nodeID) []slot {
	q.absorb(sub)
	doc := sub.JSON()
	if len(doc) == 0 {
		return nil
	}
	if doc.Type() == "And" {
		if children, ok := doc["and"].(ir.IRArray); ok {
			out := make([]slot, 0, len(children))
			for _, c := range children {
				out = append(out, q.decodeSlot(c, parent))
			}
			return out
		}
	}
	return []slot{childSlot(q.decode(doc, parent))}
}

func (q *Query) absorb(sub *Query) {
	if sub == q {
		return
	}
	q.errs = append(q.errs, sub.errs...)
	q.updated = q.updated || sub.updated
}

// addSubQuery fills the "query" slot of id. With no sub-query the cursor
// moves into a fresh slot so that later calls populate it; several
// sub-queries are joined with And.
func (q *Query) addSubQuery(id nodeID, subs []*Query) {
	subs = nonNil(subs)
	n := q.nodes[id]

	switch len(subs) {
	case 0:
		child := q.newNode("", id)
		n.set("query", childSlot(child))
		q.cursor = child
	case 1:
		n.set("query", childSlot(q.graft(subs[0], id)))
	default:
		and := q.newNode("And", id)
		var list listSlot
		for _, s := range subs {
			list = append(list, q.graftConjuncts(s, and)...)
		}
		q.nodes[and].set("and", list)
		n.set("query", childSlot(and))
	}
}

func nonNil(subs []*Query) []*Query {
	out := subs[:0:0]
	for _, s := range subs {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
