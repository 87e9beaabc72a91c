package woql

import (
	"fmt"

	"github.com/roach88/woql/internal/ir"
	"github.com/roach88/woql/internal/vocab"
)

// Query is a fluent WOQL query builder. Each operator method fills the
// cursor position and returns the same *Query. A Query is not safe for
// concurrent use.
type Query struct {
	nodes   []*node
	root    nodeID
	cursor  nodeID
	errs    []*BuildError
	updated bool
	vocab   vocab.Table
}

// Option configures a Query.
type Option func(*Query)

// WithVocabulary sets the table used to expand short predicate names.
func WithVocabulary(table vocab.Table) Option {
	return func(q *Query) {
		q.vocab = table
	}
}

// New returns an empty query.
func New(opts ...Option) *Query {
	q := &Query{vocab: vocab.Default()}
	for _, opt := range opts {
		opt(q)
	}
	q.root = q.newNode("", noNode)
	q.cursor = q.root
	return q
}

// FromJSON resumes building from an existing wire document. The cursor is
// placed at the root, so the next operator call conjoins with doc.
func FromJSON(doc ir.IRObject, opts ...Option) *Query {
	q := New(opts...)
	q.nodes = q.nodes[:0]
	decoded := q.decode(doc, noNode)
	q.root = decoded
	q.cursor = decoded
	return q
}

// Parse decodes JSON bytes with FromJSON.
func Parse(data []byte, opts ...Option) (*Query, error) {
	v, err := ir.UnmarshalIRValue(data)
	if err != nil {
		return nil, fmt.Errorf("decode query: %w", err)
	}
	doc, ok := v.(ir.IRObject)
	if !ok {
		return nil, fmt.Errorf("decode query: expected a JSON object, got %T", v)
	}
	return FromJSON(doc, opts...), nil
}

// JSON returns the canonical wire document. It does not change the builder.
func (q *Query) JSON() ir.IRObject {
	return Canonicalize(q.render(q.root))
}

// MarshalJSON implements json.Marshaler with canonical bytes.
func (q *Query) MarshalJSON() ([]byte, error) {
	return ir.MarshalCanonical(q.JSON())
}

// Build is the strict form of JSON: it fails with the first accumulated
// error.
func (q *Query) Build() (ir.IRObject, error) {
	if len(q.errs) > 0 {
		return nil, q.errs[0]
	}
	return q.JSON(), nil
}

// ContainsUpdate reports whether the query writes to the database.
func (q *Query) ContainsUpdate() bool {
	return q.updated || ContainsUpdate(q.JSON())
}

// UnwrapPagination returns a new query without the outer Limit and Start
// wrappers.
func (q *Query) UnwrapPagination() *Query {
	doc := q.JSON()
	for doc.Type() == "Limit" || doc.Type() == "Start" {
		inner, ok := doc["query"].(ir.IRObject)
		if !ok {
			break
		}
		doc = inner
	}
	out := FromJSON(doc, WithVocabulary(q.vocab))
	out.absorb(q)
	return out
}

// IsEmpty reports whether nothing has been built.
func (q *Query) IsEmpty() bool {
	return len(q.JSON()) == 0
}
