package woql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/woql/internal/ir"
)

func mustParseIR(t *testing.T, s string) ir.IRObject {
	t.Helper()
	v, err := ir.UnmarshalIRValue([]byte(s))
	require.NoError(t, err)
	obj, ok := v.(ir.IRObject)
	require.True(t, ok)
	return obj
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty and",
			input:    `{"@type":"And","and":[]}`,
			expected: `{}`,
		},
		{
			name:     "single child and",
			input:    `{"@type":"And","and":[{"@type":"True"}]}`,
			expected: `{"@type":"True"}`,
		},
		{
			name:     "single child or",
			input:    `{"@type":"Or","or":[{"@type":"True"}]}`,
			expected: `{"@type":"True"}`,
		},
		{
			name:     "empty children dropped in order",
			input:    `{"@type":"And","and":[{"@type":"True"},{},{"@type":"Limit","limit":1,"query":{"@type":"True"}},{}]}`,
			expected: `{"@type":"And","and":[{"@type":"True"},{"@type":"Limit","limit":1,"query":{"@type":"True"}}]}`,
		},
		{
			name:     "nested empty and collapses upward",
			input:    `{"@type":"And","and":[{"@type":"And","and":[]},{"@type":"True"}]}`,
			expected: `{"@type":"True"}`,
		},
		{
			name:     "empty sub-query empties its wrapper",
			input:    `{"@type":"Select","variables":["X"],"query":{}}`,
			expected: `{}`,
		},
		{
			name:     "emptiness propagates",
			input:    `{"@type":"Limit","limit":2,"query":{"@type":"Start","start":1,"query":{"@type":"And","and":[]}}}`,
			expected: `{}`,
		},
		{
			name:     "comment survives empty sub-query",
			input:    `{"@type":"Comment","comment":{"@type":"xsd:string","@value":"todo"},"query":{}}`,
			expected: `{"@type":"Comment","comment":{"@type":"xsd:string","@value":"todo"}}`,
		},
		{
			name:     "tagged values untouched",
			input:    `{"@type":"Equals","left":{"@type":"Value","list":[]},"right":{"@type":"Value","variable":"X"}}`,
			expected: `{"@type":"Equals","left":{"@type":"Value","list":[]},"right":{"@type":"Value","variable":"X"}}`,
		},
		{
			name:     "or children canonicalized",
			input:    `{"@type":"Or","or":[{"@type":"And","and":[{"@type":"True"}]},{"@type":"Not","query":{"@type":"True"}}]}`,
			expected: `{"@type":"Or","or":[{"@type":"True"},{"@type":"Not","query":{"@type":"True"}}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Canonicalize(mustParseIR(t, tt.input))
			assert.Equal(t, tt.expected, wire(t, got))
		})
	}
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"@type":"And","and":[{"@type":"And","and":[{"@type":"True"}]},{}]}`,
		`{"@type":"Or","or":[{"@type":"Or","or":[]},{"@type":"Or","or":[{"@type":"True"},{"@type":"True"}]}]}`,
		`{"@type":"Comment","comment":{"@type":"xsd:string","@value":"x"},"query":{"@type":"And","and":[]}}`,
		`{"@type":"Select","variables":[],"query":{"@type":"Limit","limit":1,"query":{}}}`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once := Canonicalize(mustParseIR(t, input))
			twice := Canonicalize(once)
			assert.Equal(t, wire(t, once), wire(t, twice))
		})
	}
}

func TestCanonicalizeBuiltQueriesIdempotent(t *testing.T) {
	queries := []*Query{
		New().Triple("v:X", "rdf:type", "Person").Opt().Triple("v:X", "name", "v:Name"),
		New().Comment("empty"),
		New().And(New().Opt(), New().Not(), New().True()),
		New().Or(New().And(), New().Select("v:X")),
		New().Limit(5).Path("v:X", "parent+", "v:Y"),
	}

	for i, q := range queries {
		doc := q.JSON()
		assert.Equal(t, wire(t, doc), wire(t, Canonicalize(doc)), "query %d", i)
	}
}

func TestCanonicalizeDoesNotModifyInput(t *testing.T) {
	input := mustParseIR(t, `{"@type":"And","and":[{"@type":"True"},{}]}`)
	before := wire(t, input)

	Canonicalize(input)
	assert.Equal(t, before, wire(t, input))
}
