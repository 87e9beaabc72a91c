package woql

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/woql/internal/ir"
)

func wire(t *testing.T, v ir.IRValue) string {
	t.Helper()
	data, err := ir.MarshalCanonical(v)
	require.NoError(t, err)
	return string(data)
}

type rating float64

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		ctx      Context
		input    any
		opts     []EncodeOption
		expected string
	}{
		{
			name:     "value string is a literal",
			ctx:      ValueContext,
			input:    "hello",
			expected: `{"@type":"Value","data":{"@type":"xsd:string","@value":"hello"}}`,
		},
		{
			name:     "node string is a node",
			ctx:      NodeContext,
			input:    "Person",
			expected: `{"@type":"NodeValue","node":"Person"}`,
		},
		{
			name:     "data variable",
			ctx:      DataContext,
			input:    "v:Foo",
			expected: `{"@type":"DataValue","variable":"Foo"}`,
		},
		{
			name:     "arithmetic decimal",
			ctx:      ArithmeticContext,
			input:    2.5,
			expected: `{"@type":"ArithmeticValue","data":{"@type":"xsd:decimal","@value":2.5}}`,
		},
		{
			name:     "integer defaults to decimal",
			ctx:      DataContext,
			input:    7,
			expected: `{"@type":"DataValue","data":{"@type":"xsd:decimal","@value":7}}`,
		},
		{
			name:     "explicit datatype",
			ctx:      ValueContext,
			input:    3,
			opts:     []EncodeOption{WithDatatype("xsd:integer")},
			expected: `{"@type":"Value","data":{"@type":"xsd:integer","@value":3}}`,
		},
		{
			name:     "boolean",
			ctx:      ValueContext,
			input:    true,
			expected: `{"@type":"Value","data":{"@type":"xsd:boolean","@value":true}}`,
		},
		{
			name:     "forced variable",
			ctx:      ValueContext,
			input:    "Name",
			opts:     []EncodeOption{AsVariable()},
			expected: `{"@type":"Value","variable":"Name"}`,
		},
		{
			name:     "strings as nodes",
			ctx:      ValueContext,
			input:    "Person",
			opts:     []EncodeOption{StringsAsNodes()},
			expected: `{"@type":"Value","node":"Person"}`,
		},
		{
			name:     "NaN",
			ctx:      DataContext,
			input:    math.NaN(),
			expected: `{"@type":"DataValue","data":{"@type":"xsd:double","@value":"NaN"}}`,
		},
		{
			name:     "positive infinity",
			ctx:      ValueContext,
			input:    math.Inf(1),
			opts:     []EncodeOption{WithDatatype("xsd:decimal")},
			expected: `{"@type":"Value","data":{"@type":"xsd:double","@value":"INF"}}`,
		},
		{
			name:     "negative infinity float32",
			ctx:      DataContext,
			input:    float32(math.Inf(-1)),
			expected: `{"@type":"DataValue","data":{"@type":"xsd:double","@value":"-INF"}}`,
		},
		{
			name:     "named float kind",
			ctx:      ValueContext,
			input:    rating(2.5),
			expected: `{"@type":"Value","data":{"@type":"xsd:decimal","@value":2.5}}`,
		},
		{
			name:     "var type",
			ctx:      NodeContext,
			input:    Var("v:X"),
			expected: `{"@type":"NodeValue","variable":"X"}`,
		},
		{
			name:     "date time",
			ctx:      DataContext,
			input:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			expected: `{"@type":"DataValue","data":{"@type":"xsd:dateTime","@value":"2024-01-02T03:04:05Z"}}`,
		},
		{
			name:     "list",
			ctx:      ValueContext,
			input:    []any{"v:A", 1},
			expected: `{"@type":"Value","list":[{"@type":"Value","variable":"A"},{"@type":"Value","data":{"@type":"xsd:decimal","@value":1}}]}`,
		},
		{
			name:     "string slice",
			ctx:      DataContext,
			input:    []string{"v:A", "b"},
			expected: `{"@type":"DataValue","list":[{"@type":"DataValue","variable":"A"},{"@type":"DataValue","data":{"@type":"xsd:string","@value":"b"}}]}`,
		},
		{
			name:  "map becomes dictionary with sorted fields",
			ctx:   ValueContext,
			input: map[string]any{"name": "Ada", "age": 36},
			expected: `{"@type":"Value","dictionary":{"@type":"DictionaryTemplate","data":[` +
				`{"@type":"FieldValuePair","field":"age","value":{"@type":"Value","data":{"@type":"xsd:decimal","@value":36}}},` +
				`{"@type":"FieldValuePair","field":"name","value":{"@type":"Value","data":{"@type":"xsd:string","@value":"Ada"}}}]}}`,
		},
		{
			name:     "json-ld value object",
			ctx:      DataContext,
			input:    ir.Obj(ir.O("@type", ir.IRString("xsd:integer")), ir.O("@value", ir.IRInt(5))),
			expected: `{"@type":"DataValue","data":{"@type":"xsd:integer","@value":5}}`,
		},
		{
			name:     "literal term",
			ctx:      DataContext,
			input:    String("x"),
			expected: `{"@type":"DataValue","data":{"@type":"xsd:string","@value":"x"}}`,
		},
		{
			name:     "iri term in value context",
			ctx:      ValueContext,
			input:    Iri("@schema:Person"),
			expected: `{"@type":"Value","node":"@schema:Person"}`,
		},
		{
			name:     "nil falls through",
			ctx:      ValueContext,
			input:    nil,
			expected: `null`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.ctx, tt.input, tt.opts...)
			assert.Equal(t, tt.expected, wire(t, got.IR()))
		})
	}
}

func TestEncodeVariableSigil(t *testing.T) {
	for _, ctx := range []Context{ValueContext, NodeContext, DataContext, ArithmeticContext} {
		t.Run(ctx.String(), func(t *testing.T) {
			got := Encode(ctx, "v:Foo")
			assert.Equal(t, VariableRef{Name: "Foo"}, got.Term)
			assert.Equal(t, ir.IRString("Foo"), got.IR().(ir.IRObject)["variable"])
		})
	}
}

func TestEncodeTaggedPassesThrough(t *testing.T) {
	tagged := Encode(NodeContext, "v:X")
	assert.Equal(t, tagged, Encode(DataContext, tagged))
	assert.Equal(t, tagged, Encode(ValueContext, tagged.IR()))
}

func TestEncodeUnknownShape(t *testing.T) {
	type point struct{ X, Y int }
	got := Encode(ValueContext, point{1, 2})
	assert.Equal(t, Opaque{V: ir.IRString("{1 2}")}, got.Term)
}

func TestDecodeTagged(t *testing.T) {
	values := []Tagged{
		Encode(ValueContext, "v:X"),
		Encode(NodeContext, "Person"),
		Encode(DataContext, 3.5),
		Encode(ValueContext, []any{"a", "v:B"}),
		Encode(ValueContext, map[string]any{"name": "Ada", "tags": []any{"x"}}),
	}

	for _, v := range values {
		obj, ok := v.IR().(ir.IRObject)
		require.True(t, ok)

		decoded, ok := DecodeTagged(obj)
		require.True(t, ok)
		assert.Equal(t, v, decoded)
	}
}

func TestDecodeTaggedMalformed(t *testing.T) {
	obj := ir.Obj(
		ir.O("@type", ir.IRString("DataValue")),
		ir.O("data", ir.IRString("not a literal")),
	)

	decoded, ok := DecodeTagged(obj)
	require.True(t, ok)
	assert.Equal(t, Opaque{V: obj}, decoded.Term)
	assert.Equal(t, obj, decoded.IR())

	_, ok = DecodeTagged(ir.Obj(ir.O("@type", ir.IRString("Triple"))))
	assert.False(t, ok)
}

func TestContextOf(t *testing.T) {
	for _, ctx := range []Context{ValueContext, NodeContext, DataContext, ArithmeticContext} {
		got, ok := ContextOf(ctx.Discriminant())
		require.True(t, ok)
		assert.Equal(t, ctx, got)
	}
	_, ok := ContextOf("Triple")
	assert.False(t, ok)
}

func TestLiteralHelpers(t *testing.T) {
	assert.Equal(t, Literal{Value: ir.IRString("x"), Datatype: "xsd:string"}, String("x"))
	assert.Equal(t, Literal{Value: ir.IRInt(4), Datatype: "xsd:integer"}, Typed(4, "xsd:integer"))
	assert.Equal(t, Literal{Value: ir.IRBool(false), Datatype: "xsd:boolean"}, Boolean(false))
	assert.Equal(t, Literal{Value: ir.IRString("2024-05-06T00:00:00Z"), Datatype: "xsd:dateTime"},
		DateTime(time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, NodeRef{ID: "x"}, Iri("x"))
	assert.Equal(t, []VariableRef{{Name: "A"}, {Name: "B"}}, Vars("v:A", "B"))
	assert.Len(t, Dict(map[string]any{"a": 1}).Fields, 1)
}
