package printer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/woql/internal/dsl"
	"github.com/roach88/woql/internal/ir"
	"github.com/roach88/woql/internal/woql"
)

func loadQuery(t *testing.T, name string) ir.IRObject {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "queries", name+".json"))
	require.NoError(t, err)
	q, err := woql.Parse(data)
	require.NoError(t, err)
	return q.JSON()
}

var goldenQueries = []string{"select_and", "limit_order_path", "literals"}

// To regenerate golden files, run:
//
//	go test ./internal/printer -update
func TestPrintGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, name := range goldenQueries {
		doc := loadQuery(t, name)
		for _, d := range []Dialect{JS, Python, DSL} {
			t.Run(name+"/"+d.String(), func(t *testing.T) {
				g.Assert(t, name+"."+d.String(), []byte(Print(doc, d)+"\n"))
			})
		}
	}
}

func TestPrintSimpleCalls(t *testing.T) {
	tests := []struct {
		name     string
		query    *woql.Query
		dialect  Dialect
		expected string
	}{
		{
			name:     "empty query",
			query:    woql.New(),
			expected: `WOQL.and()`,
		},
		{
			name:     "empty query python",
			query:    woql.New(),
			dialect:  Python,
			expected: `WOQLQuery().woql_and()`,
		},
		{
			name:     "true",
			query:    woql.New().True(),
			expected: `WOQL.true()`,
		},
		{
			name:     "arithmetic nests inline",
			query:    woql.New().Eval(woql.New().Plus(1, 2, 3), "v:R"),
			expected: `WOQL.eval(WOQL.plus(1, WOQL.plus(2, 3)), "v:R")`,
		},
		{
			name:     "isa",
			query:    woql.New().IsA("v:X", "@schema:Person"),
			expected: `WOQL.isa("v:X", "@schema:Person")`,
		},
		{
			name:     "typed literal",
			query:    woql.New().Equals("v:N", woql.Typed(7, "xsd:integer")),
			expected: `WOQL.eq("v:N", WOQL.literal(7, "xsd:integer"))`,
		},
		{
			name:     "data context string is bare",
			query:    woql.New().Less("v:A", "m"),
			expected: `WOQL.less("v:A", "m")`,
		},
		{
			name:     "regexp without result",
			query:    woql.New().Regexp("^A", "v:Name"),
			expected: `WOQL.re("^A", "v:Name")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Print(tt.query.JSON(), tt.dialect))
		})
	}
}

func TestPrintPythonReservedNames(t *testing.T) {
	doc := woql.New().
		From("instance/main", woql.New().Not(woql.New().Triple("v:X", "rdf:type", "@schema:Draft"))).
		JSON()

	expected := `WOQLQuery().woql_from("instance/main",
  WOQLQuery().woql_not(
    WOQLQuery().triple("v:X", "rdf:type", "@schema:Draft")
  )
)`
	assert.Equal(t, expected, Print(doc, Python))
}

func TestPrintDictionary(t *testing.T) {
	doc := woql.New().InsertDocument(map[string]any{"@type": "Person", "name": "Ada"}, "v:ID").JSON()
	assert.Equal(t,
		`WOQL.insert_document({"@type": "Person", "name": "Ada"}, "v:ID")`,
		Print(doc, JS))
}

func TestPrintUnknownOperator(t *testing.T) {
	doc := ir.Obj(
		ir.O("@type", ir.IRString("NewThing")),
		ir.O("alpha", ir.IRInt(1)),
		ir.O("beta", ir.IRString("b")),
	)
	assert.Equal(t, `WOQL.new_thing(1, "b")`, Print(doc, JS))
}

func TestPrintDSLRoundTrip(t *testing.T) {
	for _, name := range goldenQueries {
		t.Run(name, func(t *testing.T) {
			doc := loadQuery(t, name)
			want, err := ir.MarshalCanonical(doc)
			require.NoError(t, err)

			q, err := dsl.Parse(Print(doc, DSL))
			require.NoError(t, err)
			got, err := ir.MarshalCanonical(q.JSON())
			require.NoError(t, err)
			assert.Equal(t, string(want), string(got))
		})
	}
}

func TestPrintDSLVariables(t *testing.T) {
	doc := woql.New().Triple("v:X", "rdf:type", woql.Var("my-type")).JSON()
	src := Print(doc, DSL)
	assert.Equal(t, `triple($X, "rdf:type", var("my-type"))`, src)

	q, err := dsl.Parse(src)
	require.NoError(t, err)
	assert.Equal(t, doc, q.JSON())
}

func TestPrintIsDeterministic(t *testing.T) {
	doc := loadQuery(t, "literals")
	first := Print(doc, JS)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Print(doc, JS))
	}
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		input    string
		expected Dialect
	}{
		{"js", JS},
		{"JavaScript", JS},
		{"python", Python},
		{"py", Python},
		{"dsl", DSL},
		{"WOQL", DSL},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDialect(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}

	_, err := ParseDialect("ruby")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown dialect "ruby"`)
}
