package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/woql/internal/woql"
)

func TestValidateAcceptsBuiltQueries(t *testing.T) {
	tests := []struct {
		name  string
		query *woql.Query
	}{
		{"empty", woql.New()},
		{"triple", woql.New().Triple("v:X", "rdf:type", "@schema:Person")},
		{"quad", woql.New().Quad("v:X", "rdf:type", "v:T", "schema")},
		{"select limit", woql.New().Limit(5, woql.New().Select("v:X", woql.New().Triple("v:X", "v:P", "v:O")))},
		{"path", woql.New().Path("v:X", "parent+", "v:Y", "v:P")},
		{"order by", woql.New().OrderBy(woql.Desc("v:T"), woql.New().Triple("v:X", "@schema:t", "v:T"))},
		{"comment", woql.New().Comment("note", woql.New().True())},
		{"dictionary", woql.New().InsertDocument(map[string]any{"@type": "Person", "name": "Ada"})},
		{"arithmetic", woql.New().Eval(woql.New().Plus(1, 2), "v:R")},
		{"member list", woql.New().Member("v:M", []any{"a", "b"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.query.MarshalJSON()
			require.NoError(t, err)
			assert.NoError(t, Validate(data))
		})
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		path     string
		contains string
	}{
		{
			name:     "not an object",
			doc:      `[1,2]`,
			contains: "must be a JSON object",
		},
		{
			name:     "missing type on sub-query",
			doc:      `{"@type":"Not","query":{"subject":1}}`,
			path:     "query",
			contains: "no @type",
		},
		{
			name:     "non-string type",
			doc:      `{"@type":7}`,
			path:     "@type",
			contains: "non-empty string",
		},
		{
			name:     "two payloads",
			doc:      `{"@type":"Equals","left":{"@type":"Value","variable":"X","node":"a"},"right":{"@type":"Value","variable":"Y"}}`,
			path:     "left",
			contains: "exactly one of",
		},
		{
			name:     "no payload",
			doc:      `{"@type":"Equals","left":{"@type":"Value"},"right":{"@type":"Value","variable":"Y"}}`,
			path:     "left",
			contains: "got 0",
		},
		{
			name: "negative limit",
			doc:  `{"@type":"Limit","limit":-1,"query":{"@type":"True"}}`,
		},
		{
			name: "non-string variables",
			doc:  `{"@type":"Select","variables":[1],"query":{"@type":"True"}}`,
		},
		{
			name: "literal without value type",
			doc:  `{"@type":"Equals","left":{"@type":"Value","data":{"@value":1}},"right":{"@type":"Value","variable":"Y"}}`,
		},
		{
			name:     "scalar sub-query",
			doc:      `{"@type":"And","and":[{"@type":"True"},"x"]}`,
			path:     "and[1]",
			contains: "must be an object",
		},
		{
			name: "triple subject not tagged",
			doc:  `{"@type":"Triple","subject":"v:X","predicate":{"@type":"NodeValue","node":"p"},"object":{"@type":"Value","variable":"O"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.doc))
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.NotEmpty(t, verr.Issues)
			if tt.path != "" {
				assert.Equal(t, tt.path, verr.Issues[0].Path)
			}
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestValidateNestedTaggedList(t *testing.T) {
	doc := `{"@type":"Member","member":{"@type":"Value","variable":"M"},` +
		`"list":{"@type":"Value","list":[{"@type":"Value","variable":"A","node":"b"}]}}`

	err := Validate([]byte(doc))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "list.list[0]", verr.Issues[0].Path)
}

func TestValidateMalformedJSON(t *testing.T) {
	err := Validate([]byte(`{"@type":`))
	require.Error(t, err)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), "parse document")
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Issues: []Issue{
		{Path: "query", Message: "query object has no @type"},
		{Message: "document must be a JSON object"},
	}}
	assert.Equal(t,
		"invalid query document (2 issues): query: query object has no @type; document must be a JSON object",
		err.Error())
}
