package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"type", "rdf:type"},
		{"label", "rdfs:label"},
		{"rdf:type", "rdf:type"},
		{"@schema:name", "@schema:name"},
		{"http://example.com/x", "http://example.com/x"},
		{"name", "name"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Expand(tt.input))
		})
	}
}

func TestMergeDoesNotMutateDefault(t *testing.T) {
	merged := Default().Merge(map[string]string{"name": "@schema:name", "type": "ex:kind"})

	assert.Equal(t, "@schema:name", merged.Expand("name"))
	assert.Equal(t, "ex:kind", merged.Expand("type"))
	assert.Equal(t, "rdf:type", Expand("type"))
	assert.Equal(t, "name", Expand("name"))
}

func TestMergeNilTable(t *testing.T) {
	var empty Table
	merged := empty.Merge(map[string]string{"p": "ex:p"})
	assert.Equal(t, "ex:p", merged.Expand("p"))
}
