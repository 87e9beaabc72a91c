package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexer(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		tokens []Token
	}{
		{
			name:  "prefixed name",
			input: "rdf:type",
			tokens: []Token{
				{Type: TokenName, Value: "rdf:type", Pos: 0},
				{Type: TokenEOF, Pos: 8},
			},
		},
		{
			name:  "inverse and quantifier",
			input: "<a{1,2}",
			tokens: []Token{
				{Type: TokenLt, Value: "<", Pos: 0},
				{Type: TokenName, Value: "a", Pos: 1},
				{Type: TokenLBrace, Value: "{", Pos: 2},
				{Type: TokenName, Value: "1", Pos: 3},
				{Type: TokenComma, Value: ",", Pos: 4},
				{Type: TokenName, Value: "2", Pos: 5},
				{Type: TokenRBrace, Value: "}", Pos: 6},
				{Type: TokenEOF, Pos: 7},
			},
		},
		{
			name:  "whitespace and iri",
			input: " (http://x.org/p | b)+ ",
			tokens: []Token{
				{Type: TokenLParen, Value: "(", Pos: 1},
				{Type: TokenName, Value: "http://x.org/p", Pos: 2},
				{Type: TokenPipe, Value: "|", Pos: 17},
				{Type: TokenName, Value: "b", Pos: 19},
				{Type: TokenRParen, Value: ")", Pos: 20},
				{Type: TokenPlus, Value: "+", Pos: 21},
				{Type: TokenEOF, Pos: 23},
			},
		},
		{
			name:  "star and gt",
			input: "a>*",
			tokens: []Token{
				{Type: TokenName, Value: "a", Pos: 0},
				{Type: TokenGt, Value: ">", Pos: 1},
				{Type: TokenStar, Value: "*", Pos: 2},
				{Type: TokenEOF, Pos: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLexer(tt.input)
			for i, want := range tt.tokens {
				got := l.NextToken()
				assert.Equal(t, want, got, "token %d", i)
			}
		})
	}
}
