package path

import (
	"strings"
	"unicode"
)

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TokenEOF    TokenType = iota
	TokenName             // predicate names, quantifier bounds, "."
	TokenComma            // ,
	TokenPipe             // |
	TokenLParen           // (
	TokenRParen           // )
	TokenPlus             // +
	TokenStar             // *
	TokenLBrace           // {
	TokenRBrace           // }
	TokenLt               // <
	TokenGt               // >
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenName:
		return "name"
	case TokenComma:
		return "','"
	case TokenPipe:
		return "'|'"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenPlus:
		return "'+'"
	case TokenStar:
		return "'*'"
	case TokenLBrace:
		return "'{'"
	case TokenRBrace:
		return "'}'"
	case TokenLt:
		return "'<'"
	case TokenGt:
		return "'>'"
	}
	return "unknown"
}

// Token represents a lexer token.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// Lexer tokenizes a path pattern.
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

var punctuation = map[byte]TokenType{
	',': TokenComma,
	'|': TokenPipe,
	'(': TokenLParen,
	')': TokenRParen,
	'+': TokenPlus,
	'*': TokenStar,
	'{': TokenLBrace,
	'}': TokenRBrace,
	'<': TokenLt,
	'>': TokenGt,
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}
	}

	start := l.pos
	if tt, ok := punctuation[l.input[l.pos]]; ok {
		l.pos++
		return Token{Type: tt, Value: l.input[start:l.pos], Pos: start}
	}

	end := strings.IndexFunc(l.input[start:], isDelimiter)
	if end < 0 {
		l.pos = len(l.input)
	} else {
		l.pos = start + end
	}
	return Token{Type: TokenName, Value: l.input[start:l.pos], Pos: start}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
}

func isDelimiter(r rune) bool {
	if r < 0x80 {
		if _, ok := punctuation[byte(r)]; ok {
			return true
		}
	}
	return unicode.IsSpace(r)
}
