package dsl

import (
	"unicode"
	"unicode/utf8"
)

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TokenEOF      TokenType = iota
	TokenIllegal            // a byte that starts no token
	TokenIdent              // function names, true, false, null
	TokenVariable           // $Name, Value holds the bare name
	TokenString             // JSON string, Value holds the raw quoted text
	TokenNumber             // JSON number
	TokenLParen             // (
	TokenRParen             // )
	TokenLBracket           // [
	TokenRBracket           // ]
	TokenLBrace             // {
	TokenRBrace             // }
	TokenComma              // ,
	TokenColon              // :
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenIllegal:
		return "illegal character"
	case TokenIdent:
		return "identifier"
	case TokenVariable:
		return "variable"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenLBracket:
		return "'['"
	case TokenRBracket:
		return "']'"
	case TokenLBrace:
		return "'{'"
	case TokenRBrace:
		return "'}'"
	case TokenComma:
		return "','"
	case TokenColon:
		return "':'"
	}
	return "unknown"
}

// Token represents a lexer token.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// Lexer tokenizes DSL source.
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

var punctuation = map[byte]TokenType{
	'(': TokenLParen,
	')': TokenRParen,
	'[': TokenLBracket,
	']': TokenRBracket,
	'{': TokenLBrace,
	'}': TokenRBrace,
	',': TokenComma,
	':': TokenColon,
}

// NextToken returns the next token from the input. An unterminated string
// or a malformed number comes back as TokenIllegal.
func (l *Lexer) NextToken() Token {
	l.skipSpaceAndComments()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}
	}

	start := l.pos
	c := l.input[l.pos]
	if tt, ok := punctuation[c]; ok {
		l.pos++
		return Token{Type: tt, Value: l.input[start:l.pos], Pos: start}
	}

	switch {
	case c == '"':
		return l.lexString()
	case c == '-' || isDigit(c):
		return l.lexNumber()
	case c == '$':
		l.pos++
		name := l.scanIdent()
		if name == "" {
			return Token{Type: TokenIllegal, Value: "$", Pos: start}
		}
		return Token{Type: TokenVariable, Value: name, Pos: start}
	}

	if name := l.scanIdent(); name != "" {
		return Token{Type: TokenIdent, Value: name, Pos: start}
	}
	_, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += size
	return Token{Type: TokenIllegal, Value: l.input[start:l.pos], Pos: start}
}

// skipSpaceAndComments also drops "//" comments up to the end of the line.
func (l *Lexer) skipSpaceAndComments() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		switch {
		case unicode.IsSpace(r):
			l.pos += size
		case r == '/' && l.pos+1 < len(l.input) && l.input[l.pos+1] == '/':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *Lexer) scanIdent() string {
	start := l.pos
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if r == '_' || unicode.IsLetter(r) || (l.pos > start && unicode.IsDigit(r)) {
			l.pos += size
			continue
		}
		break
	}
	return l.input[start:l.pos]
}

func (l *Lexer) lexString() Token {
	start := l.pos
	l.pos++
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case '\\':
			l.pos += 2
			continue
		case '"':
			l.pos++
			return Token{Type: TokenString, Value: l.input[start:l.pos], Pos: start}
		case '\n':
			return Token{Type: TokenIllegal, Value: l.input[start:l.pos], Pos: start}
		}
		l.pos++
	}
	l.pos = len(l.input)
	return Token{Type: TokenIllegal, Value: l.input[start:], Pos: start}
}

// lexNumber accepts the JSON number grammar.
func (l *Lexer) lexNumber() Token {
	start := l.pos
	if l.peekByte() == '-' {
		l.pos++
	}
	if !l.digits() {
		return l.illegal(start)
	}
	if l.peekByte() == '.' {
		l.pos++
		if !l.digits() {
			return l.illegal(start)
		}
	}
	if b := l.peekByte(); b == 'e' || b == 'E' {
		l.pos++
		if b := l.peekByte(); b == '+' || b == '-' {
			l.pos++
		}
		if !l.digits() {
			return l.illegal(start)
		}
	}
	return Token{Type: TokenNumber, Value: l.input[start:l.pos], Pos: start}
}

func (l *Lexer) digits() bool {
	start := l.pos
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	return l.pos > start
}

func (l *Lexer) peekByte() byte {
	if l.pos < len(l.input) {
		return l.input[l.pos]
	}
	return 0
}

func (l *Lexer) illegal(start int) Token {
	return Token{Type: TokenIllegal, Value: l.input[start:l.pos], Pos: start}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
