package dsl

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/roach88/woql/internal/ir"
	"github.com/roach88/woql/internal/woql"
)

const nearWidth = 24

// SyntaxError reports malformed DSL source or a call whose arguments do not
// fit the function.
type SyntaxError struct {
	Input  string
	Pos    int
	Line   int
	Column int
	Near   string
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("dsl: %s at line %d, column %d", e.Msg, e.Line, e.Column)
	}
	return fmt.Sprintf("dsl: %s at line %d, column %d near %q", e.Msg, e.Line, e.Column, e.Near)
}

// Parser parses DSL source into queries.
type Parser struct {
	input string
	lexer *Lexer
	curr  Token
	peek  Token
	opts  []woql.Option
}

// Parse compiles DSL source into a query. Builder options such as
// woql.WithVocabulary apply to every call. Malformed calls the builder
// itself rejects come back as the query's joined build errors.
func Parse(input string, opts ...woql.Option) (*woql.Query, error) {
	p := &Parser{input: input, lexer: NewLexer(input), opts: opts}
	p.advance()
	p.advance()

	if p.curr.Type == TokenEOF {
		return nil, p.errorf("empty query")
	}
	if err := p.parseDeclarations(); err != nil {
		return nil, err
	}

	start := p.curr.Pos
	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	q, ok := v.(*woql.Query)
	if !ok {
		return nil, p.errorAt(start, "expected a query, got %s", describe(v))
	}
	if p.curr.Type != TokenEOF {
		return nil, p.errorf("unexpected %v after query", p.curr.Type)
	}
	if err := q.Err(); err != nil {
		return nil, err
	}
	return q, nil
}

// MustParse is like Parse but panics on error.
func MustParse(input string, opts ...woql.Option) *woql.Query {
	q, err := Parse(input, opts...)
	if err != nil {
		panic(err)
	}
	return q
}

func (p *Parser) advance() {
	p.curr = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) errorf(format string, args ...any) *SyntaxError {
	return p.errorAt(p.curr.Pos, format, args...)
}

func (p *Parser) errorAt(pos int, format string, args ...any) *SyntaxError {
	line := 1 + strings.Count(p.input[:pos], "\n")
	lineStart := strings.LastIndexByte(p.input[:pos], '\n') + 1
	return &SyntaxError{
		Input:  p.input,
		Pos:    pos,
		Line:   line,
		Column: 1 + utf8.RuneCountInString(p.input[lineStart:pos]),
		Near:   near(p.input[pos:]),
		Msg:    fmt.Sprintf(format, args...),
	}
}

// near is the rest of the line at the error, cut to a readable width.
func near(rest string) string {
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	rest = strings.TrimSpace(rest)
	if utf8.RuneCountInString(rest) <= nearWidth {
		return rest
	}
	runes := []rune(rest)
	return string(runes[:nearWidth]) + "..."
}

func (p *Parser) expect(tt TokenType) error {
	if p.curr.Type != tt {
		return p.errorf("expected %v, got %v", tt, p.curr.Type)
	}
	p.advance()
	return nil
}

// parseDeclarations skips leading vars($A, $B) statements. They name the
// variables a query uses and build nothing.
func (p *Parser) parseDeclarations() error {
	for p.curr.Type == TokenIdent && p.curr.Value == "vars" && p.peek.Type == TokenLParen {
		p.advance()
		p.advance()
		for p.curr.Type != TokenRParen {
			if p.curr.Type != TokenVariable {
				return p.errorf("vars takes only variables, got %v", p.curr.Type)
			}
			p.advance()
			if p.curr.Type == TokenComma {
				p.advance()
			} else if p.curr.Type != TokenRParen {
				return p.errorf("expected ',' or ')', got %v", p.curr.Type)
			}
		}
		p.advance()
	}
	return nil
}

// parseValue parses one argument: a call, a variable, a literal, a list
// or a dictionary.
func (p *Parser) parseValue() (any, error) {
	tok := p.curr
	switch tok.Type {
	case TokenIdent:
		if p.peek.Type == TokenLParen {
			return p.parseCall()
		}
		p.advance()
		switch tok.Value {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "null":
			return nil, nil
		}
		return nil, p.errorAt(tok.Pos, "unknown identifier %q", tok.Value)
	case TokenVariable:
		p.advance()
		return woql.Var(tok.Value), nil
	case TokenString:
		s, err := p.unquote(tok)
		if err != nil {
			return nil, err
		}
		p.advance()
		return s, nil
	case TokenNumber:
		n, err := ir.FromGo(json.Number(tok.Value))
		if err != nil {
			return nil, p.errorf("invalid number %q", tok.Value)
		}
		p.advance()
		return n, nil
	case TokenLBracket:
		return p.parseList()
	case TokenLBrace:
		return p.parseDict()
	case TokenIllegal:
		if strings.HasPrefix(tok.Value, `"`) {
			return nil, p.errorf("unterminated string")
		}
		return nil, p.errorf("unexpected %q", tok.Value)
	case TokenEOF:
		return nil, p.errorf("unexpected end of input")
	}
	return nil, p.errorf("unexpected %v", tok.Type)
}

func (p *Parser) unquote(tok Token) (string, error) {
	if !utf8.ValidString(tok.Value) {
		return "", p.errorf("string is not valid UTF-8")
	}
	var s string
	if err := json.Unmarshal([]byte(tok.Value), &s); err != nil {
		return "", p.errorf("invalid string literal")
	}
	return s, nil
}

func (p *Parser) parseList() (any, error) {
	p.advance()
	items := []any{}
	for p.curr.Type != TokenRBracket {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		if p.curr.Type == TokenComma {
			p.advance()
			continue
		}
		if p.curr.Type != TokenRBracket {
			return nil, p.errorf("expected ',' or ']', got %v", p.curr.Type)
		}
	}
	p.advance()
	return items, nil
}

func (p *Parser) parseDict() (any, error) {
	p.advance()
	dict := map[string]any{}
	for p.curr.Type != TokenRBrace {
		if p.curr.Type != TokenString {
			return nil, p.errorf("dictionary keys must be strings, got %v", p.curr.Type)
		}
		keyTok := p.curr
		key, err := p.unquote(keyTok)
		if err != nil {
			return nil, err
		}
		if _, dup := dict[key]; dup {
			return nil, p.errorf("duplicate key %q", key)
		}
		p.advance()
		if err := p.expect(TokenColon); err != nil {
			return nil, err
		}
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		dict[key] = v
		if p.curr.Type == TokenComma {
			p.advance()
			continue
		}
		if p.curr.Type != TokenRBrace {
			return nil, p.errorf("expected ',' or '}', got %v", p.curr.Type)
		}
	}
	p.advance()
	return dict, nil
}

// parseCall reads name(arg, ...) and hands the evaluated arguments to the
// function registered under name.
func (p *Parser) parseCall() (any, error) {
	c := &call{parser: p, name: p.curr.Value, pos: p.curr.Pos}
	fn, ok := builtins[c.name]
	if !ok {
		return nil, p.errorf("unknown function %q", c.name)
	}
	p.advance()
	p.advance()

	for p.curr.Type != TokenRParen {
		pos := p.curr.Pos
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		c.args = append(c.args, arg{pos: pos, val: v})
		if p.curr.Type == TokenComma {
			p.advance()
			continue
		}
		if p.curr.Type != TokenRParen {
			return nil, p.errorf("expected ',' or ')', got %v", p.curr.Type)
		}
	}
	c.end = p.curr.Pos
	p.advance()

	return fn(woql.New(p.opts...), c)
}

// describe names the kind of an evaluated argument for error messages.
func describe(v any) string {
	switch v.(type) {
	case *woql.Query:
		return "query"
	case woql.Var:
		return "variable"
	case string:
		return "string"
	case ir.IRInt, ir.IRNumber:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	case []any:
		return "list"
	case map[string]any:
		return "dictionary"
	case woql.Literal:
		return "literal"
	case woql.NodeRef:
		return "node"
	case woql.Order:
		return "ordering"
	}
	return "value"
}
