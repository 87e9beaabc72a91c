package path

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/roach88/woql/internal/vocab"
)

// SyntaxError reports a malformed pattern.
type SyntaxError struct {
	Input string
	Pos   int
	Near  string
	Msg   string
}

func (e *SyntaxError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("path pattern %q: %s at position %d", e.Input, e.Msg, e.Pos)
	}
	return fmt.Sprintf("path pattern %q: %s at position %d near %q", e.Input, e.Msg, e.Pos, e.Near)
}

// Option configures Parse.
type Option func(*Parser)

// WithVocabulary resolves bare predicate names through table instead of the
// built-in shortening table.
func WithVocabulary(table vocab.Table) Option {
	return func(p *Parser) {
		p.vocab = table
	}
}

// Parser parses path patterns into Pattern trees.
type Parser struct {
	input string
	lexer *Lexer
	curr  Token
	peek  Token
	vocab vocab.Table
}

// Parse compiles a path pattern.
func Parse(input string, opts ...Option) (Pattern, error) {
	p := &Parser{input: input, lexer: NewLexer(input), vocab: vocab.Default()}
	for _, opt := range opts {
		opt(p)
	}
	p.advance()
	p.advance()

	if p.curr.Type == TokenEOF {
		return nil, p.errorf("empty path pattern")
	}

	pat, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	switch p.curr.Type {
	case TokenEOF:
		return pat, nil
	case TokenRParen:
		return nil, p.errorf("unbalanced parenthesis")
	default:
		return nil, p.errorf("unexpected %v", p.curr.Type)
	}
}

// MustParse is like Parse but panics on error.
func MustParse(input string, opts ...Option) Pattern {
	pat, err := Parse(input, opts...)
	if err != nil {
		panic(err)
	}
	return pat
}

func (p *Parser) advance() {
	p.curr = p.peek
	p.peek = p.lexer.NextToken()
}

func (p *Parser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Input: p.input,
		Pos:   p.curr.Pos,
		Near:  strings.TrimSpace(p.input[p.curr.Pos:]),
		Msg:   fmt.Sprintf(format, args...),
	}
}

func (p *Parser) parseAlternation() (Pattern, error) {
	left, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if p.curr.Type != TokenPipe {
		return left, nil
	}
	p.advance()
	right, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	return Or{Left: left, Right: right}, nil
}

func (p *Parser) parseSequence() (Pattern, error) {
	left, err := p.parseRepeated()
	if err != nil {
		return nil, err
	}
	if p.curr.Type != TokenComma {
		return left, nil
	}
	p.advance()
	right, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	return Sequence{Left: left, Right: right}, nil
}

func (p *Parser) parseRepeated() (Pattern, error) {
	pat, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		switch p.curr.Type {
		case TokenPlus:
			p.advance()
			pat = Plus{Inner: pat}
		case TokenStar:
			p.advance()
			pat = Star{Inner: pat}
		case TokenLBrace:
			from, to, err := p.parseBounds()
			if err != nil {
				return nil, err
			}
			pat = Repeat{Inner: pat, From: from, To: to}
		default:
			return pat, nil
		}
	}
}

// parseBounds parses "{m,n}" with the cursor on '{'.
func (p *Parser) parseBounds() (int, int, error) {
	open := p.curr
	p.advance()

	from, err := p.parseBound()
	if err != nil {
		return 0, 0, err
	}
	if p.curr.Type != TokenComma {
		return 0, 0, p.errorf("expected ',' in quantifier")
	}
	p.advance()
	to, err := p.parseBound()
	if err != nil {
		return 0, 0, err
	}
	if p.curr.Type != TokenRBrace {
		return 0, 0, p.errorf("expected '}' to close quantifier")
	}
	if from > to {
		return 0, 0, &SyntaxError{
			Input: p.input,
			Pos:   open.Pos,
			Near:  p.input[open.Pos : p.curr.Pos+1],
			Msg:   fmt.Sprintf("quantifier lower bound %d exceeds upper bound %d", from, to),
		}
	}
	p.advance()
	return from, to, nil
}

func (p *Parser) parseBound() (int, error) {
	if p.curr.Type != TokenName {
		return 0, p.errorf("expected integer in quantifier, got %v", p.curr.Type)
	}
	n, err := strconv.Atoi(p.curr.Value)
	if err != nil || n < 0 {
		return 0, p.errorf("invalid quantifier bound %q", p.curr.Value)
	}
	p.advance()
	return n, nil
}

func (p *Parser) parseAtom() (Pattern, error) {
	switch p.curr.Type {
	case TokenLParen:
		open := p.curr
		p.advance()
		if p.curr.Type == TokenRParen {
			return nil, p.errorf("empty group")
		}
		inner, err := p.parseAlternation()
		if err != nil {
			return nil, err
		}
		if p.curr.Type != TokenRParen {
			return nil, &SyntaxError{
				Input: p.input,
				Pos:   open.Pos,
				Near:  strings.TrimSpace(p.input[open.Pos:]),
				Msg:   "unbalanced parenthesis",
			}
		}
		p.advance()
		return inner, nil

	case TokenLt:
		p.advance()
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		// "<p<" and "<p>" walk the edge in both directions.
		if p.curr.Type == TokenLt || p.curr.Type == TokenGt {
			p.advance()
			return Or{Left: Predicate{Name: name}, Right: InversePredicate{Name: name}}, nil
		}
		return InversePredicate{Name: name}, nil

	case TokenName:
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if p.curr.Type == TokenGt {
			p.advance()
		}
		return Predicate{Name: name}, nil

	case TokenEOF:
		return nil, p.errorf("unexpected end of pattern")

	default:
		return nil, p.errorf("unexpected %v", p.curr.Type)
	}
}

// parseName consumes a predicate name. "." yields the empty wildcard name.
func (p *Parser) parseName() (string, error) {
	if p.curr.Type != TokenName {
		return "", p.errorf("expected predicate, got %v", p.curr.Type)
	}
	name := p.curr.Value
	if !utf8.ValidString(name) {
		return "", p.errorf("predicate name is not valid UTF-8")
	}
	p.advance()
	if name == "." {
		return "", nil
	}
	return p.vocab.Expand(name), nil
}
