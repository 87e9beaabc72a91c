package woql

import (
	"strings"

	"github.com/roach88/woql/internal/vocab"
)

// Concat concatenates list into result. A string list is read as a
// template: each "v:Name" run becomes a variable and the text between
// becomes literals, so "v:First v:Last" joins First, " " and Last.
func (q *Query) Concat(list, result any) *Query {
	if s, ok := list.(string); ok {
		list = concatTemplate(s)
	}
	n := q.open("Concatenate")
	n.set("list", Encode(DataContext, list))
	n.set("result", Encode(DataContext, result))
	return q
}

func concatTemplate(s string) []any {
	var parts []any
	for s != "" {
		i := strings.Index(s, VariablePrefix)
		if i < 0 {
			parts = append(parts, s)
			break
		}
		if i > 0 {
			parts = append(parts, s[:i])
		}
		rest := s[i+len(VariablePrefix):]
		end := strings.IndexFunc(rest, func(r rune) bool { return !isWordRune(r) })
		if end < 0 {
			end = len(rest)
		}
		if end == 0 {
			// a lone "v:" is plain text
			parts = append(parts, VariablePrefix)
		} else {
			parts = append(parts, Var(rest[:end]))
		}
		s = rest[end:]
	}
	return mergeText(parts)
}

// mergeText joins adjacent literal fragments.
func mergeText(parts []any) []any {
	var out []any
	for _, p := range parts {
		if s, ok := p.(string); ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(string); ok {
				out[len(out)-1] = prev + s
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// Join joins list with separator into result.
func (q *Query) Join(list, separator, result any) *Query {
	n := q.open("Join")
	n.set("list", Encode(DataContext, list))
	n.set("separator", Encode(DataContext, separator))
	n.set("result", Encode(DataContext, result))
	return q
}

// Split splits s on pattern into list.
func (q *Query) Split(s, pattern, list any) *Query {
	n := q.open("Split")
	n.set("string", Encode(DataContext, s))
	n.set("pattern", Encode(DataContext, pattern))
	n.set("list", Encode(DataContext, list))
	return q
}

// Trim removes surrounding whitespace.
func (q *Query) Trim(untrimmed, trimmed any) *Query {
	n := q.open("Trim")
	n.set("untrimmed", Encode(DataContext, untrimmed))
	n.set("trimmed", Encode(DataContext, trimmed))
	return q
}

// Upper upper-cases mixed.
func (q *Query) Upper(mixed, upper any) *Query {
	n := q.open("Upper")
	n.set("mixed", Encode(DataContext, mixed))
	n.set("upper", Encode(DataContext, upper))
	return q
}

// Lower lower-cases mixed.
func (q *Query) Lower(mixed, lower any) *Query {
	n := q.open("Lower")
	n.set("mixed", Encode(DataContext, mixed))
	n.set("lower", Encode(DataContext, lower))
	return q
}

// Pad repeats char times in front of s.
func (q *Query) Pad(s, char, times, result any) *Query {
	n := q.open("Pad")
	n.set("string", Encode(DataContext, s))
	n.set("char", Encode(DataContext, char))
	n.set("times", Encode(DataContext, times, WithDatatype("xsd:integer")))
	n.set("result", Encode(DataContext, result))
	return q
}

// Regexp matches s against pattern. The optional result binds the capture
// groups.
func (q *Query) Regexp(pattern, s any, result ...any) *Query {
	n := q.open("Regexp")
	n.set("pattern", Encode(DataContext, pattern))
	n.set("string", Encode(DataContext, s))
	if len(result) > 0 {
		n.set("result", Encode(DataContext, result[0]))
	}
	if len(result) > 1 {
		q.addError("Regexp", "takes at most one result argument, got %d", len(result))
	}
	return q
}

// Re is an alias of Regexp.
func (q *Query) Re(pattern, s any, result ...any) *Query {
	return q.Regexp(pattern, s, result...)
}

// SubstrParams names the five slots of Substring.
type SubstrParams struct {
	String    any
	Before    any
	Length    any
	After     any
	Substring any
}

// Substring relates a string to a substring and the character counts
// before, inside and after it.
func (q *Query) Substring(p SubstrParams) *Query {
	n := q.open("Substring")
	n.set("string", Encode(DataContext, p.String))
	n.set("before", countTerm(p.Before))
	n.set("length", countTerm(p.Length))
	n.set("after", countTerm(p.After))
	n.set("substring", Encode(DataContext, p.Substring))
	return q
}

// Substr is the positional form of Substring. Five arguments map to
// (string, before, length, after, substring); four arguments omit after,
// which defaults to 0. Other arities are recorded as errors.
func (q *Query) Substr(args ...any) *Query {
	var p SubstrParams
	switch len(args) {
	case 5:
		p = SubstrParams{String: args[0], Before: args[1], Length: args[2], After: args[3], Substring: args[4]}
	case 4:
		p = SubstrParams{String: args[0], Before: args[1], Length: args[2], After: 0, Substring: args[3]}
	default:
		q.addError("Substring", "takes four or five parameters, got %d", len(args))
		for i, v := range args {
			switch i {
			case 0:
				p.String = v
			case 1:
				p.Before = v
			case 2:
				p.Length = v
			}
		}
	}
	return q.Substring(p)
}

func countTerm(v any) Tagged {
	return Encode(DataContext, v, WithDatatype(vocab.NonNegativeInt))
}
