package printer

import (
	"strings"

	"github.com/roach88/woql/internal/ir"
	"github.com/roach88/woql/internal/path"
	"github.com/roach88/woql/internal/vocab"
	"github.com/roach88/woql/internal/woql"
)

const indentUnit = "  "

// Printer renders WOQL documents as builder calls in one dialect.
type Printer struct {
	dialect Dialect
}

// New returns a Printer for d.
func New(d Dialect) *Printer {
	return &Printer{dialect: d}
}

// Print renders doc as source text in dialect d.
func Print(doc ir.IRObject, d Dialect) string {
	return New(d).Print(doc)
}

// Print renders doc. The empty document prints as an empty conjunction.
// Sub-queries go on their own lines, indented two spaces per level.
func (p *Printer) Print(doc ir.IRObject) string {
	return p.call(doc, 0)
}

func (p *Printer) call(obj ir.IRObject, level int) string {
	d := p.dialect
	if len(obj) == 0 {
		return d.prefix() + d.callName("and") + "()"
	}

	spec, ok := ops[obj.Type()]
	if !ok {
		spec = fallbackSpec(obj.Type(), obj.SortedKeys())
	}
	name := spec.name
	if _, hasGraph := obj["graph"]; hasGraph && spec.quadName != "" {
		name = spec.quadName
	}

	var inline, blocks []string
	for _, arg := range spec.args {
		v, ok := obj[arg.key]
		if !ok {
			continue
		}
		switch arg.kind {
		case argQuery:
			blocks = append(blocks, p.subQuery(v, level+1))
		case argQueries:
			arr, _ := v.(ir.IRArray)
			for _, q := range arr {
				blocks = append(blocks, p.subQuery(q, level+1))
			}
		case argVars:
			arr, _ := v.(ir.IRArray)
			for _, e := range arr {
				inline = append(inline, p.variable(e))
			}
		case argVarList:
			arr, _ := v.(ir.IRArray)
			names := make([]string, len(arr))
			for i, e := range arr {
				names[i] = p.variable(e)
			}
			inline = append(inline, "["+strings.Join(names, ", ")+"]")
		case argOrdering:
			arr, _ := v.(ir.IRArray)
			for _, e := range arr {
				inline = append(inline, p.ordering(e))
			}
		case argPattern:
			inline = append(inline, p.pattern(v))
		default:
			inline = append(inline, p.value(v, level))
		}
	}
	return p.format(d.callName(name), inline, blocks, level)
}

func (p *Printer) format(name string, inline, blocks []string, level int) string {
	var b strings.Builder
	b.WriteString(p.dialect.prefix())
	b.WriteString(name)
	b.WriteByte('(')
	b.WriteString(strings.Join(inline, ", "))
	if len(blocks) == 0 {
		b.WriteByte(')')
		return b.String()
	}

	if len(inline) > 0 {
		b.WriteByte(',')
	}
	b.WriteByte('\n')
	pad := strings.Repeat(indentUnit, level+1)
	for i, blk := range blocks {
		b.WriteString(pad)
		b.WriteString(blk)
		if i < len(blocks)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(indentUnit, level))
	b.WriteByte(')')
	return b.String()
}

func (p *Printer) subQuery(v ir.IRValue, level int) string {
	if obj, ok := v.(ir.IRObject); ok {
		return p.call(obj, level)
	}
	return p.value(v, level)
}

func (p *Printer) variable(v ir.IRValue) string {
	if s, ok := v.(ir.IRString); ok {
		return p.dialect.variable(string(s))
	}
	return p.value(v, 0)
}

func (p *Printer) ordering(v ir.IRValue) string {
	obj, ok := v.(ir.IRObject)
	if !ok || obj.Type() != "OrderTemplate" {
		return p.value(v, 0)
	}
	name := p.variable(obj["variable"])
	if dir, _ := obj["order"].(ir.IRString); dir == "desc" {
		return "[" + name + ", " + quote("desc") + "]"
	}
	return name
}

func (p *Printer) pattern(v ir.IRValue) string {
	pat, err := path.FromIR(v)
	if err != nil {
		return p.value(v, 0)
	}
	return quote(pat.String())
}

// value renders an inline argument: tagged values, JSON-LD literals,
// nested operators (arithmetic) and plain JSON.
func (p *Printer) value(v ir.IRValue, level int) string {
	d := p.dialect
	switch val := v.(type) {
	case ir.IRObject:
		if t, ok := woql.DecodeTagged(val); ok {
			return p.tagged(t, level)
		}
		if raw, ok := val["@value"]; ok {
			datatype, _ := val["@type"].(ir.IRString)
			return p.literal(woql.DataContext, woql.Literal{Value: raw, Datatype: string(datatype)})
		}
		if val.Type() != "" {
			return p.call(val, level)
		}
		parts := make([]string, 0, len(val))
		for _, k := range val.SortedKeys() {
			parts = append(parts, quote(k)+": "+p.value(val[k], level))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case ir.IRArray:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = p.value(e, level)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ir.IRString:
		return quote(string(val))
	case ir.IRInt, ir.IRNumber:
		return canonical(val)
	case ir.IRBool:
		return d.boolean(bool(val))
	}
	return d.null()
}

func (p *Printer) tagged(t woql.Tagged, level int) string {
	switch term := t.Term.(type) {
	case woql.VariableRef:
		return p.dialect.variable(term.Name)
	case woql.NodeRef:
		return quote(term.ID)
	case woql.Literal:
		return p.literal(t.Context, term)
	case woql.List:
		parts := make([]string, len(term.Elements))
		for i, e := range term.Elements {
			parts[i] = p.tagged(e, level)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case woql.Dictionary:
		parts := make([]string, len(term.Fields))
		for i, f := range term.Fields {
			// Plain strings inside a dictionary encode as literals.
			fv := f.Value
			if fv.Context == woql.ValueContext {
				fv.Context = woql.DataContext
			}
			parts[i] = quote(f.Key) + ": " + p.tagged(fv, level)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case woql.Opaque:
		return canonical(term.V)
	}
	return p.dialect.null()
}

// literal prints the shortest call that encodes back to the same literal.
// In a value slot a bare string would read as a node, so xsd:string needs
// an explicit string() there.
func (p *Printer) literal(ctx woql.Context, lit woql.Literal) string {
	d := p.dialect
	switch v := lit.Value.(type) {
	case ir.IRString:
		if lit.Datatype == vocab.DefaultString {
			if ctx == woql.ValueContext {
				return d.prefix() + "string(" + quote(string(v)) + ")"
			}
			return quote(string(v))
		}
	case ir.IRInt, ir.IRNumber:
		if lit.Datatype == vocab.DefaultNumber {
			return canonical(v)
		}
	case ir.IRBool:
		if lit.Datatype == vocab.DefaultBoolean {
			return d.boolean(bool(v))
		}
	}
	return d.prefix() + "literal(" + p.value(lit.Value, 0) + ", " + quote(lit.Datatype) + ")"
}

func quote(s string) string {
	return canonical(ir.IRString(s))
}

func canonical(v ir.IRValue) string {
	b, err := ir.MarshalCanonical(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
