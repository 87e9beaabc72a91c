package woql

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/roach88/woql/internal/ir"
	"github.com/roach88/woql/internal/vocab"
)

// VariablePrefix marks a string as a variable reference.
const VariablePrefix = "v:"

// Context selects the discriminant a tagged value is written with. The four
// contexts share one encoding and differ only in the "@type" string and in
// what a bare string defaults to.
type Context int

const (
	ValueContext Context = iota
	NodeContext
	DataContext
	ArithmeticContext
)

// Discriminant returns the wire "@type" for the context.
func (c Context) Discriminant() string {
	switch c {
	case NodeContext:
		return "NodeValue"
	case DataContext:
		return "DataValue"
	case ArithmeticContext:
		return "ArithmeticValue"
	default:
		return "Value"
	}
}

func (c Context) String() string {
	return c.Discriminant()
}

// ContextOf maps a wire discriminant back to its context.
func ContextOf(discriminant string) (Context, bool) {
	switch discriminant {
	case "Value":
		return ValueContext, true
	case "NodeValue":
		return NodeContext, true
	case "DataValue":
		return DataContext, true
	case "ArithmeticValue":
		return ArithmeticContext, true
	}
	return 0, false
}

// Term is the payload of a tagged value. Only the types in this file
// implement it.
type Term interface {
	term()
}

// Literal is a typed scalar.
type Literal struct {
	Value    ir.IRValue
	Datatype string
}

// NodeRef references a graph node by IRI or prefixed name.
type NodeRef struct {
	ID string
}

// VariableRef references a query variable. Name never carries the "v:"
// prefix.
type VariableRef struct {
	Name string
}

// List is an ordered sequence of tagged values.
type List struct {
	Elements []Tagged
}

// Field is one key of a Dictionary.
type Field struct {
	Key   string
	Value Tagged
}

// Dictionary embeds a document as a value.
type Dictionary struct {
	Fields []Field
}

// Opaque carries input the encoder does not understand. It renders exactly
// as given.
type Opaque struct {
	V ir.IRValue
}

func (Literal) term()     {}
func (NodeRef) term()     {}
func (VariableRef) term() {}
func (List) term()        {}
func (Dictionary) term()  {}
func (Opaque) term()      {}

// Tagged is a term together with the context it was encoded for.
type Tagged struct {
	Context Context
	Term    Term
}

// IR encodes the tagged value in wire form.
func (t Tagged) IR() ir.IRValue {
	obj := ir.Obj(ir.O("@type", ir.IRString(t.Context.Discriminant())))

	switch term := t.Term.(type) {
	case Literal:
		obj["data"] = term.IR()
	case NodeRef:
		obj["node"] = ir.IRString(term.ID)
	case VariableRef:
		obj["variable"] = ir.IRString(term.Name)
	case List:
		elems := make(ir.IRArray, len(term.Elements))
		for i, e := range term.Elements {
			elems[i] = e.IR()
		}
		obj["list"] = elems
	case Dictionary:
		obj["dictionary"] = term.IR()
	case Opaque:
		return term.V
	default:
		return ir.IRNull{}
	}
	return obj
}

// IR encodes the literal as a JSON-LD value object.
func (l Literal) IR() ir.IRObject {
	v := l.Value
	if v == nil {
		v = ir.IRNull{}
	}
	return ir.Obj(
		ir.O("@type", ir.IRString(l.Datatype)),
		ir.O("@value", v),
	)
}

// IR encodes the dictionary as a DictionaryTemplate.
func (d Dictionary) IR() ir.IRObject {
	pairs := make(ir.IRArray, len(d.Fields))
	for i, f := range d.Fields {
		pairs[i] = ir.Obj(
			ir.O("@type", ir.IRString("FieldValuePair")),
			ir.O("field", ir.IRString(f.Key)),
			ir.O("value", f.Value.IR()),
		)
	}
	return ir.Obj(
		ir.O("@type", ir.IRString("DictionaryTemplate")),
		ir.O("data", pairs),
	)
}

// Var is a string that always encodes as a variable, with or without the
// "v:" prefix.
type Var string

// EncodeOption adjusts how Encode treats its input.
type EncodeOption func(*encodeConfig)

type encodeConfig struct {
	datatype       string
	asVariable     bool
	stringsAsNodes bool
}

// WithDatatype overrides the default datatype of scalar literals.
func WithDatatype(datatype string) EncodeOption {
	return func(c *encodeConfig) {
		c.datatype = datatype
	}
}

// AsVariable forces strings to be read as variable names.
func AsVariable() EncodeOption {
	return func(c *encodeConfig) {
		c.asVariable = true
	}
}

// StringsAsNodes reads bare strings as node references in any context.
func StringsAsNodes() EncodeOption {
	return func(c *encodeConfig) {
		c.stringsAsNodes = true
	}
}

// Encode converts a host value into a tagged value for ctx. Tagged input is
// returned unchanged; Term input is tagged with ctx.
func Encode(ctx Context, v any, opts ...EncodeOption) Tagged {
	var cfg encodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return encode(ctx, v, cfg)
}

func encode(ctx Context, v any, cfg encodeConfig) Tagged {
	switch val := v.(type) {
	case Tagged:
		return val
	case Term:
		return Tagged{Context: ctx, Term: val}
	case Var:
		return Tagged{Context: ctx, Term: VariableRef{Name: stripVariable(string(val))}}
	case string:
		return encodeString(ctx, val, cfg)
	case ir.IRString:
		return encodeString(ctx, string(val), cfg)
	case bool:
		return literal(ctx, ir.IRBool(val), cfg.datatype, vocab.DefaultBoolean)
	case ir.IRBool:
		return literal(ctx, val, cfg.datatype, vocab.DefaultBoolean)
	case time.Time:
		return literal(ctx, ir.IRString(val.Format(time.RFC3339Nano)), cfg.datatype, vocab.DefaultDateTime)
	case ir.IRInt, ir.IRNumber:
		return literal(ctx, val.(ir.IRValue), cfg.datatype, vocab.DefaultNumber)
	case ir.IRObject:
		return encodeObject(ctx, val, cfg)
	case ir.IRArray:
		elems := make([]Tagged, len(val))
		for i, e := range val {
			elems[i] = encode(ctx, e, cfg)
		}
		return Tagged{Context: ctx, Term: List{Elements: elems}}
	case nil, ir.IRNull:
		return Tagged{Context: ctx, Term: Opaque{V: ir.IRNull{}}}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if rv.CanFloat() {
			f := rv.Float()
			if math.IsNaN(f) || math.IsInf(f, 0) {
				// NaN and the infinities have no JSON number form.
				return literal(ctx, ir.IRString(xsdSpecial(f)), "", vocab.Double)
			}
			return literal(ctx, ir.NewIRNumber(f), cfg.datatype, vocab.DefaultNumber)
		}
		num, err := ir.FromGo(v)
		if err != nil {
			return Tagged{Context: ctx, Term: Opaque{V: ir.IRString(fmt.Sprint(v))}}
		}
		return literal(ctx, num, cfg.datatype, vocab.DefaultNumber)
	case reflect.Slice, reflect.Array:
		elems := make([]Tagged, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elems[i] = encode(ctx, rv.Index(i).Interface(), cfg)
		}
		return Tagged{Context: ctx, Term: List{Elements: elems}}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return Tagged{Context: ctx, Term: encodeMap(rv)}
		}
	}

	if raw, err := ir.FromGo(v); err == nil {
		return Tagged{Context: ctx, Term: Opaque{V: raw}}
	}
	return Tagged{Context: ctx, Term: Opaque{V: ir.IRString(fmt.Sprint(v))}}
}

func encodeString(ctx Context, s string, cfg encodeConfig) Tagged {
	if cfg.asVariable || strings.HasPrefix(s, VariablePrefix) {
		return Tagged{Context: ctx, Term: VariableRef{Name: stripVariable(s)}}
	}
	if ctx == NodeContext || cfg.stringsAsNodes {
		return Tagged{Context: ctx, Term: NodeRef{ID: s}}
	}
	return literal(ctx, ir.IRString(s), cfg.datatype, vocab.DefaultString)
}

func literal(ctx Context, v ir.IRValue, datatype, fallback string) Tagged {
	if datatype == "" {
		datatype = fallback
	}
	return Tagged{Context: ctx, Term: Literal{Value: v, Datatype: datatype}}
}

// encodeObject handles decoded JSON: wire tagged values pass through,
// JSON-LD value objects become literals, anything else a dictionary.
func encodeObject(ctx Context, obj ir.IRObject, cfg encodeConfig) Tagged {
	if t, ok := DecodeTagged(obj); ok {
		return t
	}
	if v, ok := obj["@value"]; ok {
		datatype, _ := obj["@type"].(ir.IRString)
		return literal(ctx, v, string(datatype), vocab.DefaultString)
	}
	if id, ok := obj["@id"].(ir.IRString); ok && len(obj) == 1 {
		return Tagged{Context: ctx, Term: NodeRef{ID: string(id)}}
	}

	fields := make([]Field, 0, len(obj))
	for _, k := range obj.SortedKeys() {
		fields = append(fields, Field{Key: k, Value: encode(ValueContext, obj[k], encodeConfig{})})
	}
	return Tagged{Context: ctx, Term: Dictionary{Fields: fields}}
}

func encodeMap(rv reflect.Value) Dictionary {
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	fields := make([]Field, len(keys))
	for i, k := range keys {
		elem := rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface()
		fields[i] = Field{Key: k, Value: encode(ValueContext, elem, encodeConfig{})}
	}
	return Dictionary{Fields: fields}
}

func stripVariable(name string) string {
	return strings.TrimPrefix(name, VariablePrefix)
}

// DecodeTagged reads a wire tagged value. It reports false when obj is not
// one. Payloads it cannot interpret are kept as Opaque so they render back
// unchanged.
func DecodeTagged(obj ir.IRObject) (Tagged, bool) {
	ctx, ok := ContextOf(obj.Type())
	if !ok {
		return Tagged{}, false
	}
	opaque := Tagged{Context: ctx, Term: Opaque{V: obj}}

	if len(obj) != 2 {
		return opaque, true
	}

	switch {
	case obj["variable"] != nil:
		name, ok := obj["variable"].(ir.IRString)
		if !ok {
			return opaque, true
		}
		return Tagged{Context: ctx, Term: VariableRef{Name: string(name)}}, true

	case obj["node"] != nil:
		id, ok := obj["node"].(ir.IRString)
		if !ok {
			return opaque, true
		}
		return Tagged{Context: ctx, Term: NodeRef{ID: string(id)}}, true

	case obj["data"] != nil:
		data, ok := obj["data"].(ir.IRObject)
		if !ok || len(data) != 2 {
			return opaque, true
		}
		datatype, ok := data["@type"].(ir.IRString)
		value, hasValue := data["@value"]
		if !ok || !hasValue {
			return opaque, true
		}
		return Tagged{Context: ctx, Term: Literal{Value: value, Datatype: string(datatype)}}, true

	case obj["list"] != nil:
		arr, ok := obj["list"].(ir.IRArray)
		if !ok {
			return opaque, true
		}
		elems := make([]Tagged, len(arr))
		for i, e := range arr {
			elems[i] = decodeElement(ctx, e)
		}
		return Tagged{Context: ctx, Term: List{Elements: elems}}, true

	case obj["dictionary"] != nil:
		dict, ok := decodeDictionary(obj["dictionary"])
		if !ok {
			return opaque, true
		}
		return Tagged{Context: ctx, Term: dict}, true
	}
	return opaque, true
}

func decodeElement(ctx Context, v ir.IRValue) Tagged {
	if obj, ok := v.(ir.IRObject); ok {
		if t, ok := DecodeTagged(obj); ok {
			return t
		}
	}
	return Tagged{Context: ctx, Term: Opaque{V: v}}
}

func decodeDictionary(v ir.IRValue) (Dictionary, bool) {
	tmpl, ok := v.(ir.IRObject)
	if !ok || tmpl.Type() != "DictionaryTemplate" || len(tmpl) != 2 {
		return Dictionary{}, false
	}
	pairs, ok := tmpl["data"].(ir.IRArray)
	if !ok {
		return Dictionary{}, false
	}

	fields := make([]Field, 0, len(pairs))
	for _, p := range pairs {
		pair, ok := p.(ir.IRObject)
		if !ok || pair.Type() != "FieldValuePair" || len(pair) != 3 {
			return Dictionary{}, false
		}
		key, ok := pair["field"].(ir.IRString)
		if !ok {
			return Dictionary{}, false
		}
		fields = append(fields, Field{Key: string(key), Value: decodeElement(ValueContext, pair["value"])})
	}
	return Dictionary{Fields: fields}, true
}

// IsTagged reports whether v is a wire tagged value.
func IsTagged(v ir.IRValue) bool {
	obj, ok := v.(ir.IRObject)
	if !ok {
		return false
	}
	_, ok = ContextOf(obj.Type())
	return ok
}

// String returns an xsd:string literal.
func String(s string) Literal {
	return Literal{Value: ir.IRString(s), Datatype: vocab.DefaultString}
}

// Typed returns a literal of the given datatype. Values with no JSON form
// are written with fmt.Sprint.
func Typed(v any, datatype string) Literal {
	val, err := ir.FromGo(v)
	if err != nil {
		val = ir.IRString(fmt.Sprint(v))
	}
	return Literal{Value: val, Datatype: datatype}
}

// Boolean returns an xsd:boolean literal.
func Boolean(b bool) Literal {
	return Literal{Value: ir.IRBool(b), Datatype: vocab.DefaultBoolean}
}

// DateTime returns an xsd:dateTime literal.
func DateTime(t time.Time) Literal {
	return Literal{Value: ir.IRString(t.Format(time.RFC3339Nano)), Datatype: vocab.DefaultDateTime}
}

// Iri returns a node reference.
func Iri(id string) NodeRef {
	return NodeRef{ID: id}
}

// Vars returns variable references for each name.
func Vars(names ...string) []VariableRef {
	refs := make([]VariableRef, len(names))
	for i, n := range names {
		refs[i] = VariableRef{Name: stripVariable(n)}
	}
	return refs
}

// Dict encodes a document for embedding as a value.
func Dict(doc map[string]any) Dictionary {
	return encodeMap(reflect.ValueOf(doc))
}

// isWordRune matches the characters a variable name may hold inside a
// concatenation template.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// xsdSpecial spells a non-finite float in xsd:double lexical form.
func xsdSpecial(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	return "NaN"
}
