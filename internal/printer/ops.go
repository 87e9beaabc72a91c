package printer

import (
	"strings"
	"unicode"
)

type argKind int

const (
	argValue   argKind = iota // rendered inline
	argQuery                  // one sub-query, rendered as a block
	argQueries                // list of sub-queries, each a block
	argVars                   // bare variable names spread as arguments
	argVarList                // bare variable names as one list argument
	argOrdering               // OrderTemplate list spread as arguments
	argPattern                // path pattern as its string form
)

type argSpec struct {
	key  string
	kind argKind
}

type opSpec struct {
	name string
	// quadName replaces name when the node carries a graph.
	quadName string
	args     []argSpec
}

func vals(keys ...string) []argSpec {
	out := make([]argSpec, len(keys))
	for i, k := range keys {
		out[i] = argSpec{key: k}
	}
	return out
}

func withQuery(args ...argSpec) []argSpec {
	return append(args, argSpec{key: "query", kind: argQuery})
}

var (
	spo      = vals("subject", "predicate", "object", "graph")
	binary   = vals("left", "right")
	wrapOnly = withQuery()
)

var ops = map[string]opSpec{
	"Triple":        {name: "triple", quadName: "quad", args: spo},
	"AddTriple":     {name: "add_triple", quadName: "add_quad", args: spo},
	"DeleteTriple":  {name: "delete_triple", quadName: "delete_quad", args: spo},
	"AddedTriple":   {name: "added_triple", quadName: "added_quad", args: spo},
	"DeletedTriple": {name: "deleted_triple", quadName: "deleted_quad", args: spo},
	"Link":          {name: "link", args: spo},
	"AddLink":       {name: "add_link", args: spo},
	"AddedLink":     {name: "added_link", args: spo},
	"DeleteLink":    {name: "delete_link", args: spo},
	"DeletedLink":   {name: "deleted_link", args: spo},
	"Data":          {name: "data", args: spo},
	"AddData":       {name: "add_data", args: spo},
	"AddedData":     {name: "added_data", args: spo},
	"DeleteData":    {name: "delete_data", args: spo},
	"DeletedData":   {name: "deleted_data", args: spo},

	"And":         {name: "and", args: []argSpec{{key: "and", kind: argQueries}}},
	"Or":          {name: "or", args: []argSpec{{key: "or", kind: argQueries}}},
	"Not":         {name: "not", args: wrapOnly},
	"Optional":    {name: "opt", args: wrapOnly},
	"Once":        {name: "once", args: wrapOnly},
	"Immediately": {name: "immediately", args: wrapOnly},
	"Pin":         {name: "pin", args: wrapOnly},
	"Select":      {name: "select", args: withQuery(argSpec{key: "variables", kind: argVars})},
	"Distinct":    {name: "distinct", args: withQuery(argSpec{key: "variables", kind: argVars})},
	"Limit":       {name: "limit", args: withQuery(vals("limit")...)},
	"Start":       {name: "start", args: withQuery(vals("start")...)},
	"Using":       {name: "using", args: withQuery(vals("collection")...)},
	"From":        {name: "from", args: withQuery(vals("graph")...)},
	"Into":        {name: "into", args: withQuery(vals("graph")...)},
	"Comment":     {name: "comment", args: withQuery(vals("comment")...)},
	"Count":       {name: "count", args: withQuery(vals("count")...)},
	"If": {name: "if", args: []argSpec{
		{key: "test", kind: argQuery},
		{key: "then", kind: argQuery},
		{key: "else", kind: argQuery},
	}},
	"True": {name: "true"},
	"OrderBy": {name: "order_by", args: withQuery(argSpec{key: "ordering", kind: argOrdering})},
	"GroupBy": {name: "group_by", args: withQuery(
		argSpec{key: "group_by", kind: argVarList},
		argSpec{key: "template"},
		argSpec{key: "grouped"},
	)},

	"Equals":      {name: "eq", args: binary},
	"Less":        {name: "less", args: binary},
	"Greater":     {name: "greater", args: binary},
	"Like":        {name: "like", args: vals("left", "right", "similarity")},
	"IsA":         {name: "isa", args: vals("element", "type")},
	"Subsumption": {name: "sub", args: vals("child", "parent")},
	"TypeOf":      {name: "type_of", args: vals("value", "type")},
	"Typecast":    {name: "typecast", args: vals("value", "type", "result")},

	"Member": {name: "member", args: vals("member", "list")},
	"Sum":    {name: "sum", args: vals("list", "result")},
	"Length": {name: "length", args: vals("list", "length")},
	"Dot":    {name: "dot", args: vals("document", "field", "value")},

	"Concatenate": {name: "concat", args: vals("list", "result")},
	"Join":        {name: "join", args: vals("list", "separator", "result")},
	"Split":       {name: "split", args: vals("string", "pattern", "list")},
	"Trim":        {name: "trim", args: vals("untrimmed", "trimmed")},
	"Upper":       {name: "upper", args: vals("mixed", "upper")},
	"Lower":       {name: "lower", args: vals("mixed", "lower")},
	"Pad":         {name: "pad", args: vals("string", "char", "times", "result")},
	"Regexp":      {name: "re", args: vals("pattern", "string", "result")},
	"Substring":   {name: "substr", args: vals("string", "before", "length", "after", "substring")},

	"Eval":   {name: "eval", args: vals("expression", "result")},
	"Plus":   {name: "plus", args: binary},
	"Minus":  {name: "minus", args: binary},
	"Times":  {name: "times", args: binary},
	"Divide": {name: "divide", args: binary},
	"Div":    {name: "div", args: binary},
	"Exp":    {name: "exp", args: binary},
	"Floor":  {name: "floor", args: vals("argument")},

	"Path": {name: "path", args: []argSpec{
		{key: "subject"},
		{key: "pattern", kind: argPattern},
		{key: "object"},
		{key: "path"},
	}},

	"InsertDocument": {name: "insert_document", args: vals("document", "identifier")},
	"UpdateDocument": {name: "update_document", args: vals("document", "identifier")},
	"DeleteDocument": {name: "delete_document", args: vals("identifier")},
	"ReadDocument":   {name: "read_document", args: vals("identifier", "document")},

	"LexicalKey":  {name: "idgen", args: vals("base", "key_list", "uri")},
	"HashKey":     {name: "unique", args: vals("base", "key_list", "uri")},
	"RandomKey":   {name: "idgen_random", args: vals("base", "uri")},
	"Size":        {name: "size", args: vals("resource", "size")},
	"TripleCount": {name: "triple_count", args: vals("resource", "count")},
}

// fallbackSpec renders an unknown operator as a snake_case call over its
// keys in canonical order.
func fallbackSpec(op string, keys []string) opSpec {
	var args []argSpec
	for _, k := range keys {
		if k == "@type" {
			continue
		}
		if k == "query" {
			continue
		}
		args = append(args, argSpec{key: k})
	}
	return opSpec{name: snakeCase(op), args: withQuery(args...)}
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
