// Package dsl reads WOQL queries written as bare function calls, the form
// the printer emits in its dsl dialect:
//
//	select($Person, $Name,
//	  and(
//	    triple($Person, "rdf:type", "@schema:Person"),
//	    opt(triple($Person, "@schema:name", $Name))
//	  )
//	)
//
// Grammar:
//
//	query   := ('vars' '(' VARIABLE (',' VARIABLE)* ')')* call
//	value   := call | VARIABLE | STRING | NUMBER | 'true' | 'false' | 'null'
//	         | '[' (value (',' value)*)? ']'
//	         | '{' (STRING ':' value (',' STRING ':' value)*)? '}'
//	call    := IDENT '(' (value (',' value)*)? ')'
//
// Strings and numbers use JSON syntax. Variables are written $Name, or
// var("name") when the name is not an identifier. "//" starts a comment
// that runs to the end of the line.
//
// Each call is evaluated by the woql builder method of the same name, so a
// bare string means whatever it means to that method: a node in a value
// slot, a string literal in a data slot. string("x") and literal(v, type)
// force a typed literal.
package dsl
