// Package path compiles the WOQL path-pattern mini-language into pattern
// trees and encodes them as PathPattern wire objects.
//
// Grammar, loosest binding first:
//
//	pattern     := alternation
//	alternation := sequence ('|' sequence)*
//	sequence    := repeated (',' repeated)*
//	repeated    := atom ('+' | '*' | '{' INT ',' INT '}')*
//	atom        := '(' pattern ')' | predicate
//	predicate   := '<' NAME ('<' | '>')? | NAME '>'? | '.'
//
// Both '|' and ',' associate to the right, so "a,b,c" is
// Sequence(a, Sequence(b, c)).
package path
