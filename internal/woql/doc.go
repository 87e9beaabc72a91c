// Package woql builds WOQL queries.
//
// A Query is a fluent builder over an arena of operator nodes with a single
// write cursor. Every operator method fills the cursor; when the cursor
// already holds an operator, the existing content is moved into an And and
// the new operator becomes the next conjunct:
//
//	q := woql.New().
//		Triple("v:X", "type", "@schema:Person").
//		Triple("v:X", "@schema:name", "v:Name")
//
// builds And(Triple, Triple). Malformed calls never abort the chain. They
// are recorded and can be inspected with Errors, or turned into a hard
// failure with Build.
//
// JSON returns the canonical document after the rollup rules in
// Canonicalize have been applied.
package woql
