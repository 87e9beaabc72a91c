// Package ir provides the JSON value model shared by every WOQL package.
//
// WOQL documents are JSON-LD trees. Rather than passing map[string]any
// around, packages exchange IRValue trees: a sealed set of types with one
// canonical byte encoding (RFC 8785). ir imports nothing internal.
//
// Key constraints:
//   - Numbers keep their decimal text (IRNumber) or are integral (IRInt)
//   - Object key order never matters; MarshalCanonical sorts by UTF-16 units
//   - Strings are NFC normalized at the serialization boundary
package ir
