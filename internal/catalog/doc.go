// Package catalog stores named WOQL queries in SQLite.
//
// Each entry is keyed by a slug of its name and holds the canonical JSON of
// the document, its content id from ir.QueryID, and the parameter names a
// caller must bind. Saving the same content again is a no-op; saving new
// content under an existing name replaces it and bumps the revision.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Listing is ordered by name with COLLATE BINARY so output is stable.
package catalog
