package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gosimple/slug"

	"github.com/roach88/woql/internal/ir"
)

// Entry is one named query.
type Entry struct {
	Name      string      `json:"name"`
	ContentID string      `json:"content_id"`
	Document  ir.IRObject `json:"document"`
	Params    []string    `json:"params"`
	Revision  int64       `json:"revision"`
}

// Slug returns the catalog key for a display name.
func Slug(name string) string {
	return slug.Make(name)
}

// Save stores doc under name. Saving content identical to the stored entry
// leaves its revision unchanged.
func (c *Catalog) Save(ctx context.Context, name string, doc ir.IRObject, params []string) (Entry, error) {
	key := Slug(name)
	if key == "" {
		return Entry{}, fmt.Errorf("save %q: %w", name, ErrInvalidName)
	}

	document, err := ir.MarshalCanonical(doc)
	if err != nil {
		return Entry{}, fmt.Errorf("save %q: marshal document: %w", key, err)
	}
	contentID, err := ir.QueryID(doc)
	if err != nil {
		return Entry{}, fmt.Errorf("save %q: %w", key, err)
	}
	paramsJSON, err := marshalParams(params)
	if err != nil {
		return Entry{}, fmt.Errorf("save %q: %w", key, err)
	}

	// The WHERE clause skips the update, and so the revision bump, when
	// nothing changed.
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO named_queries (name, content_id, document, params, revision)
		VALUES (?, ?, ?, ?, 1)
		ON CONFLICT(name) DO UPDATE SET
			content_id = excluded.content_id,
			document   = excluded.document,
			params     = excluded.params,
			revision   = named_queries.revision + 1
		WHERE named_queries.content_id != excluded.content_id
		   OR named_queries.params != excluded.params
	`, key, contentID, string(document), paramsJSON)
	if err != nil {
		return Entry{}, fmt.Errorf("save %q: %w", key, err)
	}

	entry, err := c.Get(ctx, key)
	if err != nil {
		return Entry{}, err
	}
	c.logger.Info("named query saved",
		"name", entry.Name,
		"content_id", entry.ContentID,
		"revision", entry.Revision,
	)
	return entry, nil
}

// Get returns the entry stored under name. The name is slugified first, so
// the display name used with Save also works here.
func (c *Catalog) Get(ctx context.Context, name string) (Entry, error) {
	key := Slug(name)
	row := c.db.QueryRowContext(ctx, `
		SELECT name, content_id, document, params, revision
		FROM named_queries
		WHERE name = ?
	`, key)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("get %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get %q: %w", key, err)
	}
	return entry, nil
}

// List returns every entry ordered by name. It returns an empty slice, not
// nil, for an empty catalog.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT name, content_id, document, params, revision
		FROM named_queries
		ORDER BY name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list named queries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate named queries: %w", err)
	}
	return entries, nil
}

// Delete removes the entry stored under name.
func (c *Catalog) Delete(ctx context.Context, name string) error {
	key := Slug(name)
	result, err := c.db.ExecContext(ctx, `DELETE FROM named_queries WHERE name = ?`, key)
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	if n == 0 {
		return fmt.Errorf("delete %q: %w", key, ErrNotFound)
	}
	c.logger.Info("named query deleted", "name", key)
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		entry      Entry
		document   string
		paramsJSON string
	)
	if err := s.Scan(&entry.Name, &entry.ContentID, &document, &paramsJSON, &entry.Revision); err != nil {
		return Entry{}, err
	}

	doc, err := unmarshalDocument(document)
	if err != nil {
		return Entry{}, fmt.Errorf("entry %q: %w", entry.Name, err)
	}
	params, err := unmarshalParams(paramsJSON)
	if err != nil {
		return Entry{}, fmt.Errorf("entry %q: %w", entry.Name, err)
	}
	entry.Document = doc
	entry.Params = params
	return entry, nil
}
