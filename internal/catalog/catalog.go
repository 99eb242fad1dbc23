// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps a SQLite index of the papers held in the local
// cache. The cache directory stays authoritative; the catalog only records
// what was fetched and when so it can be listed without parsing sidecars.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper/internal/cache"
	"github.com/pdiddy/paper/pkg/types"
)

// dbFile is hidden so it never collides with a sidecar: filenames starting
// with a dot are rejected by the CLI and derived names start with a letter.
const dbFile = ".catalog.db"

// ErrNotFound is returned by Get when no record has the requested stem.
var ErrNotFound = errors.New("catalog record not found")

// Catalog manages the catalog database.
type Catalog struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the catalog at dir/.catalog.db. dir must exist.
func Open(dir string) (*Catalog, error) {
	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	c := &Catalog{db: db, now: time.Now}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			stem TEXT PRIMARY KEY,
			filename TEXT NOT NULL,
			identifier TEXT NOT NULL,
			title TEXT,
			authors TEXT,
			pdf_path TEXT NOT NULL,
			cached_at TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_identifier ON papers(identifier)`,
	}
	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record upserts the catalog row for a cached paper. The first-cached time
// is kept on update; metadata and the fetch time are replaced.
func (c *Catalog) Record(ctx context.Context, filename string, id types.Identifier, meta types.Metadata, pdfPath string) error {
	authorsJSON, err := json.Marshal(meta.Authors)
	if err != nil {
		return fmt.Errorf("marshaling authors: %w", err)
	}
	now := c.now().UTC().Format(time.RFC3339Nano)

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO papers (stem, filename, identifier, title, authors, pdf_path, cached_at, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(stem) DO UPDATE SET
			filename=excluded.filename, identifier=excluded.identifier,
			title=excluded.title, authors=excluded.authors,
			pdf_path=excluded.pdf_path, fetched_at=excluded.fetched_at`,
		cache.Stem(filename), filename, id.String(), meta.Title,
		string(authorsJSON), pdfPath, now, now,
	)
	if err != nil {
		return fmt.Errorf("upserting catalog record: %w", err)
	}
	return nil
}

// ListOptions filters List results.
type ListOptions struct {
	// Year restricts results to identifiers from that year.
	Year string

	// Query matches case-insensitively against title and authors.
	Query string
}

// List returns catalog records ordered by stem.
func (c *Catalog) List(ctx context.Context, opts ListOptions) ([]types.CatalogRecord, error) {
	var conditions []string
	var args []any

	if opts.Year != "" {
		conditions = append(conditions, "identifier LIKE ?")
		args = append(args, opts.Year+"/%")
	}
	if opts.Query != "" {
		conditions = append(conditions, "(title LIKE ? OR authors LIKE ?)")
		pattern := "%" + opts.Query + "%"
		args = append(args, pattern, pattern)
	}

	query := `SELECT stem, filename, identifier, title, authors, pdf_path, cached_at, fetched_at FROM papers`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY stem"

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var records []types.CatalogRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get returns the record for stem, or ErrNotFound.
func (c *Catalog) Get(ctx context.Context, stem string) (types.CatalogRecord, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT stem, filename, identifier, title, authors, pdf_path, cached_at, fetched_at
		 FROM papers WHERE stem = ?`, stem)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.CatalogRecord{}, fmt.Errorf("%w: %s", ErrNotFound, stem)
	}
	return rec, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (types.CatalogRecord, error) {
	var rec types.CatalogRecord
	var title, authorsJSON sql.NullString
	var cachedAt, fetchedAt string

	if err := s.Scan(&rec.Stem, &rec.Filename, &rec.Identifier, &title, &authorsJSON,
		&rec.PDFPath, &cachedAt, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, err
		}
		return rec, fmt.Errorf("scanning catalog record: %w", err)
	}

	rec.Title = title.String
	if authorsJSON.String != "" {
		if err := json.Unmarshal([]byte(authorsJSON.String), &rec.Authors); err != nil {
			return rec, fmt.Errorf("decoding authors for %s: %w", rec.Stem, err)
		}
	}
	rec.CachedAt, _ = time.Parse(time.RFC3339Nano, cachedAt)
	rec.FetchedAt, _ = time.Parse(time.RFC3339Nano, fetchedAt)
	return rec, nil
}
