package buildstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (creating if needed) the history database at path.
// Use ":memory:" for an in-memory database.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// An in-memory database lives as long as its connection.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		started INTEGER NOT NULL,
		finished INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		pages INTEGER NOT NULL,
		docs_hash TEXT NOT NULL,
		report BLOB
	);
	CREATE TABLE IF NOT EXISTS pages (
		build_id TEXT NOT NULL,
		route TEXT NOT NULL,
		source TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		PRIMARY KEY (build_id, route)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores a build and its pages in one transaction.
func (s *SQLiteStore) Record(ctx context.Context, b Build, pages []Page) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO builds (id, started, finished, outcome, pages, docs_hash, report) VALUES (?, ?, ?, ?, ?, ?, ?)",
		b.ID, b.Start.UnixMilli(), b.End.UnixMilli(), b.Outcome, b.Pages, b.DocsHash, b.Report,
	)
	if err != nil {
		return fmt.Errorf("insert build: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO pages (build_id, route, source, fingerprint) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare page insert: %w", err)
	}
	defer stmt.Close()
	for _, p := range pages {
		if _, err := stmt.ExecContext(ctx, b.ID, p.Route, p.Source, p.Fingerprint); err != nil {
			return fmt.Errorf("insert page %s: %w", p.Route, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit build: %w", err)
	}
	return nil
}

// LastPublished returns the most recent build whose output was published.
func (s *SQLiteStore) LastPublished(ctx context.Context) (*Build, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, started, finished, outcome, pages, docs_hash, report FROM builds WHERE outcome IN (?, ?) ORDER BY seq DESC LIMIT 1",
		OutcomeSuccess, OutcomeWarning,
	)
	b, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoBuilds
	}
	if err != nil {
		return nil, fmt.Errorf("query last build: %w", err)
	}
	return b, nil
}

// List returns up to limit builds, newest first. A limit <= 0 lists all.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Build, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, started, finished, outcome, pages, docs_hash, report FROM builds ORDER BY seq DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		builds = append(builds, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return builds, nil
}

// Pages returns the pages of a build keyed by route.
func (s *SQLiteStore) Pages(ctx context.Context, buildID string) (map[string]Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT route, source, fingerprint FROM pages WHERE build_id = ?",
		buildID,
	)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	defer rows.Close()

	pages := map[string]Page{}
	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.Route, &p.Source, &p.Fingerprint); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages[p.Route] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return pages, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBuild(row scanner) (*Build, error) {
	var (
		b                 Build
		started, finished int64
	)
	if err := row.Scan(&b.ID, &started, &finished, &b.Outcome, &b.Pages, &b.DocsHash, &b.Report); err != nil {
		return nil, err
	}
	b.Start = time.UnixMilli(started)
	b.End = time.UnixMilli(finished)
	return &b, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// IsNoBuilds reports whether err means the history is empty.
func IsNoBuilds(err error) bool {
	return errors.Is(err, ErrNoBuilds)
}
