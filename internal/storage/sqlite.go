// Package storage keeps a history of batch runs in SQLite.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"site-classifier/internal/models"
	"site-classifier/internal/taxonomy"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  DATETIME NOT NULL,
	finished_at DATETIME NOT NULL,
	total       INTEGER NOT NULL,
	errored     INTEGER NOT NULL,
	relevant    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS site_results (
	run_id    TEXT NOT NULL REFERENCES runs(id),
	position  INTEGER NOT NULL,
	website   TEXT NOT NULL,
	sector    TEXT NOT NULL,
	category  TEXT NOT NULL,
	label     TEXT NOT NULL,
	PRIMARY KEY (run_id, position, category)
);
CREATE INDEX IF NOT EXISTS idx_site_results_website ON site_results(website);
`

// relevantKey is the pseudo-category row holding the Relevant column.
const relevantKey = "Relevant"

type Store struct {
	db  *sqlx.DB
	reg *taxonomy.Registry
}

// Run is a stored batch header.
type Run struct {
	ID         string    `db:"id"`
	StartedAt  time.Time `db:"started_at"`
	FinishedAt time.Time `db:"finished_at"`
	Total      int       `db:"total"`
	Errored    int       `db:"errored"`
	Relevant   int       `db:"relevant"`
}

// Open connects to the database at path and creates the schema if needed.
func Open(path string, reg *taxonomy.Registry) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, reg: reg}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// SaveBatch stores batch under a new run id in one transaction.
func (s *Store) SaveBatch(ctx context.Context, startedAt, finishedAt time.Time, batch models.BatchResult) (string, error) {
	id := uuid.NewString()
	sum := batch.Summary()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.NamedExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, total, errored, relevant)
		 VALUES (:id, :started_at, :finished_at, :total, :errored, :relevant)`,
		Run{ID: id, StartedAt: startedAt.UTC(), FinishedAt: finishedAt.UTC(),
			Total: sum.Total, Errored: sum.Errored, Relevant: sum.Relevant})
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx,
		`INSERT INTO site_results (run_id, position, website, sector, category, label)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i, r := range batch {
		for _, c := range s.reg.Categories() {
			if _, err := stmt.ExecContext(ctx, id, i, r.Website, string(r.Sector), string(c), string(r.Label(c))); err != nil {
				return "", fmt.Errorf("insert %s/%s: %w", r.Website, c, err)
			}
		}
		if _, err := stmt.ExecContext(ctx, id, i, r.Website, string(r.Sector), relevantKey, string(r.Relevant)); err != nil {
			return "", fmt.Errorf("insert %s relevance: %w", r.Website, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// Runs lists stored runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	var runs []Run
	err := s.db.SelectContext(ctx, &runs, `SELECT id, started_at, finished_at, total, errored, relevant FROM runs ORDER BY started_at DESC`)
	return runs, err
}

type resultRow struct {
	Position int    `db:"position"`
	Website  string `db:"website"`
	Sector   string `db:"sector"`
	Category string `db:"category"`
	Label    string `db:"label"`
}

// LoadBatch rebuilds the ordered batch stored under runID.
func (s *Store) LoadBatch(ctx context.Context, runID string) (models.BatchResult, error) {
	var rows []resultRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT position, website, sector, category, label FROM site_results WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("select results: %w", err)
	}

	var out models.BatchResult
	for _, row := range rows {
		for len(out) <= row.Position {
			out = append(out, models.SiteResult{Labels: map[taxonomy.Category]models.Label{}})
		}
		r := &out[row.Position]
		r.Website = row.Website
		r.Sector = models.Sector(row.Sector)
		if row.Category == relevantKey {
			r.Relevant = models.Label(row.Label)
			continue
		}
		r.Labels[taxonomy.Category(row.Category)] = models.Label(row.Label)
	}
	return out, nil
}
