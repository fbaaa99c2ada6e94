// Package importer implements the generic bulk-import engine shared by all
// catalog domains. It owns the per-row pipeline (normalize, validate, match,
// create-or-merge, persist), the natural-key index, the field-level merge
// rules, and the structured report consumed by the preview UI.
//
// This package has no knowledge of any concrete catalog domain. Each domain
// (vehicle variants, tire products) plugs in through a Definition registered
// at init time, providing its column schema and a Pipeline implementation.
package importer

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// RawRow is one spreadsheet row as handed back by the parser: cell values
// keyed by lower-cased column label, plus the 1-based line number in the
// source file. Rows are never mutated by the pipeline.
type RawRow struct {
	Line  int
	Cells map[string]string
}

// Get returns the cleaned cell value for a column label, or "" if the
// column is absent. Lookup is case-insensitive.
func (r RawRow) Get(column string) string {
	return CleanCell(r.Cells[lower(column)])
}

// Status is the terminal state of one processed row.
type Status string

const (
	StatusCreated Status = "created"
	StatusUpdated Status = "updated"
	StatusSkipped Status = "skipped"
)

// RowOutcome describes the terminal state of a single row.
type RowOutcome struct {
	Line    int    `json:"line"`
	Key     string `json:"key,omitempty"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Report is the result of one import run, in input order. Created+Updated is
// the importable quantity a caller may gate a commit step on.
type Report struct {
	Domain    string        `json:"domain"`
	DryRun    bool          `json:"dryRun,omitempty"`
	TotalRows int           `json:"totalRows"`
	Created   int           `json:"created"`
	Updated   int           `json:"updated"`
	Skipped   int           `json:"skipped"`
	Rows      []RowOutcome  `json:"rows"`
	Duration  time.Duration `json:"-"`
}

// Importable returns the number of rows that produced or refreshed an entity.
func (r *Report) Importable() int {
	return r.Created + r.Updated
}

func (r *Report) add(o RowOutcome) {
	switch o.Status {
	case StatusCreated:
		r.Created++
	case StatusUpdated:
		r.Updated++
	case StatusSkipped:
		r.Skipped++
	}
	r.Rows = append(r.Rows, o)
}

// Pipeline is the per-domain plug-in driven by the Runner. Implementations
// are single-writer: Seed rebuilds the in-memory indexes from a full catalog
// snapshot, and Create/Merge mutate them immediately so that later rows in
// the same run observe entities created by earlier rows.
//
// Drafts and entities are opaque to the Runner; each domain works with its
// own concrete types behind the any values.
type Pipeline interface {
	// Columns is the declarative column schema for this domain.
	Columns() []FieldSpec

	// Normalize converts a raw row into a draft. It never fails: cells that
	// cannot be coerced are left absent and surface at validation instead.
	Normalize(row RawRow) any

	// Validate checks the draft and returns the first failing rule, or nil.
	Validate(draft any) error

	// Key returns the draft's normalized natural key.
	Key(draft any) string

	// Seed reads the full catalog snapshot and builds the natural-key
	// indexes. A duplicate key in the snapshot is an error.
	Seed(ctx context.Context) error

	// Match looks up an existing entity by the draft's natural key.
	Match(draft any) (any, bool)

	// Create resolves identity sub-entities (creating them on demand),
	// persists a new entity, and records it in the indexes.
	Create(ctx context.Context, draft any) (any, error)

	// Merge combines an existing entity with the draft per the domain's
	// field-level rules, persists the result, and refreshes the indexes.
	Merge(ctx context.Context, existing, draft any) (any, error)
}
