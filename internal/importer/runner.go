package importer

// runner.go is the import coordinator: the only component aware of the full
// pipeline order. Rows are processed strictly in input order because later
// rows may depend on entities created by earlier rows within the same run.
//
// Row-level failures (validation, persistence) are recorded as skipped
// outcomes and never abort the run. Only a failed index seed is fatal: it
// happens before any row is touched and yields no report.

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Runner drives the per-row pipeline for one domain and accumulates the
// report. A Runner is used for a single run at a time; the run lock
// guarantees no two runs share a pipeline's indexes.
type Runner struct {
	domain   string
	pipeline Pipeline
	log      *slog.Logger
}

// NewRunner creates a coordinator for the given domain pipeline.
func NewRunner(domain string, p Pipeline, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{domain: domain, pipeline: p, log: log}
}

// Run imports the rows, persisting creations and merges as it goes.
// There is no separate commit phase: the same pass that produces the report
// performs the writes.
//
// A cancelled context stops the run between rows and returns the partial
// report alongside the context error. Entities already persisted remain;
// there is no rollback.
func (r *Runner) Run(ctx context.Context, rows []RawRow) (*Report, error) {
	return r.run(ctx, rows, false)
}

// Preview performs a dry run: normalize, validate and match only, reporting
// the outcome each row would have. Nothing is persisted and the backing
// store is only read once, for the index seed.
func (r *Runner) Preview(ctx context.Context, rows []RawRow) (*Report, error) {
	return r.run(ctx, rows, true)
}

func (r *Runner) run(ctx context.Context, rows []RawRow, dry bool) (*Report, error) {
	start := time.Now()

	if err := r.pipeline.Seed(ctx); err != nil {
		return nil, fmt.Errorf("seed %s index: %w", r.domain, err)
	}

	report := &Report{
		Domain:    r.domain,
		DryRun:    dry,
		TotalRows: len(rows),
	}

	// Keys a dry run would have created, so duplicate new rows within the
	// batch still show up as updates of each other.
	var planned map[string]bool
	if dry {
		planned = make(map[string]bool)
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(start)
			return report, err
		}

		draft := r.pipeline.Normalize(row)
		key := r.pipeline.Key(draft)

		if err := r.pipeline.Validate(draft); err != nil {
			report.add(RowOutcome{Line: row.Line, Key: key, Status: StatusSkipped, Message: err.Error()})
			r.log.Debug("row skipped", "domain", r.domain, "line", row.Line, "reason", err.Error())
			continue
		}

		existing, matched := r.pipeline.Match(draft)

		if dry {
			if matched || planned[key] {
				report.add(RowOutcome{Line: row.Line, Key: key, Status: StatusUpdated})
			} else {
				planned[key] = true
				report.add(RowOutcome{Line: row.Line, Key: key, Status: StatusCreated})
			}
			continue
		}

		if !matched {
			if _, err := r.pipeline.Create(ctx, draft); err != nil {
				report.add(RowOutcome{Line: row.Line, Key: key, Status: StatusSkipped, Message: err.Error()})
				r.log.Warn("create failed", "domain", r.domain, "line", row.Line, "error", err)
				continue
			}
			report.add(RowOutcome{Line: row.Line, Key: key, Status: StatusCreated})
			continue
		}

		if _, err := r.pipeline.Merge(ctx, existing, draft); err != nil {
			report.add(RowOutcome{Line: row.Line, Key: key, Status: StatusSkipped, Message: err.Error()})
			r.log.Warn("merge failed", "domain", r.domain, "line", row.Line, "error", err)
			continue
		}
		report.add(RowOutcome{Line: row.Line, Key: key, Status: StatusUpdated})
	}

	report.Duration = time.Since(start)

	r.log.Info("import run finished",
		"domain", r.domain,
		"dry_run", dry,
		"total", report.TotalRows,
		"created", report.Created,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"duration_ms", report.Duration.Milliseconds(),
	)

	return report, nil
}
