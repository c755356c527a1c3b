package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/knowdoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ knowdoc.RunService = (*RunService)(nil)

// RunService implements knowdoc.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores a run and its artifacts in a single transaction.
// A zero StartedAt or FinishedAt is set to the current time.
func (s *RunService) CreateRun(ctx context.Context, run *knowdoc.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	now := time.Now().UTC()
	if run.StartedAt.IsZero() {
		run.StartedAt = now
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = now
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, kind, source_path, output_dir, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, string(run.Kind), run.SourcePath, run.OutputDir,
		run.StartedAt.UTC().Format(time.RFC3339), run.FinishedAt.UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	for i, a := range run.Artifacts {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO artifacts (run_id, package, path, pages, bytes, hash, tokens, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, run.ID, string(a.Package), a.Path, a.Pages, a.Bytes, a.Hash, a.Tokens, i); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run and its artifacts by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*knowdoc.Run, error) {
	runs, err := s.findRuns(ctx, "id = ?", []any{id}, 0, 0)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, knowdoc.Errorf(knowdoc.ENOTFOUND, "run not found")
	}
	return runs[0], nil
}

// FindRuns retrieves runs matching the filter, most recent first.
func (s *RunService) FindRuns(ctx context.Context, filter knowdoc.RunFilter) ([]*knowdoc.Run, error) {
	where := "1=1"
	var args []any
	if filter.SourcePath != nil {
		where += " AND source_path = ?"
		args = append(args, *filter.SourcePath)
	}
	return s.findRuns(ctx, where, args, filter.Limit, filter.Offset)
}

func (s *RunService) findRuns(ctx context.Context, where string, args []any, limit, offset int) ([]*knowdoc.Run, error) {
	var query strings.Builder
	query.WriteString("SELECT id, kind, source_path, output_dir, started_at, finished_at FROM runs WHERE ")
	query.WriteString(where)
	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, limit, offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*knowdoc.Run{}
	for rows.Next() {
		var run knowdoc.Run
		var kind, startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &kind, &run.SourcePath, &run.OutputDir, &startedAt, &finishedAt); err != nil {
			return nil, err
		}
		run.Kind = knowdoc.SourceKind(kind)

		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// The pool holds a single connection; release it before loading artifacts.
	rows.Close()

	for _, run := range runs {
		if run.Artifacts, err = s.findArtifacts(ctx, run.ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (s *RunService) findArtifacts(ctx context.Context, runID string) ([]*knowdoc.Artifact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT package, path, pages, bytes, hash, tokens
		FROM artifacts
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	artifacts := []*knowdoc.Artifact{}
	for rows.Next() {
		var a knowdoc.Artifact
		var pkg string
		if err := rows.Scan(&pkg, &a.Path, &a.Pages, &a.Bytes, &a.Hash, &a.Tokens); err != nil {
			return nil, err
		}
		a.Package = knowdoc.PackageID(pkg)
		artifacts = append(artifacts, &a)
	}
	return artifacts, rows.Err()
}
