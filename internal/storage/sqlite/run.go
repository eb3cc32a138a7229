package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/slok/navcorpus/internal/model"
)

// SaveRun stores a run record.
func (r *Repository) SaveRun(ctx context.Context, run model.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO runs (id, command, started_at, finished_at, successes, skips, errors, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Command, run.StartedAt.Unix(), run.FinishedAt.Unix(),
		run.Successes, run.Skips, run.Errors, run.Detail,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("run %q: %w", run.ID, model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert run: %w", err)
	}

	return nil
}

// GetRun returns the run with the given id.
func (r *Repository) GetRun(ctx context.Context, id string) (*model.Run, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, command, started_at, finished_at, successes, skips, errors, detail
		FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %q: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not get run: %w", err)
	}

	return run, nil
}

// ListRuns returns every stored run, newest first.
func (r *Repository) ListRuns(ctx context.Context) ([]model.Run, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, command, started_at, finished_at, successes, skips, errors, detail
		FROM runs ORDER BY started_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("could not list runs: %w", err)
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate runs: %w", err)
	}

	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*model.Run, error) {
	var run model.Run
	var startedAt, finishedAt int64

	err := s.Scan(&run.ID, &run.Command, &startedAt, &finishedAt,
		&run.Successes, &run.Skips, &run.Errors, &run.Detail)
	if err != nil {
		return nil, err
	}

	run.StartedAt = time.Unix(startedAt, 0).UTC()
	run.FinishedAt = time.Unix(finishedAt, 0).UTC()

	return &run, nil
}
