package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/tda.playground/internal/tda/adjacency"
	"github.com/banshee-data/tda.playground/internal/tda/sweep"
)

// ErrRunNotFound is returned when a run id is not in the catalog.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded sweep.
type Run struct {
	ID         string
	Name       string
	Mode       string
	PointCount int
	Cutoffs    sweep.RangeSpec
	CreatedAt  time.Time
}

func (r *Run) String() string {
	return fmt.Sprintf("%s %-20s %-8s points=%d cutoffs=%g:%g:%g %s",
		r.ID, r.Name, r.Mode, r.PointCount,
		r.Cutoffs.Min, r.Cutoffs.Lim, r.Cutoffs.Step,
		r.CreatedAt.Format(time.RFC3339))
}

// FrameRow is the stored size of the complex at one cutoff.
type FrameRow struct {
	RunID      string
	FrameIdx   int
	Cutoff     float64
	Threshold  float64
	Edges      int
	Triangles  int
	Components int
}

// RecordRun stores res under a new run id in a single transaction and
// returns the id.
func (db *DB) RecordRun(ctx context.Context, name string, cutoffs sweep.RangeSpec, res *sweep.Result) (string, error) {
	if res == nil {
		return "", fmt.Errorf("nil sweep result")
	}
	runID := uuid.NewString()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (run_id, name, mode, point_count, cutoff_min, cutoff_lim, cutoff_step, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, name, string(res.Mode), len(res.Points),
		cutoffs.Min, cutoffs.Lim, cutoffs.Step, db.Clock.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	pointStmt, err := tx.PrepareContext(ctx, `INSERT INTO run_points (run_id, point_idx, x, y) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare points: %w", err)
	}
	defer pointStmt.Close()
	for i, p := range res.Points {
		if _, err := pointStmt.ExecContext(ctx, runID, i, p.X, p.Y); err != nil {
			return "", fmt.Errorf("insert point %d: %w", i, err)
		}
	}

	frameStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO frames (run_id, frame_idx, cutoff, threshold, edges, triangles, components)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare frames: %w", err)
	}
	defer frameStmt.Close()
	for i, f := range res.Summary().Frames {
		if _, err := frameStmt.ExecContext(ctx, runID, i, f.Cutoff, f.Threshold, f.Edges, f.Triangles, f.Components); err != nil {
			return "", fmt.Errorf("insert frame %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

// ListRuns returns all recorded runs, newest first.
func (db *DB) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT run_id, name, mode, point_count, cutoff_min, cutoff_lim, cutoff_step, created_at
		FROM runs
		ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns the run with id, or ErrRunNotFound.
func (db *DB) GetRun(ctx context.Context, id string) (*Run, error) {
	row := db.QueryRowContext(ctx, `
		SELECT run_id, name, mode, point_count, cutoff_min, cutoff_lim, cutoff_step, created_at
		FROM runs
		WHERE run_id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// FramesForRun returns the frames of run id in cutoff order.
func (db *DB) FramesForRun(ctx context.Context, id string) ([]FrameRow, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT run_id, frame_idx, cutoff, threshold, edges, triangles, components
		FROM frames
		WHERE run_id = ?
		ORDER BY frame_idx`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var frames []FrameRow
	for rows.Next() {
		var f FrameRow
		if err := rows.Scan(&f.RunID, &f.FrameIdx, &f.Cutoff, &f.Threshold, &f.Edges, &f.Triangles, &f.Components); err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	return frames, rows.Err()
}

// PointsForRun returns the input points of run id in index order.
func (db *DB) PointsForRun(ctx context.Context, id string) ([]adjacency.Point, error) {
	rows, err := db.QueryContext(ctx, `SELECT x, y FROM run_points WHERE run_id = ? ORDER BY point_idx`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []adjacency.Point
	for rows.Next() {
		var p adjacency.Point
		if err := rows.Scan(&p.X, &p.Y); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// DeleteRun removes run id and its frames and points.
func (db *DB) DeleteRun(ctx context.Context, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM runs WHERE run_id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var r Run
	var created int64
	err := s.Scan(&r.ID, &r.Name, &r.Mode, &r.PointCount,
		&r.Cutoffs.Min, &r.Cutoffs.Lim, &r.Cutoffs.Step, &created)
	if err != nil {
		return Run{}, err
	}
	r.CreatedAt = time.Unix(created, 0).UTC()
	return r, nil
}
