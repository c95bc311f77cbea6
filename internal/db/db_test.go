package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/tda.playground/internal/monitoring"
	"github.com/banshee-data/tda.playground/internal/tda/adjacency"
	"github.com/banshee-data/tda.playground/internal/tda/sweep"
	"github.com/banshee-data/tda.playground/internal/timeutil"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	quietLogs(t)

	db, err := NewDB(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func quietLogs(t *testing.T) {
	t.Helper()
	orig := monitoring.Logf
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.SetLogger(orig) })
}

func testResult(t *testing.T) *sweep.Result {
	t.Helper()
	points := []adjacency.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 5, Y: 5}}
	res, err := sweep.Run(context.Background(), points, []float64{0.25, 0.75}, sweep.ModeComplex)
	if err != nil {
		t.Fatalf("sweep.Run failed: %v", err)
	}
	return res
}

func TestPragmasApplied(t *testing.T) {
	db := setupTestDB(t)

	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("Failed to query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("Expected journal_mode=wal, got %s", journalMode)
	}

	var busyTimeout int
	if err := db.QueryRow("PRAGMA busy_timeout").Scan(&busyTimeout); err != nil {
		t.Fatalf("Failed to query busy_timeout: %v", err)
	}
	if busyTimeout != 5000 {
		t.Errorf("Expected busy_timeout=5000, got %d", busyTimeout)
	}

	var foreignKeys int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys); err != nil {
		t.Fatalf("Failed to query foreign_keys: %v", err)
	}
	if foreignKeys != 1 {
		t.Errorf("Expected foreign_keys=1, got %d", foreignKeys)
	}
}

func TestMigrateVersion(t *testing.T) {
	db := setupTestDB(t)

	version, dirty, err := db.MigrateVersion()
	if err != nil {
		t.Fatalf("MigrateVersion failed: %v", err)
	}
	if version != 2 || dirty {
		t.Errorf("Expected version 2 clean, got %d dirty=%v", version, dirty)
	}

	// Up again is a no-op.
	if err := db.MigrateUp(); err != nil {
		t.Fatalf("second MigrateUp failed: %v", err)
	}

	if err := db.MigrateDown(); err != nil {
		t.Fatalf("MigrateDown failed: %v", err)
	}
	version, _, err = db.MigrateVersion()
	if err != nil {
		t.Fatalf("MigrateVersion failed: %v", err)
	}
	if version != 1 {
		t.Errorf("Expected version 1 after rollback, got %d", version)
	}
}

func TestOpenDB_FreshSchema(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "fresh.db"))
	if err != nil {
		t.Fatalf("OpenDB failed: %v", err)
	}
	defer db.Close()
	quietLogs(t)

	version, dirty, err := db.MigrateVersion()
	if err != nil {
		t.Fatalf("MigrateVersion failed: %v", err)
	}
	if version != 0 || dirty {
		t.Errorf("Expected version 0 clean, got %d dirty=%v", version, dirty)
	}
}

func TestRecordRun(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	res := testResult(t)
	spec := sweep.RangeSpec{Min: 0.25, Lim: 1.0, Step: 0.5}

	id, err := db.RecordRun(ctx, "triangle", spec, res)
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("Expected uuid run id, got %q", id)
	}

	run, err := db.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if run.Name != "triangle" || run.Mode != "complex" || run.PointCount != 4 {
		t.Errorf("unexpected run: %+v", run)
	}
	if diff := cmp.Diff(spec, run.Cutoffs); diff != "" {
		t.Errorf("cutoffs mismatch (-want +got):\n%s", diff)
	}

	frames, err := db.FramesForRun(ctx, id)
	if err != nil {
		t.Fatalf("FramesForRun failed: %v", err)
	}
	want := []FrameRow{
		{RunID: id, FrameIdx: 0, Cutoff: 0.25, Threshold: 0.25, Edges: 0, Triangles: 0, Components: 4},
		{RunID: id, FrameIdx: 1, Cutoff: 0.75, Threshold: 0.75, Edges: 3, Triangles: 1, Components: 2},
	}
	if diff := cmp.Diff(want, frames); diff != "" {
		t.Errorf("frames mismatch (-want +got):\n%s", diff)
	}

	points, err := db.PointsForRun(ctx, id)
	if err != nil {
		t.Fatalf("PointsForRun failed: %v", err)
	}
	if diff := cmp.Diff(res.Points, points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordRun_Nil(t *testing.T) {
	db := setupTestDB(t)
	if _, err := db.RecordRun(context.Background(), "x", sweep.RangeSpec{}, nil); err == nil {
		t.Fatal("expected error for nil result")
	}
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	runs, err := db.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("Expected empty catalog, got %d runs", len(runs))
	}

	first, err := db.RecordRun(ctx, "first", sweep.RangeSpec{}, testResult(t))
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	second, err := db.RecordRun(ctx, "second", sweep.RangeSpec{}, testResult(t))
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	runs, err = db.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	// Same-second inserts fall back to insertion order, newest first.
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("unexpected order: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestListRuns_OrderedByCreation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := timeutil.NewMockClock(start)
	db.Clock = clock

	later, err := db.RecordRun(ctx, "later", sweep.RangeSpec{}, testResult(t))
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	// Backdate the second insert so insertion order and time disagree.
	clock.Set(start.Add(-time.Hour))
	earlier, err := db.RecordRun(ctx, "earlier", sweep.RangeSpec{}, testResult(t))
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}

	runs, err := db.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != later || runs[1].ID != earlier {
		t.Fatalf("unexpected runs: %+v", runs)
	}
	if !runs[0].CreatedAt.Equal(start) {
		t.Errorf("CreatedAt = %v, want %v", runs[0].CreatedAt, start)
	}
	if !runs[1].CreatedAt.Equal(start.Add(-time.Hour)) {
		t.Errorf("CreatedAt = %v, want %v", runs[1].CreatedAt, start.Add(-time.Hour))
	}
}

func TestDeleteRun(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id, err := db.RecordRun(ctx, "doomed", sweep.RangeSpec{}, testResult(t))
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if err := db.DeleteRun(ctx, id); err != nil {
		t.Fatalf("DeleteRun failed: %v", err)
	}

	frames, err := db.FramesForRun(ctx, id)
	if err != nil {
		t.Fatalf("FramesForRun failed: %v", err)
	}
	if len(frames) != 0 {
		t.Errorf("Expected frames to cascade, got %d", len(frames))
	}

	if _, err := db.GetRun(ctx, id); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Expected ErrRunNotFound, got %v", err)
	}
	if err := db.DeleteRun(ctx, id); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Expected ErrRunNotFound on second delete, got %v", err)
	}
}
