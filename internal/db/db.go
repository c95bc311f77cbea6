// Package db is the sqlite run catalog: every sweep that is recorded gets a
// row in runs, one row per cutoff in frames and its input points in
// run_points.
package db

import (
	"database/sql"
	"embed"
	"fmt"
	"net/url"

	"github.com/banshee-data/tda.playground/internal/timeutil"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// pragmas are applied to every pooled connection through the DSN.
var pragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"synchronous(NORMAL)",
	"temp_store(MEMORY)",
	"foreign_keys(ON)",
}

// DB is the run catalog. It embeds the pooled connection so callers can
// close it or run ad hoc queries.
type DB struct {
	*sql.DB

	// Clock stamps recorded runs.
	Clock timeutil.Clock
}

// NewDB opens the catalog at path and applies all pending migrations.
func NewDB(path string) (*DB, error) {
	db, err := OpenDB(path)
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenDB opens the catalog at path without touching the schema.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &DB{DB: db, Clock: timeutil.RealClock{}}, nil
}

func dsn(path string) string {
	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	return "file:" + path + "?" + q.Encode()
}
