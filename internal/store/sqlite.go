// Package store persists a loaded universe into a SQLite index so other
// tools can query bodies and locations without re-parsing catalog files.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/LBV2012-26/Celestia/internal/solarsys"
)

// schema contains the DDL executed on first open. Using IF NOT EXISTS makes
// it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS bodies (
    path       TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    parent     TEXT NOT NULL,
    class      TEXT NOT NULL,
    radius     REAL NOT NULL,
    albedo     REAL NOT NULL,
    begin_time REAL,
    end_time   REAL,
    phases     INTEGER NOT NULL DEFAULT 0,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS locations (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    body_path  TEXT NOT NULL,
    name       TEXT NOT NULL,
    feature    TEXT NOT NULL,
    size       REAL NOT NULL,
    importance REAL NOT NULL,
    UNIQUE(body_path, name)
);

CREATE INDEX IF NOT EXISTS idx_bodies_class ON bodies(class);
CREATE INDEX IF NOT EXISTS idx_locations_body ON locations(body_path);
`

// BodyRow is one indexed body.
type BodyRow struct {
	Path      string
	Name      string
	Parent    string
	Class     string
	Radius    float64
	Albedo    float64
	BeginTime *float64 // nil when the timeline is open at that end
	EndTime   *float64
	Phases    int
}

// LocationRow is one indexed surface location.
type LocationRow struct {
	BodyPath   string
	Name       string
	Feature    string
	Size       float64
	Importance float64
}

// Index stores catalog query data in a local SQLite database in WAL mode.
type Index struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database at dbPath, enables WAL mode and
// busy timeout, and creates the schema tables if they do not exist.
func Open(ctx context.Context, dbPath string) (*Index, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	// Limit to one connection. SQLite only supports a single writer; using
	// one connection avoids SQLITE_BUSY contention between pooled
	// connections that each need their own PRAGMA setup. WAL mode still
	// benefits external readers and provides crash-safe writes.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set busy timeout: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &Index{db: db}, nil
}

// Close releases the database handle.
func (ix *Index) Close() error {
	if err := ix.db.Close(); err != nil {
		return fmt.Errorf("store: close: %w", err)
	}
	return nil
}

// WriteUniverse replaces the index contents with the bodies and locations
// of u. It returns the number of bodies written.
func (ix *Index) WriteUniverse(ctx context.Context, u *solarsys.Universe) (int, error) {
	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM bodies"); err != nil {
		return 0, fmt.Errorf("store: clear bodies: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM locations"); err != nil {
		return 0, fmt.Errorf("store: clear locations: %w", err)
	}

	n := 0
	for _, st := range u.Stars() {
		sys := u.SolarSystem(st)
		if sys == nil {
			continue
		}
		for _, b := range sys.Planets().Bodies() {
			written, err := writeBody(ctx, tx, st.Name, b)
			if err != nil {
				return 0, err
			}
			n += written
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit: %w", err)
	}
	return n, nil
}

func writeBody(ctx context.Context, tx *sql.Tx, parentPath string, b *solarsys.Body) (int, error) {
	path := parentPath + "/" + b.Name()

	var begin, end *float64
	if tl := b.Timeline(); tl != nil {
		if t := tl.StartTime(); !math.IsInf(t, -1) {
			begin = &t
		}
		if t := tl.EndTime(); !math.IsInf(t, 1) {
			end = &t
		}
	}
	phases := 0
	if tl := b.Timeline(); tl != nil {
		phases = tl.PhaseCount()
	}

	const q = `
		INSERT INTO bodies (path, name, parent, class, radius, albedo, begin_time, end_time, phases, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET
			name = excluded.name, parent = excluded.parent, class = excluded.class,
			radius = excluded.radius, albedo = excluded.albedo,
			begin_time = excluded.begin_time, end_time = excluded.end_time,
			phases = excluded.phases, updated_at = CURRENT_TIMESTAMP`
	if _, err := tx.ExecContext(ctx, q, path, b.Name(), parentPath, b.Classification().String(),
		b.Radius(), b.Albedo(), begin, end, phases); err != nil {
		return 0, fmt.Errorf("store: write body %q: %w", path, err)
	}

	for _, loc := range b.Locations() {
		const lq = `
			INSERT INTO locations (body_path, name, feature, size, importance)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(body_path, name) DO UPDATE SET
				feature = excluded.feature, size = excluded.size, importance = excluded.importance`
		if _, err := tx.ExecContext(ctx, lq, path, loc.Name(), loc.FeatureType().String(),
			loc.Size(), loc.Importance()); err != nil {
			return 0, fmt.Errorf("store: write location %q of %q: %w", loc.Name(), path, err)
		}
	}

	n := 1
	if sats := b.Satellites(); sats != nil {
		for _, sat := range sats.Bodies() {
			written, err := writeBody(ctx, tx, path, sat)
			if err != nil {
				return 0, err
			}
			n += written
		}
	}
	return n, nil
}

// Bodies returns indexed bodies, optionally filtered by classification
// name, ordered by path.
func (ix *Index) Bodies(ctx context.Context, class string) ([]BodyRow, error) {
	q := "SELECT path, name, parent, class, radius, albedo, begin_time, end_time, phases FROM bodies"
	args := []any{}
	if class != "" {
		q += " WHERE class = ? COLLATE NOCASE"
		args = append(args, class)
	}
	q += " ORDER BY path"

	rows, err := ix.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query bodies: %w", err)
	}
	defer rows.Close()

	var out []BodyRow
	for rows.Next() {
		var r BodyRow
		if err := rows.Scan(&r.Path, &r.Name, &r.Parent, &r.Class, &r.Radius, &r.Albedo,
			&r.BeginTime, &r.EndTime, &r.Phases); err != nil {
			return nil, fmt.Errorf("store: scan body: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate bodies: %w", err)
	}
	return out, nil
}

// Locations returns the indexed locations of one body, ordered by name.
func (ix *Index) Locations(ctx context.Context, bodyPath string) ([]LocationRow, error) {
	const q = `
		SELECT body_path, name, feature, size, importance
		FROM locations WHERE body_path = ? ORDER BY name`
	rows, err := ix.db.QueryContext(ctx, q, bodyPath)
	if err != nil {
		return nil, fmt.Errorf("store: query locations: %w", err)
	}
	defer rows.Close()

	var out []LocationRow
	for rows.Next() {
		var r LocationRow
		if err := rows.Scan(&r.BodyPath, &r.Name, &r.Feature, &r.Size, &r.Importance); err != nil {
			return nil, fmt.Errorf("store: scan location: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate locations: %w", err)
	}
	return out, nil
}
