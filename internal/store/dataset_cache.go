// Package store caches the three dataset tables in a SQLite file so repeated
// sessions can skip parsing the text tables.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rydscheme/internal/dataset"

	_ "modernc.org/sqlite"
)

// ErrEmpty is returned by Load when nothing has been imported yet.
var ErrEmpty = errors.New("dataset cache is empty; run `rydscheme import` first")

type Store struct {
	Path string
}

// Info describes the last import.
type Info struct {
	Path        string `json:"path"`
	Source      string `json:"source"`
	ImportedAt  string `json:"importedAt"`
	Levels      int    `json:"levels"`
	Absorption  int    `json:"absorption"`
	Spontaneous int    `json:"spontaneous"`
}

func (s Store) open(ctx context.Context) (*sql.DB, error) {
	if strings.TrimSpace(s.Path) == "" {
		return nil, errors.New("no sqlite path configured")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS levels (
			seq INTEGER PRIMARY KEY,
			n INTEGER NOT NULL,
			l INTEGER NOT NULL,
			j REAL NOT NULL,
			energy REAL NOT NULL,
			lifetime REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_levels_key ON levels(n, l, j);`,
		`CREATE TABLE IF NOT EXISTS absorption (
			seq INTEGER PRIMARY KEY,
			n1 INTEGER NOT NULL, l1 INTEGER NOT NULL, j1 REAL NOT NULL, mj1 REAL NOT NULL,
			n2 INTEGER NOT NULL, l2 INTEGER NOT NULL, j2 REAL NOT NULL, mj2 REAL NOT NULL,
			frequency REAL NOT NULL,
			wavelength REAL NOT NULL,
			dipole REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS spontaneous (
			seq INTEGER PRIMARY KEY,
			n_upper INTEGER NOT NULL, l_upper INTEGER NOT NULL, j_upper REAL NOT NULL,
			n_lower INTEGER NOT NULL, l_lower INTEGER NOT NULL, j_lower REAL NOT NULL,
			frequency REAL NOT NULL,
			wavelength REAL NOT NULL,
			rate REAL NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// Import replaces the cached tables with t. Rows are stored as read, before
// normalization, so Load followed by dataset.New behaves like loading the
// text files.
func (s Store) Import(ctx context.Context, t dataset.Tables, source string) (Info, error) {
	db, err := s.open(ctx)
	if err != nil {
		return Info{}, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Info{}, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, tbl := range []string{"levels", "absorption", "spontaneous"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+tbl); err != nil {
			return Info{}, err
		}
	}

	if err := insertRows(ctx, tx,
		`INSERT INTO levels(seq, n, l, j, energy, lifetime) VALUES(?, ?, ?, ?, ?, ?)`,
		len(t.Levels), func(i int) []any {
			r := t.Levels[i]
			return []any{i, r.N, r.L, r.J, r.Energy, r.Lifetime}
		}); err != nil {
		return Info{}, fmt.Errorf("import levels: %w", err)
	}
	if err := insertRows(ctx, tx,
		`INSERT INTO absorption(seq, n1, l1, j1, mj1, n2, l2, j2, mj2, frequency, wavelength, dipole) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		len(t.Absorption), func(i int) []any {
			r := t.Absorption[i]
			return []any{i, r.Lower.N, r.Lower.L, r.Lower.J, r.Lower.MJ, r.Upper.N, r.Upper.L, r.Upper.J, r.Upper.MJ, r.Frequency, r.Wavelength, r.Dipole}
		}); err != nil {
		return Info{}, fmt.Errorf("import absorption: %w", err)
	}
	if err := insertRows(ctx, tx,
		`INSERT INTO spontaneous(seq, n_upper, l_upper, j_upper, n_lower, l_lower, j_lower, frequency, wavelength, rate) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		len(t.Spontaneous), func(i int) []any {
			r := t.Spontaneous[i]
			return []any{i, r.Upper.N, r.Upper.L, r.Upper.J, r.Lower.N, r.Lower.L, r.Lower.J, r.Frequency, r.Wavelength, r.Rate}
		}); err != nil {
		return Info{}, fmt.Errorf("import spontaneous: %w", err)
	}

	info := Info{
		Path:        s.Path,
		Source:      source,
		ImportedAt:  time.Now().UTC().Format(time.RFC3339),
		Levels:      len(t.Levels),
		Absorption:  len(t.Absorption),
		Spontaneous: len(t.Spontaneous),
	}
	for k, v := range map[string]string{"source": info.Source, "imported_at": info.ImportedAt} {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`, k, v); err != nil {
			return Info{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return Info{}, err
	}
	return info, nil
}

func insertRows(ctx context.Context, tx *sql.Tx, stmt string, n int, row func(int) []any) error {
	ps, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		return err
	}
	defer ps.Close()
	for i := 0; i < n; i++ {
		if _, err := ps.ExecContext(ctx, row(i)...); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the cached tables in their original row order.
func (s Store) Load(ctx context.Context) (dataset.Tables, error) {
	db, err := s.open(ctx)
	if err != nil {
		return dataset.Tables{}, err
	}
	defer db.Close()

	var t dataset.Tables
	err = scanAll(ctx, db, `SELECT n, l, j, energy, lifetime FROM levels ORDER BY seq`, func(rs *sql.Rows) error {
		var r dataset.Level
		if err := rs.Scan(&r.N, &r.L, &r.J, &r.Energy, &r.Lifetime); err != nil {
			return err
		}
		t.Levels = append(t.Levels, r)
		return nil
	})
	if err != nil {
		return dataset.Tables{}, fmt.Errorf("load levels: %w", err)
	}
	if len(t.Levels) == 0 {
		return dataset.Tables{}, ErrEmpty
	}

	err = scanAll(ctx, db, `SELECT n1, l1, j1, mj1, n2, l2, j2, mj2, frequency, wavelength, dipole FROM absorption ORDER BY seq`, func(rs *sql.Rows) error {
		var r dataset.Absorption
		if err := rs.Scan(&r.Lower.N, &r.Lower.L, &r.Lower.J, &r.Lower.MJ, &r.Upper.N, &r.Upper.L, &r.Upper.J, &r.Upper.MJ, &r.Frequency, &r.Wavelength, &r.Dipole); err != nil {
			return err
		}
		t.Absorption = append(t.Absorption, r)
		return nil
	})
	if err != nil {
		return dataset.Tables{}, fmt.Errorf("load absorption: %w", err)
	}

	err = scanAll(ctx, db, `SELECT n_upper, l_upper, j_upper, n_lower, l_lower, j_lower, frequency, wavelength, rate FROM spontaneous ORDER BY seq`, func(rs *sql.Rows) error {
		var r dataset.Spontaneous
		if err := rs.Scan(&r.Upper.N, &r.Upper.L, &r.Upper.J, &r.Lower.N, &r.Lower.L, &r.Lower.J, &r.Frequency, &r.Wavelength, &r.Rate); err != nil {
			return err
		}
		t.Spontaneous = append(t.Spontaneous, r)
		return nil
	})
	if err != nil {
		return dataset.Tables{}, fmt.Errorf("load spontaneous: %w", err)
	}
	return t, nil
}

// Info reports what the cache currently holds.
func (s Store) Info(ctx context.Context) (Info, error) {
	db, err := s.open(ctx)
	if err != nil {
		return Info{}, err
	}
	defer db.Close()

	info := Info{Path: s.Path}
	for _, m := range []struct {
		key string
		dst *string
	}{{"source", &info.Source}, {"imported_at", &info.ImportedAt}} {
		err := db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, m.key).Scan(m.dst)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return Info{}, err
		}
	}
	for _, c := range []struct {
		table string
		dst   *int
	}{{"levels", &info.Levels}, {"absorption", &info.Absorption}, {"spontaneous", &info.Spontaneous}} {
		if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+c.table).Scan(c.dst); err != nil {
			return Info{}, err
		}
	}
	return info, nil
}

func scanAll(ctx context.Context, db *sql.DB, q string, fn func(*sql.Rows) error) error {
	rs, err := db.QueryContext(ctx, q)
	if err != nil {
		return err
	}
	defer rs.Close()
	for rs.Next() {
		if err := fn(rs); err != nil {
			return err
		}
	}
	return rs.Err()
}

// DefaultPath is the cache location used when none is configured.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, "dataset.sqlite")
}
