package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

// Store is the sqlx-backed implementation of schoolfacts.Store.
type Store struct {
	cfg schoolfacts.DatabaseConfig
	db  *sqlx.DB
}

var _ schoolfacts.Store = (*Store)(nil)

// Open validates cfg, applies pending migrations, and connects.
// For SQLite the parent directory of the database file is created if needed.
func Open(ctx context.Context, cfg schoolfacts.DatabaseConfig) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Driver == schoolfacts.DriverSQLite {
		if err := ensureParentDir(cfg.DSN); err != nil {
			return nil, err
		}
	}

	if err := runMigrations(cfg); err != nil {
		return nil, err
	}

	db, err := connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Store{cfg: cfg, db: db}, nil
}

func connect(ctx context.Context, cfg schoolfacts.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, cfg.Driver, dataSourceName(cfg))
	if err != nil {
		return nil, fmt.Errorf("connect to %s database: %w: %w", cfg.Driver, schoolfacts.ErrConnectionFailed, err)
	}
	if cfg.Driver == schoolfacts.DriverSQLite {
		// SQLite allows one writer; a single connection keeps transactions serialized.
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// dataSourceName turns the configured DSN into the driver's connection string.
func dataSourceName(cfg schoolfacts.DatabaseConfig) string {
	if cfg.Driver == schoolfacts.DriverSQLite {
		return "file:" + cfg.DSN + "?_foreign_keys=on&_busy_timeout=5000"
	}
	return cfg.DSN
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create database directory %s: %w", dir, err)
	}
	return nil
}

// Driver returns the database/sql driver name in use.
func (s *Store) Driver() string {
	return s.cfg.Driver
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// HasData reports whether any district has been seeded.
func (s *Store) HasData(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM districts"); err != nil {
		return false, fmt.Errorf("count districts: %w", err)
	}
	return n > 0, nil
}

// Reset discards all data and recreates the schema.
// SQLite removes the database file; PostgreSQL drops every table.
func (s *Store) Reset(ctx context.Context) error {
	switch s.cfg.Driver {
	case schoolfacts.DriverSQLite:
		if err := s.Close(); err != nil {
			return fmt.Errorf("close database before reset: %w", err)
		}
		for _, suffix := range []string{"", "-journal", "-wal", "-shm"} {
			if err := os.Remove(s.cfg.DSN + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("remove %s: %w", s.cfg.DSN+suffix, err)
			}
		}
		if err := ensureParentDir(s.cfg.DSN); err != nil {
			return err
		}
		if err := runMigrations(s.cfg); err != nil {
			return err
		}
		db, err := connect(ctx, s.cfg)
		if err != nil {
			return err
		}
		s.db = db
		return nil

	case schoolfacts.DriverPostgres:
		if err := dropSchema(s.cfg); err != nil {
			return err
		}
		return runMigrations(s.cfg)

	default:
		return fmt.Errorf("driver %q: %w", s.cfg.Driver, schoolfacts.ErrUnsupportedDriver)
	}
}

// inTx runs fn in a transaction, committing on success and rolling back on error.
func (s *Store) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// SeedDirectory inserts districts then schools in one transaction.
func (s *Store) SeedDirectory(ctx context.Context, districts []schoolfacts.District, schools []schoolfacts.School) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := execEach(ctx, tx, insertDistrictSQL, districts); err != nil {
			return fmt.Errorf("insert districts: %w", err)
		}
		if err := execEach(ctx, tx, insertSchoolSQL, schools); err != nil {
			return fmt.Errorf("insert schools: %w", err)
		}
		return nil
	})
}

// KnownSchoolIDs loads every school identifier in one query.
func (s *Store) KnownSchoolIDs(ctx context.Context) (map[string]struct{}, error) {
	var ids []string
	if err := s.db.SelectContext(ctx, &ids, "SELECT ncessch FROM schools"); err != nil {
		return nil, fmt.Errorf("load school ids: %w", err)
	}
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	return known, nil
}

// UpsertEnrollment writes records in ascending school order, overwriting the
// enrollment columns of existing rows and leaving lunch columns intact.
func (s *Store) UpsertEnrollment(ctx context.Context, records []schoolfacts.EnrollmentRecord) (int, error) {
	sorted := make([]schoolfacts.EnrollmentRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].NCESSCH < sorted[j].NCESSCH })

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := execEach(ctx, tx, upsertEnrollmentSQL, sorted); err != nil {
			return fmt.Errorf("upsert enrollment: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(sorted), nil
}

// ApplyFinanceAndLunch updates districts and enrollment rows by primary key in
// one transaction. It returns the number of rows each half changed.
func (s *Store) ApplyFinanceAndLunch(ctx context.Context, finance []schoolfacts.DistrictFinance, lunch []schoolfacts.SchoolLunch) (int, int, error) {
	var districts, schools int
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if districts, err = updateEach(ctx, tx, updateDistrictFinanceSQL, finance); err != nil {
			return fmt.Errorf("update district finance: %w", err)
		}
		if schools, err = updateEach(ctx, tx, updateSchoolLunchSQL, lunch); err != nil {
			return fmt.Errorf("update school lunch: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return districts, schools, nil
}

// UpdateReportCards updates districts by IRN and returns the IRNs that matched.
func (s *Store) UpdateReportCards(ctx context.Context, cards []schoolfacts.ReportCard) ([]string, error) {
	var matched []string
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PrepareNamedContext(ctx, updateReportCardSQL)
		if err != nil {
			return fmt.Errorf("prepare report card update: %w", err)
		}
		defer stmt.Close()

		for _, card := range cards {
			res, err := stmt.ExecContext(ctx, card)
			if err != nil {
				return fmt.Errorf("update report card for %s: %w", card.IRN, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected: %w", err)
			}
			if n > 0 {
				matched = append(matched, card.IRN)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matched, nil
}

// SchoolGrades returns the identifier, grade span, and stored type of every school.
func (s *Store) SchoolGrades(ctx context.Context) ([]schoolfacts.School, error) {
	var schools []schoolfacts.School
	err := s.db.SelectContext(ctx, &schools, `
		SELECT ncessch, name,
		       COALESCE(grades_low, '') AS grades_low,
		       COALESCE(grades_high, '') AS grades_high,
		       COALESCE(school_type, '') AS school_type
		FROM schools
		ORDER BY ncessch`)
	if err != nil {
		return nil, fmt.Errorf("load school grades: %w", err)
	}
	return schools, nil
}

// UpdateSchoolTypes sets school_type for each school identifier in types.
func (s *Store) UpdateSchoolTypes(ctx context.Context, types map[string]schoolfacts.SchoolType) (int, error) {
	ids := make([]string, 0, len(types))
	for id := range types {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([]schoolTypeRow, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, schoolTypeRow{NCESSCH: id, SchoolType: types[id]})
	}

	var changed int
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		changed, err = updateEach(ctx, tx, updateSchoolTypeSQL, rows)
		if err != nil {
			return fmt.Errorf("update school types: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

// RecordRun appends an audit row to import_runs.
func (s *Store) RecordRun(ctx context.Context, run schoolfacts.ImportRun) error {
	if _, err := s.db.NamedExecContext(ctx, insertImportRunSQL, run); err != nil {
		return fmt.Errorf("record %s run: %w", run.Job, err)
	}
	return nil
}

type schoolTypeRow struct {
	NCESSCH    string                 `db:"ncessch"`
	SchoolType schoolfacts.SchoolType `db:"school_type"`
}

// execEach runs a named statement once per element of args.
func execEach[T any](ctx context.Context, tx *sqlx.Tx, query string, args []T) error {
	_, err := updateEach(ctx, tx, query, args)
	return err
}

// updateEach runs a named statement once per element of args and sums the
// rows affected.
func updateEach[T any](ctx context.Context, tx *sqlx.Tx, query string, args []T) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}

	stmt, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	var total int64
	for _, arg := range args {
		res, err := stmt.ExecContext(ctx, arg)
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		total += n
	}
	return int(total), nil
}
