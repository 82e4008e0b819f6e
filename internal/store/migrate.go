package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

//go:embed migrations
var migrationsFS embed.FS

// withMigrator opens a dedicated connection for golang-migrate and hands the
// migrator to fn. The migrator owns that connection and closes it on return.
func withMigrator(cfg schoolfacts.DatabaseConfig, fn func(m *migrate.Migrate) error) (err error) {
	source, err := iofs.New(migrationsFS, "migrations/"+cfg.Driver)
	if err != nil {
		return fmt.Errorf("load migrations for %s: %w", cfg.Driver, err)
	}

	db, err := sql.Open(cfg.Driver, dataSourceName(cfg))
	if err != nil {
		return fmt.Errorf("open migration connection: %w: %w", schoolfacts.ErrConnectionFailed, err)
	}

	var m *migrate.Migrate
	switch cfg.Driver {
	case schoolfacts.DriverSQLite:
		driver, derr := migratesqlite.WithInstance(db, &migratesqlite.Config{})
		if derr != nil {
			db.Close()
			return fmt.Errorf("create sqlite migration driver: %w: %w", schoolfacts.ErrConnectionFailed, derr)
		}
		m, err = migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	case schoolfacts.DriverPostgres:
		driver, derr := migratepgx.WithInstance(db, &migratepgx.Config{})
		if derr != nil {
			db.Close()
			return fmt.Errorf("create postgres migration driver: %w: %w", schoolfacts.ErrConnectionFailed, derr)
		}
		m, err = migrate.NewWithInstance("iofs", source, "pgx5", driver)
	default:
		db.Close()
		return fmt.Errorf("driver %q: %w", cfg.Driver, schoolfacts.ErrUnsupportedDriver)
	}
	if err != nil {
		db.Close()
		return fmt.Errorf("create migrator: %w", err)
	}

	defer func() {
		srcErr, dbErr := m.Close()
		if err == nil {
			err = errors.Join(srcErr, dbErr)
		}
	}()

	return fn(m)
}

// runMigrations applies every pending up migration.
func runMigrations(cfg schoolfacts.DatabaseConfig) error {
	return withMigrator(cfg, func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("apply migrations: %w", err)
		}
		return nil
	})
}

// dropSchema removes every object the migrations created, including the
// migration version table.
func dropSchema(cfg schoolfacts.DatabaseConfig) error {
	return withMigrator(cfg, func(m *migrate.Migrate) error {
		if err := m.Drop(); err != nil {
			return fmt.Errorf("drop schema: %w", err)
		}
		return nil
	})
}
