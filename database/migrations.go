// Package database provides the relational catalog schema and its migration tooling.
//
// The catalog server only reads from the database; the migrations exist so
// that operators, tests and the example setup can create the games,
// categories and publishers tables in sqlite or PostgreSQL.
package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	mdatabase "github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/stacklok/game-catalog-server/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationsFromSource returns a migration source driver from the embedded migrations.
func migrationsFromSource() (source.Driver, error) {
	return iofs.New(migrationsFS, "migrations")
}

// Migrator is the interface for the migration tooling.
type Migrator interface {
	Up() error
	Down() error
	Steps(int) error
	Version() (uint, bool, error)
	Close() (error, error)
}

// NewMigrator returns a migration instance operating on an open database.
// driver is one of the config database drivers (sqlite or postgres).
func NewMigrator(db *sql.DB, driver string) (Migrator, error) {
	src, err := migrationsFromSource()
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	var (
		target     mdatabase.Driver
		targetName string
	)
	switch driver {
	case config.DatabaseDriverSQLite:
		target, err = sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
		targetName = "sqlite"
	case config.DatabaseDriverPostgres:
		target, err = pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
		targetName = "pgx5"
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s migration driver: %w", driver, err)
	}

	return migrate.NewWithInstance("iofs", src, targetName, target)
}

// MigrateUp applies all pending migrations
func MigrateUp(db *sql.DB, driver string) error {
	m, err := NewMigrator(db, driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
