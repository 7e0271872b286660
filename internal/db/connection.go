// Package db contains code for connecting to the catalog database and reading it.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Needs to be imported for Postgres driver
	_ "modernc.org/sqlite"             // Needs to be imported for sqlite driver

	"github.com/stacklok/game-catalog-server/internal/config"
)

const (
	defaultMaxOpenConns    = 4
	defaultConnMaxLifetime = 5 * time.Minute
	defaultConnectTimeout  = 10 * time.Second
)

// Connection wraps the database connection and query interface
type Connection struct {
	DB      *sql.DB
	Queries *Queries
	driver  string
}

// DriverName returns the database/sql driver registered for a config driver
func DriverName(driver string) (string, error) {
	switch driver {
	case config.DatabaseDriverSQLite:
		return "sqlite", nil
	case config.DatabaseDriverPostgres:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %s", driver)
	}
}

// ConnectionOption configures NewConnection
type ConnectionOption func(*connectionOptions)

type connectionOptions struct {
	readWrite bool
}

// WithReadWrite opens sqlite databases for writing, creating the file if needed.
// Only the migration tooling needs it.
func WithReadWrite() ConnectionOption {
	return func(o *connectionOptions) {
		o.readWrite = true
	}
}

// NewConnection opens and verifies a database connection from the provided configuration
func NewConnection(ctx context.Context, cfg *config.DatabaseConfig, opts ...ConnectionOption) (*Connection, error) {
	var o connectionOptions
	for _, opt := range opts {
		opt(&o)
	}

	if cfg == nil {
		return nil, fmt.Errorf("database configuration is required")
	}

	driver := cfg.GetDriver()
	driverName, err := DriverName(driver)
	if err != nil {
		return nil, err
	}

	dsn, err := cfg.GetConnectionString()
	if err != nil {
		return nil, fmt.Errorf("failed to build connection string: %w", err)
	}
	if dsn == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if driver == config.DatabaseDriverSQLite {
		// Catalog reads never write
		if o.readWrite {
			dsn = "file:" + dsn
		} else {
			dsn = "file:" + dsn + "?mode=ro"
		}
	}

	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	maxOpenConns := cfg.MaxOpenConns
	if maxOpenConns == 0 {
		maxOpenConns = defaultMaxOpenConns
	}
	connMaxLifetime := cfg.GetConnMaxLifetime()
	if connMaxLifetime == 0 {
		connMaxLifetime = defaultConnMaxLifetime
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		if closeErr := sqlDB.Close(); closeErr != nil {
			slog.Error("Failed to close database connection after ping failure", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Debug("Database connection established", "driver", driver, "database", describe(cfg))

	return &Connection{
		DB:      sqlDB,
		Queries: New(sqlDB),
		driver:  driver,
	}, nil
}

// describe returns a printable database location without credentials
func describe(cfg *config.DatabaseConfig) string {
	if cfg.GetDriver() == config.DatabaseDriverSQLite {
		return cfg.Path
	}
	return fmt.Sprintf("%s@%s:%d/%s", cfg.User, cfg.Host, cfg.Port, cfg.Database)
}

// Driver returns the config driver of the connection
func (c *Connection) Driver() string {
	return c.driver
}

// Close closes the database connection
func (c *Connection) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// Ping verifies the database connection is still alive
func (c *Connection) Ping(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.PingContext(ctx)
	}
	return fmt.Errorf("database connection is nil")
}
