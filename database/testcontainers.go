package database

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	tclog "github.com/testcontainers/testcontainers-go/log"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/stacklok/game-catalog-server/internal/config"
)

type nopLogger struct{}

func (*nopLogger) Printf(_ string, _ ...any) {}

var _ tclog.Logger = (*nopLogger)(nil)

var (
	dbName = "testdb"
	dbUser = "testuser"
	dbPass = "testpass"
)

// SetupTestDB creates a Postgres container, applies the migrations and
// returns an open database together with its connection string.
// The container is removed when the test finishes.
func SetupTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPass),
		postgres.BasicWaitStrategies(),
		tc.WithLogger(&nopLogger{}),
	)
	tc.CleanupContainer(t, postgresContainer)
	require.NoError(t, err)

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, MigrateUp(db, config.DatabaseDriverPostgres))

	return db, connStr
}

// SetupTestSQLite creates a migrated sqlite database file in a temporary directory
// and returns the open database together with its path.
func SetupTestSQLite(t *testing.T) (*sql.DB, string) {
	t.Helper()

	path := t.TempDir() + "/catalog.db"
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, MigrateUp(db, config.DatabaseDriverSQLite))

	return db, path
}

// SeedCatalog inserts categories, publishers and games rows.
// Rows are given as column values in table order.
func SeedCatalog(t *testing.T, db *sql.DB, categories, publishers, games [][]any) {
	t.Helper()

	insert := func(query string, rows [][]any) {
		for _, row := range rows {
			_, err := db.Exec(query, row...)
			require.NoError(t, err)
		}
	}

	insert(`INSERT INTO categories (id, name, description) VALUES ($1, $2, $3)`, categories)
	insert(`INSERT INTO publishers (id, name, description) VALUES ($1, $2, $3)`, publishers)
	insert(`INSERT INTO games (id, title, description, star_rating, category_id, publisher_id)
		VALUES ($1, $2, $3, $4, $5, $6)`, games)
}
