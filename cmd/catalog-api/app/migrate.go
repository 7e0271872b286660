package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/stacklok/game-catalog-server/database"
	"github.com/stacklok/game-catalog-server/internal/config"
	"github.com/stacklok/game-catalog-server/internal/db"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the schema of a database catalog source",
		Long: `Create or drop the games, categories and publishers tables of the database
configured as the catalog source. Use with 'up' or 'down' subcommands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Usage()
		},
	}

	cmd.PersistentFlags().BoolP("yes", "y", false, "Answer yes to all questions")
	cmd.PersistentFlags().UintP("num-steps", "n", 0, "Number of steps to migrate (0 = all)")
	cmd.PersistentFlags().String("config", "", "Path to configuration file (YAML format, required)")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE:  runMigrateUp,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revert database migrations",
		Long: `Revert database migrations. Without --num-steps every migration is reverted,
which drops the catalog tables and all data in them.`,
		Args: cobra.NoArgs,
		RunE: runMigrateDown,
	})

	return cmd
}

// openMigrator connects to the database source of the configuration and wraps it in a migrator
func openMigrator(cmd *cobra.Command) (database.Migrator, func(), error) {
	v, err := newViper(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	cfg, _, err := loadConfig(v.GetString("config"))
	if err != nil {
		return nil, nil, err
	}
	if cfg.Source.GetType() != config.SourceTypeDatabase {
		return nil, nil, fmt.Errorf("migrations require a database source, configured source is %q", cfg.Source.GetType())
	}

	conn, err := db.NewConnection(cmd.Context(), cfg.Source.Database, db.WithReadWrite())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	m, err := database.NewMigrator(conn.DB, conn.Driver())
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	cleanup := func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			slog.Error("Error closing migrator", "source_error", srcErr, "database_error", dbErr)
		}
	}
	return m, cleanup, nil
}

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	numSteps, err := cmd.Flags().GetUint("num-steps")
	if err != nil {
		return fmt.Errorf("failed to get num-steps flag: %w", err)
	}
	if numSteps > math.MaxInt {
		return fmt.Errorf("number of steps exceeds maximum allowed value")
	}

	m, cleanup, err := openMigrator(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if numSteps == 0 {
		slog.Info("Applying all pending migrations")
		err = m.Up()
	} else {
		slog.Info("Applying migrations", "steps", numSteps)
		err = m.Steps(int(numSteps)) // #nosec G115 -- overflow checked above
	}
	if err := migrationResult(err, "No pending migrations - database is up to date"); err != nil {
		return err
	}

	displayMigrationVersion(m)
	return nil
}

func runMigrateDown(cmd *cobra.Command, _ []string) error {
	numSteps, err := cmd.Flags().GetUint("num-steps")
	if err != nil {
		return fmt.Errorf("failed to get num-steps flag: %w", err)
	}
	if numSteps > math.MaxInt {
		return fmt.Errorf("number of steps exceeds maximum allowed value")
	}

	if err := confirmMigrateDown(cmd, numSteps); err != nil {
		return err
	}

	m, cleanup, err := openMigrator(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if numSteps == 0 {
		slog.Warn("Migrating down all steps - this will remove the catalog tables")
		err = m.Down()
	} else {
		slog.Info("Reverting migrations", "steps", numSteps)
		err = m.Steps(-1 * int(numSteps)) // #nosec G115 -- overflow checked above
	}
	if err := migrationResult(err, "No migrations to revert - database is already at the oldest version"); err != nil {
		return err
	}

	displayMigrationVersion(m)
	return nil
}

func migrationResult(err error, noChangeMessage string) error {
	if err == nil {
		slog.Info("Migration completed successfully")
		return nil
	}
	if errors.Is(err, migrate.ErrNoChange) {
		slog.Info(noChangeMessage)
		return nil
	}
	return fmt.Errorf("migration failed: %w", err)
}

func confirmMigrateDown(cmd *cobra.Command, numSteps uint) error {
	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return fmt.Errorf("failed to get yes flag: %w", err)
	}
	if yes {
		return nil
	}

	prompt := fmt.Sprintf("WARNING: This will migrate down %d step(s) and may result in data loss. Continue?", numSteps)
	if numSteps == 0 {
		prompt = "WARNING: This will migrate down ALL steps and drop every catalog table. Continue?"
	}

	if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
		slog.Info("Migration cancelled")
		return fmt.Errorf("migration cancelled by user")
	}
	return nil
}

// confirm asks a yes/no question and reports whether the answer was yes
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	_, _ = fmt.Fprintf(out, "%s (yes/no): ", prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "yes" || answer == "y"
}

func displayMigrationVersion(m database.Migrator) {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		slog.Info("Database has no migrations applied")
	case err != nil:
		slog.Warn("Unable to get migration version", "error", err)
	case dirty:
		slog.Warn("Database is in a dirty state", "version", version)
	default:
		slog.Info("Current migration version", "version", version)
	}
}
