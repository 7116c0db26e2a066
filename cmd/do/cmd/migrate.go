package cmd

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/templui/goaltrack/internal/db"
)

type migrateFlags struct {
	driver     string
	connection string
}

// MigrateCmd applies, rolls back and reports schema migrations against the
// database named by DB_DRIVER and DB_CONNECTION (or the matching flags).
func MigrateCmd() *cobra.Command {
	f := newMigrateFlags()
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}
	f.bind(cmd)

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return f.run(cmd.Context(), db.RunMigrations)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return f.run(cmd.Context(), db.MigrateDown)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return f.run(cmd.Context(), db.MigrationStatus)
			},
		},
	)

	return cmd
}

func newMigrateFlags() *migrateFlags {
	_ = godotenv.Load()
	return &migrateFlags{}
}

func (f *migrateFlags) bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.driver, "driver", envOr("DB_DRIVER", db.DriverSQLite), "database driver (sqlite or pgx)")
	cmd.PersistentFlags().StringVar(&f.connection, "dsn", envOr("DB_CONNECTION", "./data/goaltrack.db?_pragma=foreign_keys(1)"), "database connection string")
}

func (f *migrateFlags) run(ctx context.Context, step db.MigrationFunc) error {
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.Init(ctx, f.driver, f.connection)
	if err != nil {
		return err
	}
	defer database.Close()

	return step(ctx, database.DB, f.driver)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
