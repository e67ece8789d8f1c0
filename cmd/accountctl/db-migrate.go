package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/spf13/cobra"

	"github.com/GhCauther101/UserRecordStore/pkg/db"
)

// dbMigrateCmd represents the db migrate command
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create and/or upgrade the database schema",
	Long: `Create and/or upgrade the database schema.

This command runs all pending database migrations to bring the schema
up to date. The database is the one named by database_url, or
audit_database_url when --audit is given.

Example:
  accountctl db migrate
  accountctl db migrate --audit`,
	Run: func(cmd *cobra.Command, args []string) {
		dbURL, err := migrationDatabaseURL(cmd)
		if err == nil {
			err = runMigrations(os.Stdout, dbURL)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
			os.Exit(1)
		}
	},
}

var dbMigrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Rollback database migrations",
	Long: `Rollback database migrations.

This command rolls back the specified number of migrations (default: 1).

Example:
  accountctl db down      # Rollback 1 migration
  accountctl db down 2    # Rollback 2 migrations`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		steps, err := parseSteps(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Rollback failed: %v\n", err)
			os.Exit(1)
		}

		dbURL, err := migrationDatabaseURL(cmd)
		if err == nil {
			err = runMigrationsDown(os.Stdout, dbURL, steps)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Rollback failed: %v\n", err)
			os.Exit(1)
		}
	},
}

var dbMigrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current migration version",
	Long:  `Show the current database migration version and the known migrations.`,
	Run: func(cmd *cobra.Command, args []string) {
		dbURL, err := migrationDatabaseURL(cmd)
		if err == nil {
			err = showMigrationStatus(os.Stdout, dbURL)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to get status: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbMigrateDownCmd)
	dbCmd.AddCommand(dbMigrateStatusCmd)

	for _, c := range []*cobra.Command{dbMigrateCmd, dbMigrateDownCmd, dbMigrateStatusCmd} {
		c.Flags().Bool("audit", false, "Use audit_database_url instead of database_url")
	}
}

// migrationDatabaseURL picks the configured database for the db commands
func migrationDatabaseURL(cmd *cobra.Command) (string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}

	useAudit, _ := cmd.Flags().GetBool("audit")
	if useAudit {
		if cfg.AuditDatabaseURL == "" {
			return "", fmt.Errorf("audit_database_url is not configured (set ACCOUNTS_AUDIT_DATABASE_URL)")
		}
		return cfg.AuditDatabaseURL, nil
	}
	if cfg.DatabaseURL == "" {
		return "", fmt.Errorf("database_url is not configured (set ACCOUNTS_DATABASE_URL)")
	}
	return cfg.DatabaseURL, nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(args[0])
	if err != nil || steps < 1 {
		return 0, fmt.Errorf("steps must be a positive integer, got %q", args[0])
	}
	return steps, nil
}

func runMigrations(w io.Writer, dbURL string) error {
	m, err := createMigrateInstance(db.MigrationsURL(dbURL))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	version, dirty, _ := m.Version()
	_, _ = fmt.Fprintf(w, "Current version: %d (dirty: %v)\n", version, dirty)

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			_, _ = fmt.Fprintln(w, "No migrations to run - database is up to date")
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	newVersion, _, _ := m.Version()
	_, _ = fmt.Fprintf(w, "Migrated to version: %d\n", newVersion)
	_, _ = fmt.Fprintln(w, "Migrations complete")
	return nil
}

func runMigrationsDown(w io.Writer, dbURL string, steps int) error {
	m, err := createMigrateInstance(db.MigrationsURL(dbURL))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	_, _ = fmt.Fprintf(w, "Rolling back %d migration(s)...\n", steps)

	if err := m.Steps(-steps); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}

	version, _, err := m.Version()
	return reportRollback(w, version, err)
}

// reportRollback prints where a rollback left the schema. ErrNilVersion means
// nothing is applied any more; any other version error is returned.
func reportRollback(w io.Writer, version uint, err error) error {
	if errors.Is(err, migrate.ErrNilVersion) {
		_, _ = fmt.Fprintln(w, "Rolled back all migrations")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Rolled back to version: %d\n", version)
	return nil
}

func showMigrationStatus(w io.Writer, dbURL string) error {
	m, err := createMigrateInstance(db.MigrationsURL(dbURL))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	files, err := listMigrationFiles()
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	if errors.Is(err, migrate.ErrNilVersion) {
		_, _ = fmt.Fprintln(w, "No migrations have been applied yet")
	} else {
		_, _ = fmt.Fprintf(w, "Current version: %d\n", version)
		if dirty {
			_, _ = fmt.Fprintln(w, "Warning: Database is in a dirty state")
		}
	}

	for _, line := range migrationStatusLines(files, version) {
		_, _ = fmt.Fprintln(w, line)
	}
	return nil
}

// migrationStatusLines marks each up migration as applied when its version
// is at or below the current one
func migrationStatusLines(files []string, current uint) []string {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	lines := make([]string, 0, len(sorted))
	for _, name := range sorted {
		prefix, _, _ := strings.Cut(name, "_")
		fileVersion, err := strconv.ParseUint(prefix, 10, 64)
		if err != nil {
			continue
		}
		state := "pending"
		if current > 0 && uint(fileVersion) <= current {
			state = "applied"
		}
		lines = append(lines, fmt.Sprintf("  [%s] %s", state, strings.TrimSuffix(name, ".up.sql")))
	}
	return lines
}
