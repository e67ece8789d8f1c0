package integration

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	migrations "github.com/GhCauther101/UserRecordStore/db"
	"github.com/GhCauther101/UserRecordStore/pkg/db"
	"github.com/GhCauther101/UserRecordStore/pkg/storage"
	"github.com/GhCauther101/UserRecordStore/pkg/storage/file"
	gormstorage "github.com/GhCauther101/UserRecordStore/pkg/storage/gorm"
)

// SlotFactory returns a fresh, empty slot for one scenario and a cleanup func
type SlotFactory func() (storage.Storage, func(), error)

// TestContext holds the PostgreSQL resources needed for the database-backed run
type TestContext struct {
	DB          *gorm.DB
	RawDB       *sql.DB
	Container   testcontainers.Container
	DatabaseURL string // Connection string for the test database
}

// NewTestContext starts a PostgreSQL testcontainer and applies the embedded migrations.
func NewTestContext(ctx context.Context) (*TestContext, error) {
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("accounts_test"),
		tcpostgres.WithUsername("accounts"),
		tcpostgres.WithPassword("accounts"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	// Get connection string for the host (not container network)
	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	connStr := fmt.Sprintf("postgres://accounts:accounts@%s:%s/accounts_test?sslmode=disable", host, port.Port())

	database, err := db.Connect(db.Config{URL: connStr})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}

	rawDB, err := database.DB()
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get raw db: %w", err)
	}

	if err := runMigrations(rawDB); err != nil {
		_ = rawDB.Close()
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &TestContext{
		DB:          database,
		RawDB:       rawDB,
		Container:   pgContainer,
		DatabaseURL: connStr,
	}, nil
}

// Slot returns the shared local_storage table with the accounts key cleared
func (tc *TestContext) Slot() (storage.Storage, func(), error) {
	if err := tc.DB.Exec(`DELETE FROM local_storage`).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to clear local_storage: %w", err)
	}
	return gormstorage.New(tc.DB), func() {}, nil
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.RawDB != nil {
		_ = tc.RawDB.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}

// fileSlot creates a file slot in a new temporary directory
func fileSlot() (storage.Storage, func(), error) {
	dir, err := os.MkdirTemp("", "accounts-features-")
	if err != nil {
		return nil, nil, err
	}
	return file.NewInDir(filepath.Join(dir, "data")), func() { _ = os.RemoveAll(dir) }, nil
}

// runMigrations applies the embedded migrations with golang-migrate
func runMigrations(rawDB *sql.DB) error {
	migrationsFS, err := fs.Sub(migrations.Migrations, "migrations")
	if err != nil {
		return err
	}
	src, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return fmt.Errorf("failed to create iofs driver: %w", err)
	}

	driver, err := migratepostgres.WithInstance(rawDB, &migratepostgres.Config{
		MigrationsTable: db.MigrationsTable,
	})
	if err != nil {
		return fmt.Errorf("failed to create migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	version, _, _ := m.Version()
	log.Printf("Migrated test database to version %d", version)
	return nil
}
