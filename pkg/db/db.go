package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MigrationsTable is the golang-migrate bookkeeping table
const MigrationsTable = "urs_schema_migrations"

// Config holds database connection configuration
type Config struct {
	// URL is the database connection URL
	URL string
	// LogLevel enables SQL query logging when set to "debug"
	LogLevel string
}

// Connect establishes a database connection.
func Connect(cfg Config) (*gorm.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database_url is required")
	}

	// Default to silent logging unless the log level is debug
	logMode := logger.Silent
	if strings.EqualFold(cfg.LogLevel, "debug") {
		logMode = logger.Info
	}

	db, err := gorm.Open(
		postgres.New(postgres.Config{
			DSN:                  cfg.URL,
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logMode),
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// MigrationsURL returns the database URL with the custom migrations table
// parameter used by golang-migrate.
func MigrationsURL(dbURL string) string {
	if dbURL == "" {
		return ""
	}
	if strings.Contains(dbURL, "?") {
		return dbURL + "&x-migrations-table=" + MigrationsTable
	}
	return dbURL + "?x-migrations-table=" + MigrationsTable
}
