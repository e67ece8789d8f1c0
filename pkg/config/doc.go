// Package config provides configuration management for the user record store.
//
// # Configuration Sources
//
// Values are resolved in order, later sources winning:
//
//   - Built-in defaults
//   - The accounts.yml file in ACCOUNTS_CONFIG_PATH (default: the user config directory)
//   - ACCOUNTS_* environment variables
//
// # Key Configuration Options
//
//   - ACCOUNTS_STORAGE_BACKEND: memory, file, postgres or redis
//   - ACCOUNTS_STORAGE_PATH: directory of the file backend
//   - ACCOUNTS_STORAGE_KEY: slot key holding the account list
//   - ACCOUNTS_DATABASE_URL: PostgreSQL connection string (postgres backend)
//   - ACCOUNTS_REDIS_URL: redis:// URL (redis backend)
//   - ACCOUNTS_AUDIT_ENABLED: write audit records for store mutations
//   - ACCOUNTS_LOG_LEVEL: debug, info, warn or error
package config
