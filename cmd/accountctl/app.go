package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/GhCauther101/UserRecordStore/pkg/accounts"
	"github.com/GhCauther101/UserRecordStore/pkg/audit"
	"github.com/GhCauther101/UserRecordStore/pkg/config"
	"github.com/GhCauther101/UserRecordStore/pkg/logging"
	"github.com/GhCauther101/UserRecordStore/pkg/storage/backend"
)

// app is the set of long-lived objects a command works with.
// One store is built per invocation and handed to the command.
type app struct {
	cfg        *config.Config
	log        *logrus.Logger
	slot       *backend.Slot
	store      *accounts.Store
	auditStore *audit.Store
}

// loadConfig loads and validates the configuration
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openApp loads configuration and opens the store. Logs and audit lines go to stderr.
func openApp(stderr io.Writer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newApp(cfg, stderr)
}

func newApp(cfg *config.Config, stderr io.Writer) (*app, error) {
	log := logging.New(cfg.LogLevel, stderr)

	slot, err := backend.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.StorageBackend, err)
	}

	a := &app{cfg: cfg, log: log, slot: slot}

	opts := []accounts.Option{
		accounts.WithKey(cfg.StorageKey),
		accounts.WithLogger(log.WithField("backend", cfg.StorageBackend)),
	}

	if cfg.AuditEnabled {
		auditor := audit.NewLogger(stderr)
		store, err := audit.NewStore(cfg.AuditDatabaseURL)
		if err != nil {
			_ = slot.Close()
			return nil, fmt.Errorf("failed to open audit database: %w", err)
		}
		if store != nil {
			auditor.SetStore(store, log)
			a.auditStore = store
		}
		opts = append(opts, accounts.WithAuditor(auditor))
	}

	a.store = accounts.Open(slot, opts...)
	return a, nil
}

// Close releases the storage and audit connections
func (a *app) Close() {
	if a.auditStore != nil {
		_ = a.auditStore.Close()
	}
	if err := a.slot.Close(); err != nil {
		a.log.WithError(err).Warn("failed to close storage")
	}
}

// withApp opens the app, runs fn and closes the app
func withApp(stderr io.Writer, fn func(*app) error) error {
	a, err := openApp(stderr)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
