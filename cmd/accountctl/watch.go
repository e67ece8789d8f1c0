package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/GhCauther101/UserRecordStore/pkg/accounts"
	"github.com/GhCauther101/UserRecordStore/pkg/config"
	"github.com/GhCauther101/UserRecordStore/pkg/logging"
	"github.com/GhCauther101/UserRecordStore/pkg/storage/file"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the account list whenever the storage file changes",
	Long: `Watch the file backend's storage file and print the account list each
time another process writes it.

The watcher only reads. Concurrent writers are not coordinated: the last
write wins.

Example:
  accountctl watch
  accountctl watch --output json`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		if err := watchAccounts(os.Stdout, output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch accounts: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringP("output", "o", outputText, "Output format (text, json or yaml)")
}

func watchAccounts(w io.Writer, output string) error {
	if err := validateOutput(output); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.StorageBackend != config.BackendFile {
		return fmt.Errorf("watch requires the %s backend, configured backend is %s", config.BackendFile, cfg.StorageBackend)
	}

	log := logging.New(cfg.LogLevel, os.Stderr)
	slot := file.NewInDir(cfg.StoragePath)
	dir := filepath.Dir(slot.Path())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	// Create file watcher
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Writes replace the file by rename, so watch the directory
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	fmt.Fprintf(os.Stderr, "Watching %s for account changes (key: %s)\n", slot.Path(), cfg.StorageKey)
	if err := printSnapshot(w, slot, cfg.StorageKey, log, output); err != nil {
		return err
	}

	// Handle signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSlotChange(event, slot.Path()) {
				continue
			}
			fmt.Fprintf(os.Stderr, "[%s] Storage changed, reloading accounts...\n", time.Now().Format(time.RFC3339))
			if err := printSnapshot(w, slot, cfg.StorageKey, log, output); err != nil {
				fmt.Fprintf(os.Stderr, "Error printing accounts: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\nShutting down...")
			return nil
		}
	}
}

// isSlotChange reports whether event replaced or rewrote the storage file
func isSlotChange(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(path) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

// printSnapshot loads a fresh store from the slot and prints its list
func printSnapshot(w io.Writer, slot *file.Storage, key string, log logrus.FieldLogger, output string) error {
	store := accounts.Open(slot, accounts.WithKey(key), accounts.WithLogger(log))
	return renderAccounts(w, store.Accounts(), output)
}
