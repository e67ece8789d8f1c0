package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/GhCauther101/UserRecordStore/pkg/accounts"
)

// accountPurgeCmd represents the account purge command
var accountPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every stored account",
	Long: `Delete the stored account list from the configured backend.

The storage key is removed entirely, as if nothing had ever been saved.
The --yes flag is required.

Example:
  accountctl account purge --yes`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		confirmed, _ := cmd.Flags().GetBool("yes")
		if !confirmed {
			fmt.Fprintln(os.Stderr, "Refusing to purge accounts without --yes")
			os.Exit(1)
		}

		err := withApp(os.Stderr, func(a *app) error {
			return purgeAccounts(a.store, os.Stderr)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to purge accounts: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	accountPurgeCmd.Flags().Bool("yes", false, "Confirm deleting every stored account")
	accountCmd.AddCommand(accountPurgeCmd)
}

func purgeAccounts(store *accounts.Store, w io.Writer) error {
	n := store.Len()
	if err := store.Purge(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Purged %d account(s) from '%s'\n", n, store.Key())
	return err
}
