package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/GhCauther101/UserRecordStore/pkg/accounts"
)

// accountRemoveCmd represents the account remove command
var accountRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove an account",
	Long: `Remove every account with the given id.

Removing an id that does not exist is not an error. Storage is still rewritten
from the current list.

Example:
  accountctl account remove 3f9c2a7b1d4e8f60`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withApp(os.Stderr, func(a *app) error {
			return removeAccount(a.store, os.Stderr, args[0])
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to remove account: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	accountCmd.AddCommand(accountRemoveCmd)
}

func removeAccount(store *accounts.Store, w io.Writer, id string) error {
	_, found := store.Get(id)
	if err := store.Remove(id); err != nil {
		return err
	}
	if !found {
		_, err := fmt.Fprintf(w, "No account with id '%s'\n", id)
		return err
	}
	_, err := fmt.Fprintf(w, "Removed account '%s'\n", id)
	return err
}
