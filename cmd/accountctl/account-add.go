package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/GhCauther101/UserRecordStore/pkg/accounts"
)

// accountAddCmd represents the account add command
var accountAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an empty local account",
	Long: `Add an empty local account with a freshly generated id.

The new id is printed to STDOUT so it can be passed to "account update".

Example:
  id=$(accountctl account add)
  accountctl account update "$id" --login alice`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		err := withApp(os.Stderr, func(a *app) error {
			return addAccount(a.store, os.Stdout)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to add account: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	accountCmd.AddCommand(accountAddCmd)
}

func addAccount(store *accounts.Store, w io.Writer) error {
	acct, err := store.AddEmpty()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, acct.ID)
	return err
}
