package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/GhCauther101/UserRecordStore/pkg/accounts"
)

// accountShowCmd represents the account show command
var accountShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one account",
	Long: `Show one stored account.

Example:
  accountctl account show 3f9c2a7b1d4e8f60
  accountctl account show 3f9c2a7b1d4e8f60 -o yaml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		err := withApp(os.Stderr, func(a *app) error {
			return showAccount(a.store, os.Stdout, args[0], output)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show account: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	accountCmd.AddCommand(accountShowCmd)
	accountShowCmd.Flags().StringP("output", "o", outputText, "Output format (text, json or yaml)")
}

func showAccount(store *accounts.Store, w io.Writer, id, output string) error {
	if err := validateOutput(output); err != nil {
		return err
	}
	acct, ok := store.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", accounts.ErrAccountNotFound, id)
	}
	return renderAccount(w, acct, output)
}
