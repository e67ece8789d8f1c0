package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/GhCauther101/UserRecordStore/pkg/accounts"
)

// accountListCmd represents the account list command
var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored accounts",
	Long: `List stored accounts in insertion order.

Text output hides passwords and only shows whether one is set. JSON and YAML
output print the accounts exactly as they are stored.

Example:
  accountctl account list
  accountctl account list --output json`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		err := withApp(os.Stderr, func(a *app) error {
			return listAccounts(a.store, os.Stdout, output)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list accounts: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	accountCmd.AddCommand(accountListCmd)
	accountListCmd.Flags().StringP("output", "o", outputText, "Output format (text, json or yaml)")
}

func listAccounts(store *accounts.Store, w io.Writer, output string) error {
	if err := validateOutput(output); err != nil {
		return err
	}
	return renderAccounts(w, store.Accounts(), output)
}
