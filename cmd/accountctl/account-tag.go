package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/GhCauther101/UserRecordStore/pkg/account"
	"github.com/GhCauther101/UserRecordStore/pkg/accounts"
)

// accountTagCmd represents the account tag command
var accountTagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Edit the tags of an account",
	Long:  `Add or remove a single tag on an existing account.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'tag' requires a subcommand (add, remove)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var accountTagAddCmd = &cobra.Command{
	Use:   "add <id> <text>",
	Short: "Add a tag to an account",
	Long: `Add a tag to an existing account. Adding a tag that is already present
does nothing.

Example:
  accountctl account tag add 3f9c2a7b1d4e8f60 work`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := withApp(os.Stderr, func(a *app) error {
			return tagAccount(a.store, os.Stderr, args[0], args[1], true)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to tag account: %v\n", err)
			os.Exit(1)
		}
	},
}

var accountTagRemoveCmd = &cobra.Command{
	Use:     "remove <id> <text>",
	Aliases: []string{"rm"},
	Short:   "Remove a tag from an account",
	Long: `Remove every tag with the given text from an existing account.

Example:
  accountctl account tag remove 3f9c2a7b1d4e8f60 work`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := withApp(os.Stderr, func(a *app) error {
			return tagAccount(a.store, os.Stderr, args[0], args[1], false)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to untag account: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	accountCmd.AddCommand(accountTagCmd)
	accountTagCmd.AddCommand(accountTagAddCmd)
	accountTagCmd.AddCommand(accountTagRemoveCmd)
}

// tagAccount edits the stored account in place, adding or removing a tag
func tagAccount(store *accounts.Store, w io.Writer, id, text string, add bool) error {
	var changed bool
	err := store.Edit(id, func(a *account.Account) {
		if add {
			changed = a.AddTag(text)
		} else {
			changed = a.RemoveTag(text)
		}
	})
	if err != nil {
		return err
	}

	if !changed {
		_, err = fmt.Fprintf(w, "Tags of account '%s' unchanged\n", id)
		return err
	}
	_, err = fmt.Fprintf(w, "Tags of account '%s' updated\n", id)
	return err
}
