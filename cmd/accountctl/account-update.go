package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/GhCauther101/UserRecordStore/pkg/account"
	"github.com/GhCauther101/UserRecordStore/pkg/accounts"
)

// accountUpdateCmd represents the account update command
var accountUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update or insert an account",
	Long: `Update the account with the given id, or append it when no account has that id.

Only the fields named by flags are changed. --tag replaces the whole tag list
and may be repeated. --no-password stores a null password.

Example:
  accountctl account update 3f9c2a7b1d4e8f60 --login alice --password s3cret
  accountctl account update corp-bob --type ldap --login cn=bob --no-password --tag work --tag vpn`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		changes, err := changesFromFlags(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to update account: %v\n", err)
			os.Exit(1)
		}

		err = withApp(os.Stderr, func(a *app) error {
			return updateAccount(a.store, os.Stderr, args[0], changes)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to update account: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	accountCmd.AddCommand(accountUpdateCmd)
	accountUpdateCmd.Flags().StringP("type", "t", "", "Account type (local or ldap)")
	accountUpdateCmd.Flags().StringP("login", "l", "", "Login name")
	accountUpdateCmd.Flags().StringP("password", "p", "", "Password")
	accountUpdateCmd.Flags().Bool("no-password", false, "Store a null password")
	accountUpdateCmd.Flags().StringArray("tag", nil, "Tag text (repeatable, replaces existing tags)")
	accountUpdateCmd.MarkFlagsMutuallyExclusive("password", "no-password")
}

// accountChanges holds the fields named on the command line
type accountChanges struct {
	Type       *account.Type
	Login      *string
	Password   *string
	NoPassword bool
	Tags       []string
	SetTags    bool
}

func changesFromFlags(cmd *cobra.Command) (accountChanges, error) {
	var c accountChanges
	flags := cmd.Flags()

	if flags.Changed("type") {
		raw, _ := flags.GetString("type")
		t, err := account.TypeString(raw)
		if err != nil {
			return c, fmt.Errorf("invalid --type %q: expected one of %v", raw, account.TypeStrings())
		}
		c.Type = &t
	}
	if flags.Changed("login") {
		login, _ := flags.GetString("login")
		c.Login = &login
	}
	if flags.Changed("password") {
		password, _ := flags.GetString("password")
		c.Password = &password
	}
	c.NoPassword, _ = flags.GetBool("no-password")
	if flags.Changed("tag") {
		c.Tags, _ = flags.GetStringArray("tag")
		c.SetTags = true
	}
	return c, nil
}

// apply writes the changes onto a
func (c accountChanges) apply(a *account.Account) {
	if c.Type != nil {
		a.Type = *c.Type
	}
	if c.Login != nil {
		a.Login = *c.Login
	}
	if c.Password != nil {
		a.Password = account.Password(*c.Password)
	}
	if c.NoPassword {
		a.Password = nil
	}
	if c.SetTags {
		a.Tags = []account.Tag{}
		for _, text := range c.Tags {
			a.AddTag(text)
		}
	}
}

func updateAccount(store *accounts.Store, w io.Writer, id string, changes accountChanges) error {
	if id == "" {
		return fmt.Errorf("account id must not be empty")
	}

	acct, exists := store.Get(id)
	if !exists {
		acct = account.NewEmpty(id)
	}
	changes.apply(&acct)

	if err := store.Update(acct); err != nil {
		return err
	}

	verb := "Updated"
	if !exists {
		verb = "Added"
	}
	_, err := fmt.Fprintf(w, "%s account '%s'\n", verb, id)
	return err
}
