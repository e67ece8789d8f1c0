package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/GhCauther101/UserRecordStore/pkg/account"
	"github.com/GhCauther101/UserRecordStore/pkg/accounts"
)

// accountImportCmd represents the account import command
var accountImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import accounts from a YAML or JSON file",
	Long: `Import accounts from a YAML or JSON file.

The file holds a list of accounts in the same shape "account list -o yaml"
prints. Each account is upserted by id: existing accounts are replaced in
place and new ones are appended.

Example:
  accountctl account list -o yaml > accounts.yml
  accountctl account import accounts.yml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filename := args[0]

		var result *importResult
		err := withApp(os.Stderr, func(a *app) error {
			var err error
			result, err = importAccountsFile(a.store, filename)
			return err
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to import accounts: %v\n", err)
			os.Exit(1)
		}

		// Output result as JSON
		output, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(output))
	},
}

func init() {
	accountCmd.AddCommand(accountImportCmd)
}

// importResult summarizes an import
type importResult struct {
	Added   []string `json:"added"`
	Updated []string `json:"updated"`
}

func importAccountsFile(store *accounts.Store, filename string) (*importResult, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return importAccounts(store, file)
}

func importAccounts(store *accounts.Store, r io.Reader) (*importResult, error) {
	var list []account.Account
	if err := yaml.NewDecoder(r).Decode(&list); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse accounts: %w", err)
	}

	for i, a := range list {
		if a.ID == "" {
			return nil, fmt.Errorf("account %d has no id", i+1)
		}
	}

	result := &importResult{Added: []string{}, Updated: []string{}}
	for _, a := range list {
		_, exists := store.Get(a.ID)
		if err := store.Update(a); err != nil {
			return result, err
		}
		if exists {
			result.Updated = append(result.Updated, a.ID)
		} else {
			result.Added = append(result.Added, a.ID)
		}
	}
	return result, nil
}
