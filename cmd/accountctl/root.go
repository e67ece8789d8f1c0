package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "accountctl",
	Short: "Manage stored user accounts",
	Long: `Manage the list of user accounts kept by the user record store.

Every change is written back to the configured storage slot before the
command returns.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
