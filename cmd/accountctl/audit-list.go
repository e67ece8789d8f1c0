package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/GhCauther101/UserRecordStore/pkg/audit"
)

// auditListCmd represents the audit list command
var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent audit records",
	Long: `List the most recent audit records from audit_database_url, newest first.

Example:
  accountctl audit list
  accountctl audit list --limit 100 --output json`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		output, _ := cmd.Flags().GetString("output")

		if err := listAuditRecords(os.Stdout, limit, output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list audit records: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	auditCmd.AddCommand(auditListCmd)
	auditListCmd.Flags().IntP("limit", "n", 20, "Maximum number of records")
	auditListCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func listAuditRecords(w io.Writer, limit int, output string) error {
	if limit < 1 {
		return fmt.Errorf("limit must be positive, got %d", limit)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := audit.NewStore(cfg.AuditDatabaseURL)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("audit_database_url is not configured (set ACCOUNTS_AUDIT_DATABASE_URL)")
	}
	defer func() { _ = store.Close() }()

	messages, err := store.Recent(limit)
	if err != nil {
		return err
	}
	return renderAuditMessages(w, messages, output)
}

func renderAuditMessages(w io.Writer, messages []audit.Message, output string) error {
	if output == "json" {
		if messages == nil {
			messages = []audit.Message{}
		}
		data, err := json.MarshalIndent(messages, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	if len(messages) == 0 {
		_, err := fmt.Fprintln(w, "No audit records")
		return err
	}
	for _, m := range messages {
		_, err := fmt.Fprintf(w, "%s %-16s %s %s\n",
			m.Timestamp.UTC().Format(time.RFC3339), m.Msgid, formatSdata(m.Sdata), m.Message)
		if err != nil {
			return err
		}
	}
	return nil
}

// formatSdata flattens structured data into sorted sdid.param=value pairs
func formatSdata(sdata map[string]any) string {
	var pairs []string
	for sdid, params := range sdata {
		name, _, _ := strings.Cut(sdid, "@")
		values, ok := params.(map[string]any)
		if !ok {
			continue
		}
		for key, value := range values {
			pairs = append(pairs, fmt.Sprintf("%s.%s=%v", name, key, value))
		}
	}
	sort.Strings(pairs)
	return strings.Join(pairs, " ")
}
