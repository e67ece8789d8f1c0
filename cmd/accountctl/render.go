package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/GhCauther101/UserRecordStore/pkg/account"
)

// Output formats accepted by --output
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func validateOutput(output string) error {
	switch output {
	case outputText, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (expected text, json or yaml)", output)
}

// renderAccounts writes the list in the requested format.
// Text output never shows passwords; json and yaml output is the stored form.
func renderAccounts(w io.Writer, list []account.Account, output string) error {
	switch output {
	case outputJSON:
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(list); err != nil {
			return err
		}
		return enc.Close()

	case outputText:
		if len(list) == 0 {
			_, err := fmt.Fprintln(w, "No accounts")
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "ID\tTYPE\tLOGIN\tPASSWORD\tTAGS")
		for _, a := range list {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Type, a.Login, passwordState(a), tagList(a))
		}
		return tw.Flush()

	default:
		return validateOutput(output)
	}
}

// renderAccount writes a single account
func renderAccount(w io.Writer, a account.Account, output string) error {
	if output != outputText {
		switch output {
		case outputJSON:
			data, err := json.MarshalIndent(a, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(data))
			return err
		case outputYAML:
			data, err := yaml.Marshal(a)
			if err != nil {
				return err
			}
			_, err = w.Write(data)
			return err
		}
		return validateOutput(output)
	}

	_, err := fmt.Fprintf(w, "id:       %s\ntype:     %s\nlogin:    %s\npassword: %s\ntags:     %s\n",
		a.ID, a.Type, a.Login, passwordState(a), tagList(a))
	return err
}

func passwordState(a account.Account) string {
	switch {
	case !a.HasPassword():
		return "none"
	case *a.Password == "":
		return "empty"
	default:
		return "set"
	}
}

func tagList(a account.Account) string {
	texts := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		texts = append(texts, t.Text)
	}
	return strings.Join(texts, ",")
}
