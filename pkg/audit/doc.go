// Package audit records account store mutations as RFC5424 syslog lines.
//
// # Event Types
//
//   - AccountEvent: an account was created, updated, edited or removed
//   - ResetEvent: a stored account list could not be loaded and was discarded
//
// Events never carry passwords.
//
// # Usage
//
//	logger := audit.NewLogger(os.Stderr)
//	logger.Log(audit.AccountEvent{
//	    Operation: audit.OperationCreate,
//	    AccountID: "3f9a1c0be4d27a65",
//	    Key:       "accounts",
//	    Success:   true,
//	})
//
// A Logger with a Store attached also inserts every event into the
// messages table.
package audit
