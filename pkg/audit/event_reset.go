package audit

import "fmt"

// ResetEvent is logged when a stored account list is unreadable and the
// store starts over with an empty list.
type ResetEvent struct {
	Key    string
	Reason string
}

func (e ResetEvent) MessageID() string {
	return "account-reset"
}

func (e ResetEvent) Message() string {
	return fmt.Sprintf("discarded unreadable account list under %q: %s", e.Key, e.Reason)
}

func (e ResetEvent) Severity() Severity {
	return SeverityWarning
}

func (e ResetEvent) Facility() int {
	return FacilityUser
}

func (e ResetEvent) StructuredData() map[string]map[string]string {
	return map[string]map[string]string{
		SDIDAction: {
			"operation": "reset",
			"result":    "success",
		},
		SDIDStorage: {
			"key": e.Key,
		},
	}
}
