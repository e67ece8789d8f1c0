package audit

import "fmt"

// Account operations
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationEdit   = "edit"
	OperationRemove = "remove"
)

// AccountEvent represents a mutation of a stored account
type AccountEvent struct {
	Operation    string
	AccountID    string
	Login        string
	Type         string
	Key          string
	Success      bool
	ErrorMessage string
}

func (e AccountEvent) MessageID() string {
	return "account-" + e.Operation
}

func (e AccountEvent) Message() string {
	verb := pastTense(e.Operation)
	if e.Success {
		return fmt.Sprintf("%s account %s", verb, e.AccountID)
	}
	msg := fmt.Sprintf("failed to persist %s of account %s", e.Operation, e.AccountID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AccountEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AccountEvent) Facility() int {
	return FacilityAuthPriv
}

func (e AccountEvent) StructuredData() map[string]map[string]string {
	subject := map[string]string{
		"account": e.AccountID,
	}
	if e.Login != "" {
		subject["login"] = e.Login
	}
	if e.Type != "" {
		subject["type"] = e.Type
	}

	sd := map[string]map[string]string{
		SDIDSubject: subject,
		SDIDAction: {
			"operation": e.Operation,
		},
		SDIDStorage: {
			"key": e.Key,
		},
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}

func pastTense(operation string) string {
	switch operation {
	case OperationCreate:
		return "created"
	case OperationUpdate:
		return "updated"
	case OperationEdit:
		return "edited"
	case OperationRemove:
		return "removed"
	default:
		return operation
	}
}
