package audit

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLogger(buf *bytes.Buffer) *Logger {
	logger := NewLogger(buf)
	logger.hostname = "workstation"
	logger.pid = 4242
	logger.now = func() time.Time {
		return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	}
	return logger
}

func TestLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := fixedLogger(&buf)

	logger.Log(AccountEvent{
		Operation: OperationCreate,
		AccountID: "3f9a1c0be4d27a65",
		Type:      "local",
		Key:       "accounts",
		Success:   true,
	})

	expected := `<86>1 2024-03-01T12:30:00.000Z workstation user-record-store 4242 account-create ` +
		`[action@32473 operation="create" result="success"]` +
		`[storage@32473 key="accounts"]` +
		`[subject@32473 account="3f9a1c0be4d27a65" type="local"] ` +
		"created account 3f9a1c0be4d27a65\n"
	assert.Equal(t, expected, buf.String())
}

func TestLoggerFormat_EmptyHostname(t *testing.T) {
	var buf bytes.Buffer
	logger := fixedLogger(&buf)
	logger.hostname = ""

	logger.Log(ResetEvent{Key: "accounts", Reason: "bad json"})

	assert.True(t, strings.HasPrefix(buf.String(), "<12>1 2024-03-01T12:30:00.000Z - user-record-store"))
}

func TestEscapeSDValue(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`plain`, `"plain"`},
		{`a"b`, `"a\"b"`},
		{`a]b`, `"a\]b"`},
		{`a\b`, `"a\\b"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, escapeSDValue(tt.input))
		})
	}
}

func TestAccountEvent(t *testing.T) {
	tests := []struct {
		name      string
		event     AccountEvent
		wantMsg   string
		wantSev   Severity
		wantMsgID string
	}{
		{
			name:      "create",
			event:     AccountEvent{Operation: OperationCreate, AccountID: "a1", Success: true},
			wantMsg:   "created account a1",
			wantSev:   SeverityInfo,
			wantMsgID: "account-create",
		},
		{
			name:      "update",
			event:     AccountEvent{Operation: OperationUpdate, AccountID: "a1", Login: "alice", Success: true},
			wantMsg:   "updated account a1",
			wantSev:   SeverityInfo,
			wantMsgID: "account-update",
		},
		{
			name:      "remove",
			event:     AccountEvent{Operation: OperationRemove, AccountID: "a1", Success: true},
			wantMsg:   "removed account a1",
			wantSev:   SeverityInfo,
			wantMsgID: "account-remove",
		},
		{
			name:      "failed edit",
			event:     AccountEvent{Operation: OperationEdit, AccountID: "a1", ErrorMessage: "quota exceeded"},
			wantMsg:   "failed to persist edit of account a1: quota exceeded",
			wantSev:   SeverityWarning,
			wantMsgID: "account-edit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.event.Message())
			assert.Equal(t, tt.wantSev, tt.event.Severity())
			assert.Equal(t, tt.wantMsgID, tt.event.MessageID())
			assert.Equal(t, FacilityAuthPriv, tt.event.Facility())
		})
	}
}

func TestAccountEvent_StructuredData(t *testing.T) {
	sd := AccountEvent{Operation: OperationUpdate, AccountID: "a1", Login: "alice", Type: "ldap", Key: "accounts"}.StructuredData()

	assert.Equal(t, "failure", sd[SDIDAction]["result"])
	assert.Equal(t, "alice", sd[SDIDSubject]["login"])
	assert.Equal(t, "ldap", sd[SDIDSubject]["type"])
	assert.Equal(t, "accounts", sd[SDIDStorage]["key"])
	for _, params := range sd {
		_, hasPassword := params["password"]
		assert.False(t, hasPassword)
	}
}

type failingSaver struct{}

func (failingSaver) Save(Event) error { return errors.New("db down") }

func TestLogger_StoreFailureIsReported(t *testing.T) {
	var buf bytes.Buffer
	logger := fixedLogger(&buf)

	errLog, hook := test.NewNullLogger()
	logger.SetStore(failingSaver{}, errLog)

	logger.Log(ResetEvent{Key: "accounts", Reason: "bad json"})

	assert.NotEmpty(t, buf.String())
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "account-reset", hook.LastEntry().Data["msgid"])
}
