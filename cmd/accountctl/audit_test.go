package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GhCauther101/UserRecordStore/pkg/audit"
)

func TestRenderAuditMessages(t *testing.T) {
	messages := []audit.Message{
		{
			Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			Msgid:     "account-create",
			Sdata: map[string]any{
				audit.SDIDSubject: map[string]any{"account": "a1"},
				audit.SDIDAction:  map[string]any{"operation": "create", "result": "success"},
			},
			Message: "created account a1",
		},
	}

	var out bytes.Buffer
	require.NoError(t, renderAuditMessages(&out, messages, "text"))
	assert.Equal(t,
		"2024-03-01T12:00:00Z account-create   action.operation=create action.result=success subject.account=a1 created account a1\n",
		out.String())

	out.Reset()
	require.NoError(t, renderAuditMessages(&out, nil, "text"))
	assert.Equal(t, "No audit records\n", out.String())

	out.Reset()
	require.NoError(t, renderAuditMessages(&out, nil, "json"))
	assert.Equal(t, "[]\n", out.String())
}

func TestListAuditRecords_RequiresDatabase(t *testing.T) {
	setupEnv(t)

	err := listAuditRecords(&bytes.Buffer{}, 10, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audit_database_url")

	err = listAuditRecords(&bytes.Buffer{}, 0, "text")
	assert.Error(t, err)
}
