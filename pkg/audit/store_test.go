package audit

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSave(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStoreWithDB(db)

	event := AccountEvent{
		Operation: OperationCreate,
		AccountID: "3f9a1c0be4d27a65",
		Key:       "accounts",
		Success:   true,
	}

	mock.ExpectExec(`INSERT INTO messages`).
		WithArgs(
			FacilityAuthPriv,  // facility
			int(SeverityInfo), // severity
			sqlmock.AnyArg(),  // timestamp
			sqlmock.AnyArg(),  // hostname
			AppName,           // appname
			sqlmock.AnyArg(),  // procid
			"account-create",  // msgid
			sqlmock.AnyArg(),  // sdata (JSON)
			sqlmock.AnyArg(),  // message
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, store.Save(event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreSaveResetEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStoreWithDB(db)

	mock.ExpectExec(`INSERT INTO messages`).
		WithArgs(
			FacilityUser,
			int(SeverityWarning),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			AppName,
			sqlmock.AnyArg(),
			"account-reset",
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, store.Save(ResetEvent{Key: "accounts", Reason: "bad json"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewStore_EmptyURL(t *testing.T) {
	store, err := NewStore("")
	assert.NoError(t, err)
	assert.Nil(t, store)
}

func TestStoreRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStoreWithDB(db)
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"facility", "severity", "timestamp", "hostname", "appname", "procid", "msgid", "sdata", "message"}).
		AddRow(FacilityAuthPriv, int(SeverityInfo), ts, "host", AppName, "12", "account-remove",
			[]byte(`{"subject@32473":{"account":"a1"}}`), "removed account a1")
	mock.ExpectQuery(`SELECT facility, severity, timestamp`).
		WithArgs(10).
		WillReturnRows(rows)

	messages, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "account-remove", messages[0].Msgid)
	assert.Equal(t, ts, messages[0].Timestamp)
	assert.Equal(t, map[string]any{"account": "a1"}, messages[0].Sdata["subject@32473"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
