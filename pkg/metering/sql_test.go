package metering_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quasarlabs/toolgate/pkg/metering"
)

func TestSQLMeter_Init(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS usage_events").
		WillReturnResult(sqlmock.NewResult(0, 0))

	m := metering.NewSQLMeter(db)
	require.NoError(t, m.Init(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLMeter_Record(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	e := metering.NewEvent("signal", metering.KindCharge, 1, 500)
	e.Metadata = map[string]string{"token": "bitcoin"}

	mock.ExpectExec("INSERT INTO usage_events").
		WithArgs(e.RequestID, "signal", "charge", int64(1), int64(500),
			e.Timestamp, []byte(`{"token":"bitcoin"}`)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	m := metering.NewSQLMeter(db)
	require.NoError(t, m.Record(context.Background(), e))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLMeter_Record_NilMetadata(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	e := metering.NewEvent("news", metering.KindSelection, 1, 0)

	mock.ExpectExec("INSERT INTO usage_events").
		WithArgs(e.RequestID, "news", "selection", int64(1), int64(0),
			e.Timestamp, []byte(nil)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	m := metering.NewSQLMeter(db)
	require.NoError(t, m.Record(context.Background(), e))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLMeter_Record_InvalidNeverHitsDB(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m := metering.NewSQLMeter(db)
	err = m.Record(context.Background(), metering.Event{Kind: metering.KindCharge, Quantity: 1})
	assert.ErrorIs(t, err, metering.ErrEmptyCapabilityID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLMeter_RecordBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	a := metering.NewEvent("signal", metering.KindSelection, 1, 0)
	b := metering.NewEvent("signal", metering.KindCharge, 1, 500)

	mock.ExpectBegin()
	stmt := mock.ExpectPrepare("INSERT INTO usage_events")
	stmt.ExpectExec().
		WithArgs(a.RequestID, "signal", "selection", int64(1), int64(0), a.Timestamp, []byte(nil)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	stmt.ExpectExec().
		WithArgs(b.RequestID, "signal", "charge", int64(1), int64(500), b.Timestamp, []byte(nil)).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	m := metering.NewSQLMeter(db)
	require.NoError(t, m.RecordBatch(context.Background(), []metering.Event{a, b}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLMeter_RecordBatch_RollsBackOnInvalid(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	a := metering.NewEvent("signal", metering.KindSelection, 1, 0)

	mock.ExpectBegin()
	stmt := mock.ExpectPrepare("INSERT INTO usage_events")
	stmt.ExpectExec().
		WithArgs(a.RequestID, "signal", "selection", int64(1), int64(0), a.Timestamp, []byte(nil)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	bad := metering.Event{Kind: metering.KindCharge, Quantity: 1} // no capability id
	m := metering.NewSQLMeter(db)
	err = m.RecordBatch(context.Background(), []metering.Event{a, bad})
	assert.ErrorIs(t, err, metering.ErrEmptyCapabilityID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLMeter_TotalsFor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"kind", "quantity", "amount_minor"}).
		AddRow("selection", int64(3), int64(0)).
		AddRow("charge", int64(2), int64(1000))

	mock.ExpectQuery("SELECT kind, COALESCE").
		WithArgs("signal").
		WillReturnRows(rows)

	m := metering.NewSQLMeter(db)
	totals, err := m.TotalsFor(context.Background(), "signal")
	require.NoError(t, err)
	assert.Equal(t, "signal", totals.CapabilityID)
	assert.Equal(t, int64(3), totals.Counts[metering.KindSelection])
	assert.Equal(t, int64(2), totals.Counts[metering.KindCharge])
	assert.Equal(t, int64(1000), totals.AmountMinor)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLMeter_TotalsFor_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT kind, COALESCE").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"kind", "quantity", "amount_minor"}))

	m := metering.NewSQLMeter(db)
	totals, err := m.TotalsFor(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Empty(t, totals.Counts)
	assert.Equal(t, int64(0), totals.AmountMinor)
	assert.NoError(t, mock.ExpectationsWereMet())
}
