package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresStoreAdd(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	appt := sampleAppointment()
	mock.ExpectExec("INSERT INTO appointments").
		WithArgs(
			appt.ID,
			appt.CustomerName,
			appt.Treatment,
			appt.PhoneNumber,
			appt.AppointmentAt,
			appt.ReminderAt,
			appt.BookedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewPostgresStore(mock)
	require.NoError(t, store.Add(context.Background(), appt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreAddWrapsErrors(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO appointments").
		WillReturnError(errors.New("connection reset"))

	store := NewPostgresStore(mock)
	err = store.Add(context.Background(), sampleAppointment())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "appointments: insert")
}

func TestPostgresStoreList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	at := time.Date(2025, 7, 4, 13, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{
		"id", "customer_name", "treatment", "phone_number", "appointment_at", "reminder_at", "booked_at",
	}).AddRow(id, "Anna", "manicure", "31612345678", at, at.Add(-3*time.Hour), at.Add(-26*time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM appointments").WillReturnRows(rows)

	store := NewPostgresStore(mock)
	got, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, "Anna", got[0].CustomerName)
	assert.Equal(t, 3*time.Hour, got[0].AppointmentAt.Sub(got[0].ReminderAt))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgresStoreRequiresQuerier(t *testing.T) {
	assert.Panics(t, func() { NewPostgresStore(nil) })
}
