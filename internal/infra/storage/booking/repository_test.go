package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresStore(db), mock
}

func TestPostgresStore_EnsureSchema(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveAll(t *testing.T) {
	store, mock := newMockStore(t)
	bookings := sampleBookings()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM bookings").
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(
			bookings[0].ID, 0, "B", "B3", "Somchai", "0812345678", bookings[0].BookingTime, "pending_payment", false,
			bookings[0].PaymentDueAt, bookings[0].CreatedAt, nil, nil, "",
			bookings[1].ID, 1, "A", "A1", "Malee", "0899999999", bookings[1].BookingTime, "active", true,
			bookings[1].PaymentDueAt, bookings[1].CreatedAt, *bookings[1].PaidAt, nil, "",
			bookings[2].ID, 2, "A", "A2", "Niran", "0800000000", bookings[2].BookingTime, "cancelled", false,
			bookings[2].PaymentDueAt, bookings[2].CreatedAt, nil, *bookings[2].CancelledAt, "payment_expired",
		).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, store.SaveAll(context.Background(), bookings))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveAll_Empty(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM bookings").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, store.SaveAll(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveAll_RollsBackOnError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := store.SaveAll(context.Background(), sampleBookings())
	require.ErrorIs(t, err, ErrExecQuery)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveAll_BeginFails(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	err := store.SaveAll(context.Background(), sampleBookings())
	require.ErrorIs(t, err, ErrTransaction)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadAll(t *testing.T) {
	store, mock := newMockStore(t)
	want := sampleBookings()

	rows := sqlmock.NewRows(bookingColumns)
	for i, b := range want {
		var paidAt, cancelledAt interface{}
		if b.PaidAt != nil {
			paidAt = *b.PaidAt
		}
		if b.CancelledAt != nil {
			cancelledAt = *b.CancelledAt
		}
		rows.AddRow(
			b.ID, i, b.Building, b.Slot, b.CustomerName, b.CustomerPhone, b.BookingTime,
			string(b.Status), b.Paid, b.PaymentDueAt, b.CreatedAt, paidAt, cancelledAt, string(b.CancellationReason),
		)
	}

	mock.ExpectQuery("SELECT (.+) FROM bookings ORDER BY position ASC").WillReturnRows(rows)

	got, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadAll_QueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings").WillReturnError(errors.New("relation does not exist"))

	_, err := store.LoadAll(context.Background())
	require.ErrorIs(t, err, ErrExecQuery)
}

func TestPostgresStore_SaveAll_SplitsLargeLedger(t *testing.T) {
	store, mock := newMockStore(t)

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	bookings := make([]domain.Booking, insertBatchSize+1)
	for i := range bookings {
		bookings[i] = domain.Booking{
			ID:            int64(10_000 - i),
			Building:      "A",
			Slot:          "A1",
			CustomerName:  "Somchai",
			CustomerPhone: "0812345678",
			BookingTime:   base,
			Status:        domain.StatusCancelled,
			PaymentDueAt:  base,
			CreatedAt:     base,
		}
	}
	last := bookings[insertBatchSize]

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(fmt.Sprintf(`INSERT INTO bookings .+ VALUES \(\$1,.+\$%d\)$`, insertBatchSize*len(bookingColumns))).
		WillReturnResult(sqlmock.NewResult(0, insertBatchSize))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(
			last.ID, insertBatchSize, "A", "A1", "Somchai", "0812345678", base, "cancelled", false,
			base, base, nil, nil, "",
		).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.SaveAll(context.Background(), bookings))
	require.NoError(t, mock.ExpectationsWereMet())
	assert.LessOrEqual(t, insertBatchSize*len(bookingColumns), 65535)
}
