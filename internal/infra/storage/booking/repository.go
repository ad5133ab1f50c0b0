package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const createTableQuery = `
CREATE TABLE IF NOT EXISTS bookings (
	id                  BIGINT PRIMARY KEY,
	position            INTEGER NOT NULL,
	building            TEXT NOT NULL,
	slot                TEXT NOT NULL,
	customer_name       TEXT NOT NULL,
	customer_phone      TEXT NOT NULL,
	booking_time        TIMESTAMPTZ NOT NULL,
	status              TEXT NOT NULL,
	paid                BOOLEAN NOT NULL DEFAULT FALSE,
	payment_due_at      TIMESTAMPTZ NOT NULL,
	created_at          TIMESTAMPTZ NOT NULL,
	paid_at             TIMESTAMPTZ NULL,
	cancelled_at        TIMESTAMPTZ NULL,
	cancellation_reason TEXT NOT NULL DEFAULT ''
)`

// insertBatchSize строк в одном INSERT: 14 параметров на строку, лимит протокола PostgreSQL 65535
const insertBatchSize = 4000

var bookingColumns = []string{
	"id",
	"position",
	"building",
	"slot",
	"customer_name",
	"customer_phone",
	"booking_time",
	"status",
	"paid",
	"payment_due_at",
	"created_at",
	"paid_at",
	"cancelled_at",
	"cancellation_reason",
}

// PostgresStore хранит набор бронирований в таблице bookings
// Порядок реестра (сначала новые) сохраняется в колонке position
type PostgresStore struct {
	db DB
}

// NewPostgresStore создает новый экземпляр хранилища
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema создает таблицу bookings, если её нет
func (r *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTableQuery); err != nil {
		return fmt.Errorf("%w: EnsureSchema - create table: %v", ErrExecQuery, err)
	}
	return nil
}

// SaveAll заменяет весь набор бронирований в одной транзакции
func (r *PostgresStore) SaveAll(ctx context.Context, bookings []domain.Booking) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: SaveAll - begin: %v", ErrTransaction, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("bookings").ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveAll - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err = tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: SaveAll - execute delete: %v", ErrExecQuery, err)
	}

	for offset := 0; offset < len(bookings); offset += insertBatchSize {
		end := offset + insertBatchSize
		if end > len(bookings) {
			end = len(bookings)
		}
		if err = r.insertBatch(ctx, tx, bookings[offset:end], offset); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: SaveAll - commit: %v", ErrTransaction, err)
	}

	return nil
}

// insertBatch вставляет часть реестра; position продолжает нумерацию с offset
func (r *PostgresStore) insertBatch(ctx context.Context, tx *sql.Tx, bookings []domain.Booking, offset int) error {
	insert := psqlbuilder.Insert("bookings").Columns(bookingColumns...)
	for i, b := range bookings {
		insert = insert.Values(
			b.ID,
			offset+i,
			b.Building,
			b.Slot,
			b.CustomerName,
			b.CustomerPhone,
			b.BookingTime,
			string(b.Status),
			b.Paid,
			b.PaymentDueAt,
			b.CreatedAt,
			b.PaidAt,
			b.CancelledAt,
			string(b.CancellationReason),
		)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: SaveAll - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SaveAll - execute insert rows %d-%d: %v", ErrExecQuery, offset, offset+len(bookings)-1, err)
	}
	return nil
}

// LoadAll читает все бронирования в порядке реестра
func (r *PostgresStore) LoadAll(ctx context.Context) ([]domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: LoadAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: LoadAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *PostgresStore) scanBookings(rows *sql.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)

	for rows.Next() {
		var (
			rec                 record
			position            int
			paidAt, cancelledAt sql.NullTime
		)

		err := rows.Scan(
			&rec.ID,
			&position,
			&rec.Building,
			&rec.Slot,
			&rec.CustomerName,
			&rec.CustomerPhone,
			&rec.BookingTime,
			&rec.Status,
			&rec.Paid,
			&rec.PaymentDueAt,
			&rec.CreatedAt,
			&paidAt,
			&cancelledAt,
			&rec.CancellationReason,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		if paidAt.Valid {
			t := paidAt.Time.UTC()
			rec.PaidAt = &t
		}
		if cancelledAt.Valid {
			t := cancelledAt.Time.UTC()
			rec.CancelledAt = &t
		}
		rec.BookingTime = rec.BookingTime.UTC()
		rec.PaymentDueAt = rec.PaymentDueAt.UTC()
		rec.CreatedAt = rec.CreatedAt.UTC()

		bookings = append(bookings, rec.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
