package ledger

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Store хранилище полного набора бронирований (файл или PostgreSQL)
type Store interface {
	SaveAll(ctx context.Context, bookings []domain.Booking) error
	LoadAll(ctx context.Context) ([]domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
