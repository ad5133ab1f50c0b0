package list_active_bookings

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/reservations/models"
)

type BookingService interface {
	ListActive(ctx context.Context) []models.BookingResponse
}
