package create_booking

import (
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations/models"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Building      string  `json:"building"`
	Slot          string  `json:"slot"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	BookingTime   *string `json:"bookingTime,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateBookingRequest) ToServiceRequest() *models.CreateBookingRequest {
	bookingTime := ""
	if r.BookingTime != nil {
		bookingTime = *r.BookingTime
	}

	return &models.CreateBookingRequest{
		Building:      r.Building,
		Slot:          r.Slot,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		BookingTime:   bookingTime,
	}
}
