package booking

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// record формат бронирования в bookings.json
// Совместим с файлом, который писал прежний сервер (поля createdAt/paidAt/... могут отсутствовать)
type record struct {
	ID                 int64      `json:"id"`
	Building           string     `json:"building"`
	Slot               string     `json:"slot"`
	CustomerName       string     `json:"customerName"`
	CustomerPhone      string     `json:"customerPhone"`
	BookingTime        time.Time  `json:"bookingTime"`
	Status             string     `json:"status"`
	Paid               bool       `json:"paid"`
	PaymentDueAt       time.Time  `json:"paymentDueAt"`
	CreatedAt          time.Time  `json:"createdAt"`
	PaidAt             *time.Time `json:"paidAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason string     `json:"cancellationReason,omitempty"`
}

func fromDomain(b domain.Booking) record {
	return record{
		ID:                 b.ID,
		Building:           b.Building,
		Slot:               b.Slot,
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		BookingTime:        b.BookingTime,
		Status:             string(b.Status),
		Paid:               b.Paid,
		PaymentDueAt:       b.PaymentDueAt,
		CreatedAt:          b.CreatedAt,
		PaidAt:             b.PaidAt,
		CancelledAt:        b.CancelledAt,
		CancellationReason: string(b.CancellationReason),
	}
}

func (r record) toDomain() domain.Booking {
	return domain.Booking{
		ID:                 r.ID,
		Building:           r.Building,
		Slot:               r.Slot,
		CustomerName:       r.CustomerName,
		CustomerPhone:      r.CustomerPhone,
		BookingTime:        r.BookingTime,
		Status:             domain.BookingStatus(r.Status),
		Paid:               r.Paid,
		PaymentDueAt:       r.PaymentDueAt,
		CreatedAt:          r.CreatedAt,
		PaidAt:             r.PaidAt,
		CancelledAt:        r.CancelledAt,
		CancellationReason: domain.CancellationReason(r.CancellationReason),
	}
}
