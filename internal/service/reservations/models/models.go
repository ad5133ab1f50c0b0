package models

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/occupancy"
)

// Request модели

// CreateBookingRequest запрос на создание бронирования
type CreateBookingRequest struct {
	Building      string
	Slot          string
	CustomerName  string
	CustomerPhone string
	BookingTime   string // RFC 3339 или локальное время парковки, пусто = сейчас
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64     `json:"id"`
	Building      string    `json:"building"`
	Slot          string    `json:"slot"`
	CustomerName  string    `json:"customerName"`
	CustomerPhone string    `json:"customerPhone"`
	BookingTime   time.Time `json:"bookingTime"`
	Status        string    `json:"status"`
	Paid          bool      `json:"paid"`
	PaymentDueAt  time.Time `json:"paymentDueAt"`
	CreatedAt     time.Time `json:"createdAt"`

	PaidAt             *time.Time `json:"paidAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
}

// BuildingOccupancy состояние одного здания
type BuildingOccupancy struct {
	SensorOccupied  []bool `json:"sensorOccupied"`
	ReservationHeld []bool `json:"reservationHeld"`
	Bookable        []bool `json:"bookable"`
}

// OccupancyResponse состояние всех зданий
// В JSON дополнительно отдаются плоские ключи board<Building> с показаниями датчиков
type OccupancyResponse struct {
	Buildings   map[string]BuildingOccupancy
	Order       []string
	LastUpdated time.Time
}

// MarshalJSON формирует {"boardA": [...], ..., "buildings": {...}, "lastUpdated": ...}
func (o OccupancyResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(o.Buildings)+2)
	for _, name := range o.Order {
		if state, ok := o.Buildings[name]; ok {
			out[BoardKey(name)] = state.SensorOccupied
		}
	}
	out["buildings"] = o.Buildings
	out["lastUpdated"] = o.LastUpdated
	return json.Marshal(out)
}

// DeletedBookingResponse данные события booking_deleted
type DeletedBookingResponse struct {
	ID      int64            `json:"id"`
	Booking *BookingResponse `json:"booking"`
}

// Методы конвертации

// BoardKey ключ вектора датчиков здания в API ("boardA")
func BoardKey(building string) string {
	return "board" + building
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            b.ID,
		Building:      b.Building,
		Slot:          b.Slot,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		BookingTime:   b.BookingTime,
		Status:        string(b.Status),
		Paid:          b.Paid,
		PaymentDueAt:  b.PaymentDueAt,
		CreatedAt:     b.CreatedAt,
		PaidAt:        b.PaidAt,
		CancelledAt:   b.CancelledAt,
	}

	if b.CancellationReason != "" {
		reason := string(b.CancellationReason)
		resp.CancellationReason = &reason
	}

	return resp
}

// FromDomainBookings конвертирует список бронирований
func FromDomainBookings(bookings []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, *FromDomainBooking(&bookings[i]))
	}
	return out
}

// FromSnapshot конвертирует снимок хранилища занятости
func FromSnapshot(s occupancy.Snapshot) *OccupancyResponse {
	resp := &OccupancyResponse{
		Buildings:   make(map[string]BuildingOccupancy, len(s.Buildings)),
		Order:       s.Order,
		LastUpdated: s.LastUpdated,
	}
	for name, state := range s.Buildings {
		resp.Buildings[name] = BuildingOccupancy{
			SensorOccupied:  state.SensorOccupied,
			ReservationHeld: state.ReservationHeld,
			Bookable:        state.Bookable,
		}
	}
	return resp
}
