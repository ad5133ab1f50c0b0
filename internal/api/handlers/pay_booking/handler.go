package pay_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations"
)

const (
	msgInvalidBookingID = "Invalid booking ID"
	msgNotFound         = "Booking not found"
	msgNotPending       = "Booking is not pending payment"
	msgSlotTaken        = "Parking slot is no longer available, booking cancelled"
	msgPaid             = "Payment confirmed"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/bookings/{bookingId}/pay
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.BookingID(r)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/pay - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.ConfirmPayment(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrNotFound):
			h.logger.Warn("POST /bookings/{id}/pay - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrNotPending):
			h.logger.Warn("POST /bookings/{id}/pay - Not pending: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNotPending)

		case errors.Is(err, reservations.ErrSlotTaken):
			h.logger.Warn("POST /bookings/{id}/pay - Slot taken, booking cancelled: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgSlotTaken)

		default:
			h.logger.Error("POST /bookings/{id}/pay - Failed to confirm payment: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/pay - Payment confirmed: booking_id=%d, slot=%s", bookingID, booking.Slot)
	handlers.RespondSuccess(w, msgPaid, booking)
}
