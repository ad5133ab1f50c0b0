package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgMissingFields      = "Missing required fields"
	msgInvalidSlot        = "Invalid parking slot"
	msgSlotOccupied       = "Parking slot is already occupied"
	msgInvalidTime        = "Invalid booking time"
	msgTimeInPast         = "Booking time cannot be in the past"
	msgOutsideHours       = "Booking time is outside business hours"
	msgCreated            = "Booking created successfully"
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

// Handle POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrMissingFields):
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, reservations.ErrInvalidSlot):
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, reservations.ErrSlotOccupied):
			handlers.RespondBadRequest(w, msgSlotOccupied)

		case errors.Is(err, reservations.ErrTimeInPast):
			handlers.RespondBadRequest(w, msgTimeInPast)

		case errors.Is(err, reservations.ErrOutsideBusinessHours):
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, reservations.ErrInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: building=%s, slot=%s, error=%v",
				req.Building, req.Slot, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("POST /bookings - Rejected: building=%s, slot=%s, reason=%v", req.Building, req.Slot, err)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, slot=%s", booking.ID, booking.Slot)
	handlers.RespondSuccess(w, msgCreated, booking)
}
