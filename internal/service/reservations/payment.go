package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/ledger"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations/models"
)

// ConfirmPayment переводит бронирование pending_payment -> active
// Если слот к этому моменту занят (оплачено другое бронирование или датчик сообщил о машине),
// бронирование отменяется с причиной slot_taken и возвращается ErrSlotTaken.
func (s *Service) ConfirmPayment(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("ConfirmPayment: booking id=%d", id)

	booking, err := s.ledger.Find(id)
	if err != nil {
		return nil, s.notFound("ConfirmPayment", id, err)
	}

	if !booking.IsPending() {
		s.logger.Warn("ConfirmPayment: booking id=%d has status=%s", id, booking.Status)
		return nil, fmt.Errorf("%w: id=%d status=%s", ErrNotPending, id, booking.Status)
	}

	now := s.timeProvider.Now().UTC()
	ref, parseErr := domain.ParseSlot(booking.Building, booking.Slot)
	if parseErr != nil || !s.occupancy.IsBookable(ref) {
		cancelled, err := s.ledger.Update(id, func(b *domain.Booking) {
			b.Status = domain.StatusCancelled
			b.CancelledAt = &now
			b.CancellationReason = domain.ReasonSlotTaken
		})
		if err != nil {
			return nil, s.notFound("ConfirmPayment", id, err)
		}
		s.scheduler.Cancel(id)
		s.commit(ctx, "ConfirmPayment")
		s.metrics.BookingTransition(transitionSlotTaken)
		s.publishBooking(domain.EventBookingCancelled, &cancelled)

		s.logger.Warn("ConfirmPayment: slot=%s is no longer available (reserved=%t), booking id=%d cancelled",
			booking.Slot, parseErr == nil && s.occupancy.IsReservationHeld(ref), id)
		return nil, fmt.Errorf("%w: id=%d slot=%s", ErrSlotTaken, id, booking.Slot)
	}

	paid, err := s.ledger.Update(id, func(b *domain.Booking) {
		b.Paid = true
		b.Status = domain.StatusActive
		b.PaidAt = &now
	})
	if err != nil {
		return nil, s.notFound("ConfirmPayment", id, err)
	}
	s.scheduler.Cancel(id)
	s.commit(ctx, "ConfirmPayment")
	s.metrics.BookingTransition(transitionPaid)
	s.publishBooking(domain.EventBookingPaid, &paid)
	s.publishOccupancy(domain.EventOccupancyUpdate)

	s.logger.Info("ConfirmPayment: booking id=%d is active, slot=%s reserved", id, paid.Slot)
	return models.FromDomainBooking(&paid), nil
}

func (s *Service) notFound(op string, id int64, err error) error {
	if errors.Is(err, ledger.ErrNotFound) {
		s.logger.Warn("%s: booking id=%d not found", op, id)
		return fmt.Errorf("%w: id=%d", ErrNotFound, id)
	}
	s.logger.Error("%s: ledger error for booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - ledger error: %v", ErrInternal, op, err)
}
