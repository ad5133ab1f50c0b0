package reservations

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations/models"
)

// Cancel отменяет бронирование по запросу клиента
// Повторная отмена уже отменённого бронирования ничего не меняет и возвращает запись как есть
func (s *Service) Cancel(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("Cancel: booking id=%d", id)

	booking, err := s.ledger.Find(id)
	if err != nil {
		return nil, s.notFound("Cancel", id, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Info("Cancel: booking id=%d is already cancelled", id)
		return models.FromDomainBooking(&booking), nil
	}

	wasActive := booking.IsActive()
	now := s.timeProvider.Now().UTC()

	cancelled, err := s.ledger.Update(id, func(b *domain.Booking) {
		b.Status = domain.StatusCancelled
		b.CancelledAt = &now
		b.CancellationReason = domain.ReasonCustomer
	})
	if err != nil {
		return nil, s.notFound("Cancel", id, err)
	}
	s.scheduler.Cancel(id)
	s.commit(ctx, "Cancel")
	s.metrics.BookingTransition(transitionCancelled)
	s.publishBooking(domain.EventBookingCancelled, &cancelled)
	if wasActive {
		s.publishOccupancy(domain.EventOccupancyUpdate)
	}

	s.logger.Info("Cancel: booking id=%d cancelled, slot=%s released=%t", id, cancelled.Slot, wasActive)
	return models.FromDomainBooking(&cancelled), nil
}

// Delete окончательно удаляет бронирование (операция оператора)
func (s *Service) Delete(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("Delete: booking id=%d", id)

	removed, err := s.ledger.Remove(id)
	if err != nil {
		return nil, s.notFound("Delete", id, err)
	}

	s.scheduler.Cancel(id)
	s.commit(ctx, "Delete")
	s.metrics.BookingTransition(transitionDeleted)

	resp := models.FromDomainBooking(&removed)
	s.hub.Broadcast(domain.Event{
		Type: domain.EventBookingDeleted,
		Data: &models.DeletedBookingResponse{ID: removed.ID, Booking: resp},
	})
	if removed.IsActive() {
		s.publishOccupancy(domain.EventOccupancyUpdate)
	}

	s.logger.Info("Delete: booking id=%d removed, slot=%s", id, removed.Slot)
	return resp, nil
}
