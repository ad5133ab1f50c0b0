package reservations

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations/models"
)

// Create создает бронирование в статусе pending_payment
//
// Проверки выполняются по порядку до первой ошибки:
//  1. обязательные поля и существование слота
//  2. слот не занят по данным датчика (резервирование здесь не проверяется)
//  3. время бронирования не в прошлом и попадает в рабочие часы
//
// Несколько неоплаченных бронирований одного слота допустимы: место получает первое оплаченное.
func (s *Service) Create(ctx context.Context, req *models.CreateBookingRequest) (*models.BookingResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Info("Create: building=%s, slot=%s, bookingTime=%q", req.Building, req.Slot, req.BookingTime)

	ref, err := s.validateRequiredFields(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if s.occupancy.IsSensorOccupied(ref) {
		s.logger.Warn("Create: slot=%s is occupied by sensor", ref)
		return nil, fmt.Errorf("%w: slot=%s", ErrSlotOccupied, ref)
	}

	now := s.timeProvider.Now()
	bookingTime, err := s.resolveBookingTime(req.BookingTime, now)
	if err != nil {
		s.logger.Warn("Create: invalid booking time for slot=%s: %v", ref, err)
		return nil, err
	}

	booking := domain.Booking{
		ID:            s.nextID(now),
		Building:      ref.Building,
		Slot:          ref.Key(),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		BookingTime:   bookingTime.UTC(),
		Status:        domain.StatusPendingPayment,
		Paid:          false,
		PaymentDueAt:  now.Add(s.opts.PaymentWindow).UTC(),
		CreatedAt:     now.UTC(),
	}

	if err := s.ledger.Append(booking); err != nil {
		s.logger.Error("Create: failed to append booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: Create - append: %v", ErrInternal, err)
	}

	s.commit(ctx, "Create")
	s.armPaymentTimer(booking.ID, s.opts.PaymentWindow)
	s.metrics.BookingTransition(transitionCreated)
	s.publishBooking(domain.EventBookingCreated, &booking)

	s.logger.Info("Create: booking id=%d created for slot=%s, payment due at %s",
		booking.ID, booking.Slot, booking.PaymentDueAt.Format("15:04:05"))
	return models.FromDomainBooking(&booking), nil
}
