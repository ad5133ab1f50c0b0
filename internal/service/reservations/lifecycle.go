package reservations

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Start восстанавливает состояние после перезапуска
//
// Реестр загружается из хранилища (ошибка чтения не фатальна), вектор резервирования
// пересчитывается, таймеры неоплаченных бронирований взводятся заново от paymentDueAt,
// просроченные отменяются сразу. Если в данных несколько активных бронирований одного слота,
// место остаётся за бронированием с наименьшим ID, остальные отменяются с причиной slot_taken.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ledger.Load(ctx); err != nil {
		s.logger.Warn("Start: continuing with empty ledger: %v", err)
	}
	s.lastID = s.ledger.MaxID()

	now := s.timeProvider.Now().UTC()
	var changed []domain.Booking

	changed = append(changed, s.resolveDoubleReservations(now)...)

	rearmed := 0
	for _, b := range s.ledger.ListByStatus(domain.StatusPendingPayment) {
		if !b.CanExpire() {
			continue
		}
		if b.IsPaymentOverdue(now) {
			if cancelled, ok := s.expireLocked(b.ID, now); ok {
				changed = append(changed, cancelled)
			}
			continue
		}
		s.armPaymentTimer(b.ID, b.PaymentDueAt.Sub(now))
		rearmed++
	}

	s.occupancy.RecomputeReservationHeld(s.ledger.List())
	if len(changed) > 0 {
		s.commit(ctx, "Start")
		for i := range changed {
			s.publishBooking(domain.EventBookingCancelled, &changed[i])
		}
	}

	s.logger.Info("Start: %d bookings restored, %d payment timers re-armed, %d bookings cancelled",
		s.ledger.Len(), rearmed, len(changed))
	return nil
}

// resolveDoubleReservations оставляет на каждом слоте одно активное бронирование. Вызывается под s.mu
func (s *Service) resolveDoubleReservations(now time.Time) []domain.Booking {
	active := s.ledger.ListActive()
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })

	holders := make(map[string]int64, len(active))
	var cancelled []domain.Booking
	for _, b := range active {
		if holder, taken := holders[b.Slot]; taken {
			s.logger.Warn("Start: slot=%s is held by booking id=%d, cancelling booking id=%d", b.Slot, holder, b.ID)
			at := now
			updated, err := s.ledger.Update(b.ID, func(rec *domain.Booking) {
				rec.Status = domain.StatusCancelled
				rec.CancelledAt = &at
				rec.CancellationReason = domain.ReasonSlotTaken
			})
			if err == nil {
				s.metrics.BookingTransition(transitionSlotTaken)
				cancelled = append(cancelled, updated)
			}
			continue
		}
		holders[b.Slot] = b.ID
	}
	return cancelled
}

// Stop отменяет все таймеры оплаты
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scheduler.Stop()
	s.logger.Info("Stop: payment timers stopped")
}
