package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Expire отменяет неоплаченное бронирование по истечении окна оплаты
// Возвращает false, если бронирование уже оплачено, отменено или удалено
func (s *Service) Expire(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cancelled, ok := s.expireLocked(id, s.timeProvider.Now().UTC())
	if !ok {
		return false
	}

	s.commit(ctx, "Expire")
	s.publishBooking(domain.EventBookingCancelled, &cancelled)
	return true
}

// expireLocked выполняет переход без сохранения и рассылки. Вызывается под s.mu
func (s *Service) expireLocked(id int64, now time.Time) (domain.Booking, bool) {
	booking, err := s.ledger.Find(id)
	if err != nil {
		s.logger.Info("Expire: booking id=%d no longer exists", id)
		return domain.Booking{}, false
	}

	if !booking.CanExpire() {
		s.logger.Info("Expire: booking id=%d has status=%s, nothing to do", id, booking.Status)
		return domain.Booking{}, false
	}

	cancelled, err := s.ledger.Update(id, func(b *domain.Booking) {
		b.Status = domain.StatusCancelled
		b.CancelledAt = &now
		b.CancellationReason = domain.ReasonPaymentExpired
	})
	if err != nil {
		s.logger.Error("Expire: failed to update booking id=%d: %v", id, err)
		return domain.Booking{}, false
	}
	s.scheduler.Cancel(id)
	s.metrics.BookingTransition(transitionExpired)

	s.logger.Info("Expire: booking id=%d cancelled, payment window closed", id)
	return cancelled, true
}
