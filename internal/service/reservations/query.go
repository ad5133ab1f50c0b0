package reservations

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations/models"
)

// Get возвращает бронирование по ID
func (s *Service) Get(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking, err := s.ledger.Find(id)
	if err != nil {
		return nil, s.notFound("Get", id, err)
	}
	return models.FromDomainBooking(&booking), nil
}

// ListBookings возвращает реестр, сначала новые. Пустой status означает все записи
func (s *Service) ListBookings(ctx context.Context, status string) ([]models.BookingResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status == "" {
		return models.FromDomainBookings(s.ledger.List()), nil
	}

	st := domain.BookingStatus(status)
	if !domain.IsValidStatus(st) {
		s.logger.Warn("ListBookings: invalid status filter=%q", status)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return models.FromDomainBookings(s.ledger.ListByStatus(st)), nil
}

// ListActive возвращает оплаченные бронирования по убыванию ID
func (s *Service) ListActive(ctx context.Context) []models.BookingResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.FromDomainBookings(s.ledger.ListActive())
}

// Occupancy возвращает снимок занятости
func (s *Service) Occupancy(ctx context.Context) *models.OccupancyResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.occupancySnapshot()
}
