package reservations

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations/models"
)

// validateRequiredFields проверяет обязательные поля и разбирает слот
func (s *Service) validateRequiredFields(req *models.CreateBookingRequest) (domain.SlotRef, error) {
	if strings.TrimSpace(req.Building) == "" ||
		strings.TrimSpace(req.Slot) == "" ||
		strings.TrimSpace(req.CustomerName) == "" ||
		strings.TrimSpace(req.CustomerPhone) == "" {
		return domain.SlotRef{}, ErrMissingFields
	}

	ref, err := domain.ParseSlot(req.Building, req.Slot)
	if err != nil {
		return domain.SlotRef{}, fmt.Errorf("%w: building=%q slot=%q: %v", ErrInvalidSlot, req.Building, req.Slot, err)
	}
	if !s.occupancy.Layout().Contains(ref) {
		return domain.SlotRef{}, fmt.Errorf("%w: %s is not on the board", ErrInvalidSlot, ref)
	}

	return ref, nil
}

// resolveBookingTime разбирает необязательное время бронирования
// Пустое значение означает "сейчас" и не проверяется на рабочие часы
func (s *Service) resolveBookingTime(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now, nil
	}

	t, err := parseBookingTime(raw, s.opts.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, raw)
	}

	if t.Before(now.Add(-s.opts.ClockSkew)) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrTimeInPast, t.Format(time.RFC3339))
	}

	local := t.In(s.opts.Location)
	if !s.opts.Hours.Contains(local) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrOutsideBusinessHours, local.Format(domain.TimeFormat))
	}

	return t, nil
}

// parseBookingTime принимает RFC 3339 либо локальное время парковки без смещения
func parseBookingTime(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	var lastErr error
	for _, layout := range domain.LocalBookingTimeLayouts {
		t, err := time.ParseInLocation(layout, raw, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
