// Package reservations is the booking state machine.
//
// Service is the single writer of the booking ledger and the occupancy store.
// Every exported operation, including payment-timer callbacks and observer
// subscription, runs as one turn under Service.mu: state transitions, the
// derived reservation vectors and the broadcast enqueue of a turn are
// observed by everyone else as a single step.
package reservations

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/ledger"
	"github.com/m04kA/SMC-ParkingService/internal/service/occupancy"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations/models"
)

// Названия переходов для метрик
const (
	transitionCreated   = "created"
	transitionPaid      = "paid"
	transitionCancelled = "cancelled"
	transitionExpired   = "expired"
	transitionSlotTaken = "slot_taken"
	transitionDeleted   = "deleted"
)

// Options параметры бизнес-правил
type Options struct {
	PaymentWindow time.Duration
	ClockSkew     time.Duration
	Hours         domain.BusinessHours
	Location      *time.Location
}

// Service сервис бронирования парковочных мест
type Service struct {
	mu sync.Mutex

	ledger    *ledger.Ledger
	occupancy *occupancy.Store
	scheduler Scheduler
	hub       Broadcaster

	opts         Options
	timeProvider TimeProvider
	logger       Logger
	metrics      Metrics

	lastID int64
}

// NewService создает новый экземпляр сервиса. metrics может быть nil
func NewService(
	ledger *ledger.Ledger,
	occupancy *occupancy.Store,
	scheduler Scheduler,
	hub Broadcaster,
	opts Options,
	logger Logger,
	metrics Metrics,
) *Service {
	if opts.PaymentWindow <= 0 {
		opts.PaymentWindow = domain.DefaultPaymentWindow
	}
	if opts.ClockSkew < 0 {
		opts.ClockSkew = 0
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	return &Service{
		ledger:       ledger,
		occupancy:    occupancy,
		scheduler:    scheduler,
		hub:          hub,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		metrics:      metrics,
	}
}

// nextID выдаёт строго возрастающий ID на основе времени в миллисекундах
func (s *Service) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// commit пересчитывает производный вектор резервирования и сохраняет реестр
// Ошибка записи только логируется: состояние в памяти остаётся основным
func (s *Service) commit(ctx context.Context, op string) {
	s.occupancy.RecomputeReservationHeld(s.ledger.List())

	if err := s.ledger.Persist(context.WithoutCancel(ctx)); err != nil {
		s.metrics.PersistFailed()
		s.logger.Error("%s: failed to persist bookings: %v", op, err)
	}
}

func (s *Service) publishBooking(eventType domain.EventType, b *domain.Booking) {
	s.hub.Broadcast(domain.Event{Type: eventType, Data: models.FromDomainBooking(b)})
}

func (s *Service) publishOccupancy(eventType domain.EventType) {
	s.hub.Broadcast(domain.Event{Type: eventType, Data: s.occupancySnapshot()})
}

func (s *Service) occupancySnapshot() *models.OccupancyResponse {
	return models.FromSnapshot(s.occupancy.Snapshot())
}

func (s *Service) armPaymentTimer(id int64, delay time.Duration) {
	s.scheduler.Arm(id, delay, s.onPaymentTimeout)
}

// onPaymentTimeout колбэк таймера оплаты, выполняется в собственном ходе
func (s *Service) onPaymentTimeout(id int64) {
	s.Expire(context.Background(), id)
}
