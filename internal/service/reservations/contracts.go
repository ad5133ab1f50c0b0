package reservations

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/broadcast"
)

// Scheduler планировщик истечения окна оплаты
type Scheduler interface {
	Arm(id int64, delay time.Duration, fn func(id int64))
	Cancel(id int64)
	Stop()
}

// Broadcaster реестр наблюдателей
type Broadcaster interface {
	Register(name string, w broadcast.Writer, initial ...domain.Event) (*broadcast.Client, error)
	Unregister(id uint64)
	Broadcast(ev domain.Event) int
}

// Metrics хуки метрик сервиса
type Metrics interface {
	BookingTransition(transition string)
	PersistFailed()
	SensorPush(building, result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type nopMetrics struct{}

func (nopMetrics) BookingTransition(string)  {}
func (nopMetrics) PersistFailed()            {}
func (nopMetrics) SensorPush(string, string) {}
