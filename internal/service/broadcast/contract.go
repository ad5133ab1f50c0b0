package broadcast

import "context"

// Writer транспорт наблюдателя (WebSocket-соединение, AMQP, Redis)
// WriteMessage и Close вызываются только из горутины-писателя клиента
type Writer interface {
	WriteMessage(ctx context.Context, payload []byte) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics хук для отслеживания количества наблюдателей
type Metrics interface {
	SetObservers(n int)
}
