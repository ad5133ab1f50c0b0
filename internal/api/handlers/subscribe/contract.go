package subscribe

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/broadcast"
)

type Subscriber interface {
	Subscribe(ctx context.Context, name string, w broadcast.Writer) (*broadcast.Client, error)
	Unsubscribe(id uint64)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
