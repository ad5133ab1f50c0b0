package redispublisher

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Client часть *redis.Client, которая нужна издателю
type Client interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Options параметры подключения
type Options struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}
