package redispublisher

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 2 * time.Second

// Publisher публикует кадры событий в канал Redis Pub/Sub
type Publisher struct {
	client  Client
	channel string
	log     Logger

	// idle канал без подписчиков; WriteMessage вызывается только из горутины записи хаба
	idle bool
}

// Connect создает клиента и проверяет доступность сервера
func Connect(ctx context.Context, opts Options, log Logger) (*Publisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrConnect, opts.Addr, err)
	}

	log.Info("Redis publisher connected: addr=%s, channel=%s", opts.Addr, opts.Channel)
	return NewPublisher(client, opts.Channel, log), nil
}

func NewPublisher(client Client, channel string, log Logger) *Publisher {
	return &Publisher{
		client:  client,
		channel: channel,
		log:     log,
	}
}

// WriteMessage публикует кадр как есть
// Клиент переподключается сам, поэтому ошибка публикации только логируется
func (p *Publisher) WriteMessage(ctx context.Context, payload []byte) error {
	receivers, err := p.client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.log.Error("Redis publisher: failed to publish to channel=%s: %v", p.channel, err)
		return nil
	}

	// Пишем в лог только смену состояния, а не каждый кадр
	switch {
	case receivers == 0 && !p.idle:
		p.idle = true
		p.log.Warn("Redis publisher: no subscribers on channel=%s, frames are dropped until one appears", p.channel)
	case receivers > 0 && p.idle:
		p.idle = false
		p.log.Info("Redis publisher: channel=%s has %d subscribers again", p.channel, receivers)
	}
	return nil
}

// Close закрывает клиента
func (p *Publisher) Close() error {
	return p.client.Close()
}
