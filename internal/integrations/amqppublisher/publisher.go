package amqppublisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeKind = "topic"
	routingRoot  = "parking"
	contentType  = "application/json"
)

// Publisher отправляет события парковки в topic exchange RabbitMQ
// Ключ маршрутизации: parking.<тип события>, например parking.booking_paid
type Publisher struct {
	conn     io.Closer
	ch       Channel
	exchange string
	log      Logger
	now      func() time.Time
}

// Dial подключается к брокеру и объявляет durable topic exchange
func Dial(url, exchange string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := ch.ExchangeDeclare(exchange, exchangeKind, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	log.Info("AMQP publisher connected: exchange=%s", exchange)
	return newPublisher(conn, ch, exchange, log), nil
}

func newPublisher(conn io.Closer, ch Channel, exchange string, log Logger) *Publisher {
	return &Publisher{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		log:      log,
		now:      time.Now,
	}
}

// RoutingKey ключ маршрутизации для типа события
func RoutingKey(eventType string) string {
	return routingRoot + "." + eventType
}

// WriteMessage публикует один кадр события
// Ошибка возвращается только если канал закрыт: тогда наблюдатель снимается с рассылки.
// Прочие сбои публикации логируются, кадр теряется.
func (p *Publisher) WriteMessage(ctx context.Context, payload []byte) error {
	var header frameHeader
	if err := json.Unmarshal(payload, &header); err != nil || header.Type == "" {
		p.log.Warn("AMQP publisher: skip frame without type: %v", err)
		return nil
	}

	err := p.ch.PublishWithContext(ctx, p.exchange, RoutingKey(header.Type), false, false, amqp.Publishing{
		ContentType:  contentType,
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now().UTC(),
		Type:         header.Type,
		Body:         payload,
	})
	if err == nil {
		return nil
	}

	if errors.Is(err, amqp.ErrClosed) {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.log.Error("AMQP publisher: failed to publish %s to exchange=%s: %v", header.Type, p.exchange, err)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
