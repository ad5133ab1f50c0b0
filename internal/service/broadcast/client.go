package broadcast

import (
	"context"
	"sync"
)

// Client зарегистрированный наблюдатель
type Client struct {
	id     uint64
	name   string
	hub    *Hub
	writer Writer
	queue  chan []byte

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
	done   chan struct{}
}

func newClient(h *Hub, id uint64, name string, w Writer, size int) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		id:     id,
		name:   name,
		hub:    h,
		writer: w,
		queue:  make(chan []byte, size),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// ID идентификатор наблюдателя в реестре
func (c *Client) ID() uint64 {
	return c.id
}

// Name имя наблюдателя для логов
func (c *Client) Name() string {
	return c.name
}

// Done закрывается, когда горутина-писатель завершилась и транспорт закрыт
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) enqueue(frame []byte) bool {
	if c.ctx.Err() != nil {
		return false
	}
	select {
	case c.queue <- frame:
		return true
	default:
		return false
	}
}

func (c *Client) stop() {
	c.once.Do(c.cancel)
}

func (c *Client) writeLoop() {
	defer close(c.done)
	defer func() {
		if err := c.writer.Close(); err != nil {
			c.hub.logger.Warn("writeLoop: observer id=%d close error: %v", c.id, err)
		}
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		case frame := <-c.queue:
			if err := c.writer.WriteMessage(c.ctx, frame); err != nil {
				if c.ctx.Err() == nil {
					c.hub.logger.Warn("writeLoop: observer id=%d name=%s write failed: %v", c.id, c.name, err)
				}
				c.hub.Unregister(c.id)
				return
			}
		}
	}
}
