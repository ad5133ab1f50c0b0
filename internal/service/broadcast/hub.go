// Package broadcast fans state-change events out to registered observers.
//
// Every observer owns a bounded FIFO queue drained by a single writer
// goroutine, so Broadcast never blocks on the network and each observer
// receives frames in the order they were broadcast. An observer whose queue
// overflows or whose transport fails is dropped.
package broadcast

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// DefaultQueueSize размер очереди наблюдателя по умолчанию
const DefaultQueueSize = 64

// Hub реестр наблюдателей
type Hub struct {
	mu        sync.RWMutex
	clients   map[uint64]*Client
	nextID    uint64
	queueSize int
	logger    Logger
	metrics   Metrics
}

// NewHub создает реестр. metrics может быть nil
func NewHub(queueSize int, logger Logger, metrics Metrics) *Hub {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Hub{
		clients:   make(map[uint64]*Client),
		queueSize: queueSize,
		logger:    logger,
		metrics:   metrics,
	}
}

// Register добавляет наблюдателя. События initial ставятся в его очередь раньше любых последующих Broadcast
func (h *Hub) Register(name string, w Writer, initial ...domain.Event) (*Client, error) {
	frames := make([][]byte, 0, len(initial))
	for _, ev := range initial {
		frame, err := encode(ev)
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}

	size := h.queueSize
	if len(frames) > size {
		size = len(frames)
	}

	h.mu.Lock()
	h.nextID++
	c := newClient(h, h.nextID, name, w, size)
	for _, frame := range frames {
		c.queue <- frame
	}
	h.clients[c.id] = c
	count := len(h.clients)
	h.mu.Unlock()

	h.reportObservers(count)
	h.logger.Info("Register: observer id=%d name=%s connected, total=%d", c.id, name, count)

	go c.writeLoop()
	return c, nil
}

// Unregister удаляет наблюдателя и закрывает его транспорт. Повторный вызов безопасен
func (h *Hub) Unregister(id uint64) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
	}
	count := len(h.clients)
	h.mu.Unlock()

	if !ok {
		return
	}

	c.stop()
	h.reportObservers(count)
	h.logger.Info("Unregister: observer id=%d name=%s disconnected, total=%d", c.id, c.name, count)
}

// Broadcast ставит событие в очереди всех текущих наблюдателей и возвращает число принявших
func (h *Hub) Broadcast(ev domain.Event) int {
	frame, err := encode(ev)
	if err != nil {
		h.logger.Error("Broadcast: failed to encode event type=%s: %v", ev.Type, err)
		return 0
	}

	h.mu.RLock()
	snapshot := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		snapshot = append(snapshot, c)
	}
	h.mu.RUnlock()

	delivered := 0
	var overflowed []*Client
	for _, c := range snapshot {
		if c.enqueue(frame) {
			delivered++
			continue
		}
		overflowed = append(overflowed, c)
	}

	for _, c := range overflowed {
		h.logger.Warn("Broadcast: observer id=%d name=%s queue is full, dropping", c.id, c.name)
		h.Unregister(c.id)
	}

	return delivered
}

// Len количество подключённых наблюдателей
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close отключает всех наблюдателей
func (h *Hub) Close() {
	h.mu.RLock()
	ids := make([]uint64, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	for _, id := range ids {
		h.Unregister(id)
	}
}

func (h *Hub) reportObservers(n int) {
	if h.metrics != nil {
		h.metrics.SetObservers(n)
	}
}

func encode(ev domain.Event) ([]byte, error) {
	frame, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("encode event %s: %w", ev.Type, err)
	}
	return frame, nil
}
