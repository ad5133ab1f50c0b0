package broadcast

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

// hubSubscriber регистрирует наблюдателя с начальным снимком, как это делает сервис бронирований
type hubSubscriber struct {
	hub *Hub
}

func (s hubSubscriber) Subscribe(_ context.Context, name string, w Writer) (*Client, error) {
	return s.hub.Register(name, w, domain.Event{Type: domain.EventOccupancySnapshot})
}

// sequenceDialer отдаёт заранее подготовленные транспорты по очереди
type sequenceDialer struct {
	mu      sync.Mutex
	writers []*fakeWriter
	errs    []error
	calls   int
}

func (d *sequenceDialer) dial(context.Context) (Writer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := d.calls
	d.calls++
	if i < len(d.errs) && d.errs[i] != nil {
		return nil, d.errs[i]
	}
	if i >= len(d.writers) {
		return nil, errors.New("no more writers")
	}
	return d.writers[i], nil
}

func (d *sequenceDialer) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

func runKeepSubscribed(t *testing.T, hub *Hub, d *sequenceDialer) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		KeepSubscribed(ctx, hubSubscriber{hub: hub}, "amqp:test", d.dial, 10*time.Millisecond, logger.NewNop())
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Error("KeepSubscribed did not return after cancel")
		}
		hub.Close()
	})
	return cancel
}

func TestKeepSubscribed_ResubscribesDroppedSink(t *testing.T) {
	hub := NewHub(4, logger.NewNop(), nil)

	broken := newFakeWriter()
	broken.failOn = 0
	healthy := newFakeWriter()
	d := &sequenceDialer{writers: []*fakeWriter{broken, healthy}}

	runKeepSubscribed(t, hub, d)

	require.Eventually(t, func() bool { return len(healthy.types(t)) == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.True(t, broken.isClosed())
	assert.Equal(t, 2, d.callCount())
	assert.Equal(t, 1, hub.Len())

	hub.Broadcast(domain.Event{Type: domain.EventBookingCreated})
	require.Eventually(t, func() bool { return len(healthy.types(t)) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []domain.EventType{domain.EventOccupancySnapshot, domain.EventBookingCreated}, healthy.types(t))
}

func TestKeepSubscribed_RetriesFailedConnect(t *testing.T) {
	hub := NewHub(4, logger.NewNop(), nil)

	w := newFakeWriter()
	d := &sequenceDialer{
		writers: []*fakeWriter{nil, nil, w},
		errs:    []error{errors.New("connection refused"), errors.New("connection refused")},
	}

	runKeepSubscribed(t, hub, d)

	require.Eventually(t, func() bool { return len(w.types(t)) == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 3, d.callCount())
}

func TestKeepSubscribed_StopsOnCancel(t *testing.T) {
	hub := NewHub(4, logger.NewNop(), nil)
	w := newFakeWriter()
	d := &sequenceDialer{writers: []*fakeWriter{w}}

	cancel := runKeepSubscribed(t, hub, d)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, d.callCount(), "после отмены переподключений нет")
}
