package amqppublisher

import (
	"context"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	err    error
	sent   []published
	closed bool
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

type fakeConn struct {
	closed bool
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func newTestPublisher(ch *fakeChannel, conn *fakeConn) *Publisher {
	p := newPublisher(conn, ch, "parking.events", logger.NewNop())
	p.now = func() time.Time { return time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC) }
	return p
}

func TestPublisher_WriteMessage(t *testing.T) {
	ch := &fakeChannel{}
	p := newTestPublisher(ch, &fakeConn{})

	frame := []byte(`{"type":"booking_paid","data":{"id":1}}`)
	require.NoError(t, p.WriteMessage(context.Background(), frame))

	require.Len(t, ch.sent, 1)
	got := ch.sent[0]
	assert.Equal(t, "parking.events", got.exchange)
	assert.Equal(t, "parking.booking_paid", got.key)
	assert.Equal(t, "booking_paid", got.msg.Type)
	assert.Equal(t, contentType, got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, frame, got.msg.Body)
	assert.Equal(t, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC), got.msg.Timestamp)
}

func TestPublisher_SkipsFrameWithoutType(t *testing.T) {
	ch := &fakeChannel{}
	p := newTestPublisher(ch, &fakeConn{})

	require.NoError(t, p.WriteMessage(context.Background(), []byte(`{"data":{}}`)))
	require.NoError(t, p.WriteMessage(context.Background(), []byte(`not json`)))
	assert.Empty(t, ch.sent)
}

func TestPublisher_PublishErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "transient failure is swallowed", err: errors.New("flow control"), wantErr: false},
		{name: "closed channel drops the observer", err: amqp.ErrClosed, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPublisher(&fakeChannel{err: tt.err}, &fakeConn{})

			err := p.WriteMessage(context.Background(), []byte(`{"type":"occupancy_update","data":{}}`))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrPublish)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	conn := &fakeConn{}
	p := newTestPublisher(ch, conn)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
	assert.True(t, conn.closed)
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "parking.occupancy_snapshot", RoutingKey("occupancy_snapshot"))
}
