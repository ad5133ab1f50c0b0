package subscribe

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
)

// wsWriter адаптер WebSocket-соединения к broadcast.Writer
type wsWriter struct {
	conn         *websocket.Conn
	writeTimeout time.Duration
}

func (w *wsWriter) WriteMessage(ctx context.Context, payload []byte) error {
	deadline := time.Now().Add(w.writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := w.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return w.conn.WriteMessage(websocket.TextMessage, payload)
}

func (w *wsWriter) Close() error {
	_ = w.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	return w.conn.Close()
}
