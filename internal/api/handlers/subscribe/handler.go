package subscribe

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeTimeout   = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxInboundSize = 512
)

type Handler struct {
	service  Subscriber
	logger   Logger
	upgrader websocket.Upgrader
}

// NewHandler создает обработчик push-канала
// allowedOrigins: список Origin, "*" разрешает любой
func NewHandler(service Subscriber, allowedOrigins []string, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// Handle GET /ws
// Клиент сначала получает occupancy_snapshot, затем все события в порядке переходов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("GET /ws - Upgrade failed from %s: %v", r.RemoteAddr, err)
		return
	}

	client, err := h.service.Subscribe(r.Context(), "ws:"+r.RemoteAddr, &wsWriter{conn: conn, writeTimeout: writeTimeout})
	if err != nil {
		h.logger.Error("GET /ws - Failed to subscribe %s: %v", r.RemoteAddr, err)
		_ = conn.Close()
		return
	}

	go h.keepAlive(conn, client.Done())
	h.readLoop(conn)

	h.service.Unsubscribe(client.ID())
	<-client.Done()
}

// readLoop читает входящие кадры только ради close/pong; возвращается при разрыве соединения
func (h *Handler) readLoop(conn *websocket.Conn) {
	conn.SetReadLimit(maxInboundSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("GET /ws - Connection closed unexpectedly: %v", err)
			}
			return
		}
	}
}

func (h *Handler) keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
		set[origin] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
