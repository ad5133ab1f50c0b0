package health

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

// Status ответ проверки живости
type Status struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

type Handler struct {
	startedAt time.Time
}

func NewHandler(startedAt time.Time) *Handler {
	return &Handler{startedAt: startedAt}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Status{
		Status: "ok",
		Uptime: time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}
