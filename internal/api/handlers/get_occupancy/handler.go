package get_occupancy

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

type Handler struct {
	service OccupancyService
}

func NewHandler(service OccupancyService) *Handler {
	return &Handler{service: service}
}

// Handle GET /api/occupancy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.service.Occupancy(r.Context()))
}
