package update_occupancy

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgUpdated            = "Parking data updated successfully"
)

type Handler struct {
	service OccupancyService
	logger  Logger
}

func NewHandler(service OccupancyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/occupancy
// Тело, которое не является JSON-объектом (или пустое), не меняет векторы, но ответ всё равно 200 со снимком
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	err := handlers.DecodeJSON(r, &raw)
	switch {
	case errors.Is(err, handlers.ErrEmptyBody):
		h.logger.Warn("POST /occupancy - Empty body from %s, no vectors applied", r.RemoteAddr)
	case err != nil:
		h.logger.Warn("POST /occupancy - Invalid request body from %s: %v", r.RemoteAddr, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req, ok := ParseSensorPush(raw)
	if !ok && len(raw) > 0 {
		h.logger.Warn("POST /occupancy - Body from %s is not an object, no vectors applied", r.RemoteAddr)
	}

	vectors := req.ToVectors()
	h.logger.Info("POST /occupancy - Sensor push from %s: buildings=%d", r.RemoteAddr, len(vectors))

	handlers.RespondSuccess(w, msgUpdated, h.service.UpdateSensors(r.Context(), vectors))
}
