package update_occupancy

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/reservations/models"
)

type OccupancyService interface {
	UpdateSensors(ctx context.Context, vectors map[string][]bool) *models.OccupancyResponse
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
