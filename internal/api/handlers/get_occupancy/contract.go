package get_occupancy

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/reservations/models"
)

type OccupancyService interface {
	Occupancy(ctx context.Context) *models.OccupancyResponse
}
