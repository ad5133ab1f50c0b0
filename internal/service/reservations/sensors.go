package reservations

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/broadcast"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations/models"
)

// Результаты обработки вектора датчиков для метрик
const (
	sensorAccepted = "accepted"
	sensorCoerced  = "coerced"
	sensorUnknown  = "unknown_building"

	// unknownBuildingLabel метка здания для отклонённых ключей: имя из запроса в метрики не попадает
	unknownBuildingLabel = "unknown"
)

// UpdateSensors применяет показания датчиков
// vectors: здание -> вектор. nil или вектор неверной длины превращается во "все свободно",
// здания, которых нет в конфигурации, игнорируются. Отсутствующие здания не меняются.
func (s *Service) UpdateSensors(ctx context.Context, vectors map[string][]bool) *models.OccupancyResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timeProvider.Now().UTC()
	layout := s.occupancy.Layout()

	buildings := make([]string, 0, len(vectors))
	for building := range vectors {
		buildings = append(buildings, building)
	}
	sort.Strings(buildings)

	for _, building := range buildings {
		vector := vectors[building]
		if !layout.HasBuilding(building) {
			s.metrics.SensorPush(unknownBuildingLabel, sensorUnknown)
			s.logger.Warn("UpdateSensors: unknown building=%q ignored", building)
			continue
		}

		if s.occupancy.SetSensorOccupancy(building, vector, now) {
			s.metrics.SensorPush(building, sensorAccepted)
			s.logger.Info("UpdateSensors: building=%s occupancy=%v", building, vector)
		} else {
			s.metrics.SensorPush(building, sensorCoerced)
			s.logger.Warn("UpdateSensors: malformed vector for building=%s, treating all slots as free", building)
		}
	}
	s.occupancy.Touch(now)

	snapshot := s.occupancySnapshot()
	s.hub.Broadcast(domain.Event{Type: domain.EventOccupancyUpdate, Data: snapshot})
	return snapshot
}

// Subscribe регистрирует наблюдателя; первым в его очередь попадает полный снимок занятости
func (s *Service) Subscribe(ctx context.Context, name string, w broadcast.Writer) (*broadcast.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := domain.Event{Type: domain.EventOccupancySnapshot, Data: s.occupancySnapshot()}
	client, err := s.hub.Register(name, w, snapshot)
	if err != nil {
		s.logger.Error("Subscribe: failed to register observer name=%s: %v", name, err)
		return nil, err
	}
	return client, nil
}

// Unsubscribe отключает наблюдателя. Порядок событий других наблюдателей не затрагивается
func (s *Service) Unsubscribe(id uint64) {
	s.hub.Unregister(id)
}
