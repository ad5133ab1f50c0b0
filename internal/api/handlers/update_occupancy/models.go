package update_occupancy

import (
	"bytes"
	"encoding/json"
	"strings"
)

const boardKeyPrefix = "board"

// SensorPushRequest тело запроса от контроллера датчиков: {"boardA": [...], "boardB": [...]}
type SensorPushRequest map[string]json.RawMessage

// ParseSensorPush разбирает тело запроса. false - тело не JSON-объект (массив, строка, число или пусто)
func ParseSensorPush(raw json.RawMessage) (SensorPushRequest, bool) {
	var req SensorPushRequest
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, false
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, false
	}
	return req, true
}

// ToVectors извлекает векторы по зданиям
// Значение, которое не является массивом bool, передаётся как nil (сервис считает все места свободными).
// null и ключи без префикса board пропускаются.
func (r SensorPushRequest) ToVectors() map[string][]bool {
	vectors := make(map[string][]bool, len(r))
	for key, raw := range r {
		building, ok := buildingFromKey(key)
		if !ok {
			continue
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}

		var vector []bool
		if err := json.Unmarshal(raw, &vector); err != nil {
			vector = nil
		}
		vectors[building] = vector
	}
	return vectors
}

func buildingFromKey(key string) (string, bool) {
	if len(key) <= len(boardKeyPrefix) || !strings.EqualFold(key[:len(boardKeyPrefix)], boardKeyPrefix) {
		return "", false
	}
	return strings.ToUpper(key[len(boardKeyPrefix):]), true
}
