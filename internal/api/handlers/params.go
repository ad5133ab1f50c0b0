package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// BookingIDVar имя параметра пути с ID бронирования
const BookingIDVar = "bookingId"

// BookingID извлекает ID бронирования из пути
func BookingID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)[BookingIDVar]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid booking id %q", raw)
	}
	return id, nil
}
