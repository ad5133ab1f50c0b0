package api

import (
	"fmt"
	"net/http"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	cancelBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/delete_booking"
	getBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_booking"
	getOccupancyHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_occupancy"
	healthHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/health"
	listActiveBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_active_bookings"
	listBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_bookings"
	payBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/pay_booking"
	subscribeHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/subscribe"
	updateOccupancyHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_occupancy"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Deps зависимости HTTP-слоя
type Deps struct {
	Service        *reservations.Service
	Logger         Logger
	Metrics        *metrics.Metrics // nil - метрики выключены
	MetricsPath    string
	AllowedOrigins []string
	StartedAt      time.Time
}

// NewRouter собирает маршруты API, push-канала и служебных эндпоинтов
func NewRouter(d Deps) http.Handler {
	svc := d.Service
	log := d.Logger

	// Инициализируем handlers
	getOccupancy := getOccupancyHandler.NewHandler(svc)
	updateOccupancy := updateOccupancyHandler.NewHandler(svc, log)
	listBookings := listBookingsHandler.NewHandler(svc, log)
	listActiveBookings := listActiveBookingsHandler.NewHandler(svc)
	getBooking := getBookingHandler.NewHandler(svc, log)
	createBooking := createBookingHandler.NewHandler(svc, log)
	payBooking := payBookingHandler.NewHandler(svc, log)
	cancelBooking := cancelBookingHandler.NewHandler(svc, log)
	deleteBooking := deleteBookingHandler.NewHandler(svc, log)
	subscribe := subscribeHandler.NewHandler(svc, d.AllowedOrigins, log)
	health := healthHandler.NewHandler(d.StartedAt)

	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	if d.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(d.Metrics))
		r.Handle(d.MetricsPath, d.Metrics.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)
	r.HandleFunc("/ws", subscribe.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	// --- Занятость мест ---
	api.HandleFunc("/occupancy", getOccupancy.Handle).Methods(http.MethodGet)
	api.HandleFunc("/occupancy", updateOccupancy.Handle).Methods(http.MethodPost)

	// Прежний адрес контроллера датчиков
	api.HandleFunc("/parking", getOccupancy.Handle).Methods(http.MethodGet)
	api.HandleFunc("/parking", updateOccupancy.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/active", listActiveBookings.Handle).Methods(http.MethodGet)

	bookingPath := fmt.Sprintf("/bookings/{%s}", handlers.BookingIDVar)
	api.HandleFunc(bookingPath, getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc(bookingPath, cancelBooking.Handle).Methods(http.MethodDelete)
	api.HandleFunc(bookingPath+"/pay", payBooking.Handle).Methods(http.MethodPost)

	// --- Оператор ---
	api.HandleFunc("/admin"+bookingPath, deleteBooking.Handle).Methods(http.MethodDelete)

	cors := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(d.AllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type"}),
	)
	recovery := gorillaHandlers.RecoveryHandler(
		gorillaHandlers.RecoveryLogger(recoveryLogger{log}),
		gorillaHandlers.PrintRecoveryStack(true),
	)

	return recovery(cors(r))
}

// recoveryLogger адаптер Logger к интерфейсу gorilla/handlers
type recoveryLogger struct {
	log Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("panic recovered: %s", fmt.Sprint(v...))
}
