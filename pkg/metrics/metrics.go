package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор метрик сервиса
// Каждый экземпляр держит собственный registry, поэтому New можно вызывать повторно (например, в тестах)
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	bookingTransitions *prometheus.CounterVec
	observers          prometheus.Gauge
	paymentTimers      prometheus.Gauge
	persistFailures    prometheus.Counter
	sensorPushes       *prometheus.CounterVec
}

// New создает и регистрирует метрики с префиксом serviceName
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		bookingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "parking_booking_transitions_total",
			Help:        "Booking state machine transitions",
			ConstLabels: constLabels,
		}, []string{"transition"}),
		observers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "parking_observers",
			Help:        "Currently connected broadcast observers",
			ConstLabels: constLabels,
		}),
		paymentTimers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "parking_payment_timers",
			Help:        "Armed payment-expiry timers",
			ConstLabels: constLabels,
		}),
		persistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "parking_persist_failures_total",
			Help:        "Failed ledger persist attempts",
			ConstLabels: constLabels,
		}),
		sensorPushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "parking_sensor_pushes_total",
			Help:        "Sensor vectors received per building",
			ConstLabels: constLabels,
		}, []string{"building", "result"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.bookingTransitions,
		m.observers,
		m.paymentTimers,
		m.persistFailures,
		m.sensorPushes,
	)

	return m
}

// Handler возвращает http.Handler для эндпоинта /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry нужен тестам для чтения значений через testutil
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) BookingTransition(transition string) {
	m.bookingTransitions.WithLabelValues(transition).Inc()
}

func (m *Metrics) SetObservers(n int) {
	m.observers.Set(float64(n))
}

func (m *Metrics) SetPaymentTimers(n int) {
	m.paymentTimers.Set(float64(n))
}

func (m *Metrics) PersistFailed() {
	m.persistFailures.Inc()
}

func (m *Metrics) SensorPush(building, result string) {
	m.sensorPushes.WithLabelValues(building, result).Inc()
}
