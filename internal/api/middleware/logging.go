package middleware

import (
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RequestLogger пишет строку лога на каждый запрос
func RequestLogger(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)

			switch {
			case m.Code >= http.StatusInternalServerError:
				logger.Error("%s %s - status=%d duration=%s", r.Method, r.URL.Path, m.Code, m.Duration)
			case m.Code >= http.StatusBadRequest:
				logger.Warn("%s %s - status=%d duration=%s", r.Method, r.URL.Path, m.Code, m.Duration)
			default:
				logger.Info("%s %s - status=%d duration=%s", r.Method, r.URL.Path, m.Code, m.Duration)
			}
		})
	}
}
