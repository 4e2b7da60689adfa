package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"moveit/pkg/logger"
)

func Middleware(log handlerLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			statusCode := strconv.Itoa(rw.statusCode)
			route := RouteTemplate(r)

			HTTPRequestDuration.WithLabelValues(r.Method, route, statusCode).Observe(duration.Seconds())
			HTTPRequestTotal.WithLabelValues(r.Method, route, statusCode).Inc()

			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("path", r.URL.Path),
				logger.NewField("route", route),
				logger.NewField("status", statusCode),
				logger.NewField("duration", duration.String()),
			).Info("HTTP request")
		})
	}
}

// RouteTemplate - шаблон mux-роута (/drivers/{id}), чтобы id не раздували
// кардинальность меток. Без роута возвращает путь запроса.
func RouteTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}
	return r.URL.Path
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack нужен websocket-апгрейду потока слотов.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}
