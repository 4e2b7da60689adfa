package rate_limiter

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"moveit/internal/pkg/middlewares/metrics"
	"moveit/pkg/logger"
)

// Middleware ограничивает частоту запросов по IP клиента. rateLimiterQPS
// отдается в X-RateLimit-Limit. При trustForwarded IP клиента берется из
// X-Forwarded-For, иначе все клиенты за прокси делят одну корзину.
func Middleware(log handlerLogger, rateLimiterQPS int, limiter Limiter, trustForwarded bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r, trustForwarded)
			if limiter.Allow(key) {
				next.ServeHTTP(w, r)
				return
			}

			route := metrics.RouteTemplate(r)
			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("route", route),
				logger.NewField("client", key),
			).Warn("rate limit exceeded")

			RejectedTotal.WithLabelValues(r.Method, route).Inc()

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rateLimiterQPS))
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)

			_, err := w.Write([]byte(`{"error":"Too Many Requests","message":"Rate limit exceeded. Try again later."}`))
			if err != nil {
				log.With(
					logger.NewField("error", err),
					logger.NewField("path", r.URL.Path),
				).Error("failed to write rate limit response")
			}
		})
	}
}

func clientKey(r *http.Request, trustForwarded bool) string {
	if trustForwarded {
		// первый адрес в цепочке - исходный клиент
		forwarded, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
		if ip := strings.TrimSpace(forwarded); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
