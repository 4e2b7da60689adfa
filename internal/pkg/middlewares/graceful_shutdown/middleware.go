package graceful_shutdown

import (
	"context"
	"net/http"
	"sync/atomic"
)

// Middleware отвечает 503 на новые запросы, когда ongoingCtx отменен и
// сервис помечен как останавливающийся. Соединение при этом закрывается,
// чтобы балансировщик переключил клиента на живой инстанс.
func Middleware(isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-ongoingCtx.Done():
				if isShuttingDown.Load() {
					w.Header().Set("Connection", "close")
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusServiceUnavailable)
					_, _ = w.Write([]byte(`{"error":"Service Unavailable","message":"Service is shutting down"}`))
					return
				}
			default:
			}
			next.ServeHTTP(w, r)
		})
	}
}
