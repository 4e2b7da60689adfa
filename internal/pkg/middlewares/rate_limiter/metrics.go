package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RejectedTotal - запросы, отклоненные с 429. route - шаблон маршрута mux.
var RejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "moveit",
		Subsystem: "rate_limit",
		Name:      "rejected_total",
		Help:      "Requests rejected with 429 by the per-client token bucket",
	},
	[]string{"method", "route"},
)
