package bookingchanges

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GatewayRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_retries_total",
			Help: "Total number of gateway retry attempts",
		},
		[]string{"service", "method", "result"},
	)

	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Duration of gateway requests including retries",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"service", "method", "result"},
	)

	ActiveSubscriptions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "booking_changes_active_subscriptions",
			Help: "Open availability subscriptions",
		},
	)
)
