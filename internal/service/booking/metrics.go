package booking

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultCommitted = "committed"
	resultConflict  = "conflict"
	resultRejected  = "rejected"
	resultError     = "error"
)

var commitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "booking_commits_total",
		Help: "Booking commit attempts by result",
	},
	[]string{"result"},
)

func commitResult(err error) string {
	switch {
	case errors.Is(err, ErrSlotConflict):
		return resultConflict
	case errors.Is(err, ErrDriverNotFound):
		return resultRejected
	default:
		return resultError
	}
}
