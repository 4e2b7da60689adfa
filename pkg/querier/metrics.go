package querier

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opExec     = "exec"
	opQuery    = "query"
	opQueryRow = "query_row"
)

var QueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database calls issued through the querier",
		Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	},
	[]string{"op"},
)

func observe(op string, start time.Time) {
	QueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
