package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pathQueryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathfindr_path_queries_total",
		Help: "Path queries by outcome (solved, unreachable, iteration_limit, out_of_bounds, bad_request, error)",
	}, []string{"outcome"})

	pathQueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pathfindr_path_query_duration_seconds",
		Help:    "Time spent in the A* engine per query",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 16), // 10us to ~330ms
	})

	pathLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pathfindr_path_length_cells",
		Help:    "Number of coordinates in returned routes",
		Buckets: prometheus.ExponentialBuckets(2, 2, 10),
	})
)
