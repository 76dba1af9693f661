// Package metrics exposes prometheus counters for the featured pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	Fetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "featured_fetches_total",
		Help: "Total platform fetches attempted",
	}, []string{"platform"})
	FetchFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "featured_fetch_failures_total",
		Help: "Total platform fetches that failed and were recovered",
	}, []string{"platform"})
	Rankings = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "featured_rankings_total",
		Help: "Total featured ranking runs",
	})
	RankingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "featured_ranking_duration_seconds",
		Help:    "Ranking run duration seconds, fetch included",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(Fetches, FetchFailures, Rankings, RankingDuration)
}

// ObserveRankingDuration records the elapsed time of a ranking run.
func ObserveRankingDuration(start time.Time) {
	RankingDuration.Observe(time.Since(start).Seconds())
}
