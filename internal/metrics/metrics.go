package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters and gauges exposed on /metrics. Registered on the default
// registry via promauto.
var (
	RefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paperdesk_refresh_total",
		Help: "Catalog refresh attempts by outcome.",
	}, []string{"status"})

	VotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paperdesk_votes_total",
		Help: "Recorded votes by kind.",
	}, []string{"kind"})

	CommentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paperdesk_comments_total",
		Help: "Comments posted.",
	})

	PapersIndexed = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "paperdesk_papers_indexed",
		Help: "Papers currently held in the memory index.",
	})
)
