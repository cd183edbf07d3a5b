package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameTotalGenerateRequests = "total_generate_requests"
	NameTotalSearchRequests   = "total_search_requests"
)

var TotalGenerateRequests = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameTotalGenerateRequests,
		Help:      "Total note generation requests",
		Namespace: Namespace,
	},
)

var TotalSearchRequests = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameTotalSearchRequests,
		Help:      "Total search requests",
		Namespace: Namespace,
	},
)
