package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	NameShareTokenCollisions  = "share_token_collisions"
	NameShareTokenExhaustions = "share_token_exhaustions"
	NameSharedNoteViews       = "shared_note_views"
)

// ShareTokenCollisions counts allocation probes that found their candidate
// token already bound. A sustained non-zero rate means the token space is
// saturating or the random source is broken.
var ShareTokenCollisions = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameShareTokenCollisions,
		Help:      "Share token allocation probes that hit an existing token",
		Namespace: Namespace,
	},
)

var ShareTokenExhaustions = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameShareTokenExhaustions,
		Help:      "Share token allocations aborted after exhausting their attempt budget",
		Namespace: Namespace,
	},
)

var SharedNoteViews = promauto.NewCounter(
	prometheus.CounterOpts{
		Name:      NameSharedNoteViews,
		Help:      "Public shared note views",
		Namespace: Namespace,
	},
)
