package navigation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/yungbote/lsbmorph-backend/internal/navigation")

var (
	// lookupsTotal counts FindAdjacent calls by mode, direction and outcome.
	lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lsbmorph_navigation_lookups_total",
		Help: "Navigation lookups by mode, direction and result",
	}, []string{"mode", "direction", "result"})

	// walkSteps tracks how many links an anchored walk followed.
	walkSteps = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lsbmorph_navigation_walk_steps",
		Help:    "Links followed per anchored navigation walk",
		Buckets: []float64{0, 1, 2, 5, 10, 50, 100, 500, 1000, 5000},
	})
)
