package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Detector latency buckets in microseconds; detection is pure
	// in-memory scanning and normally completes well under a millisecond.
	detectorBuckets = []float64{
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000, 25000,
	}

	VerdictsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "veilmatch_moderation_verdicts_total",
			Help: "Total number of moderation verdicts by status",
		},
		[]string{"status", "content_type"},
	)

	FlagsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "veilmatch_moderation_flags_total",
			Help: "Total number of raised content flags by category",
		},
		[]string{"flag"},
	)

	ReviewsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "veilmatch_moderation_reviews_total",
			Help: "Total number of reviewer actions applied to queue items",
		},
		[]string{"action"},
	)

	QueueDepth = promauto.With(registerer).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "veilmatch_moderation_queue_depth",
			Help: "Number of items currently resident in the review queue",
		},
		[]string{"priority"},
	)

	DetectorLatency = promauto.With(registerer).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "veilmatch_moderation_detector_latency_us",
			Help:    "Content flag detector latency in microseconds",
			Buckets: detectorBuckets,
		},
	)
)

func Initialize() {
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}

// Handler serves the private registry; mounted at /metrics by the server.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
