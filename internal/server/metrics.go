package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/54b3r/vincula-go/internal/engine"
)

const (
	// metricsNamespace prefixes every metric name.
	metricsNamespace = "vincula"

	// labelHandler is the "handler" label name used to partition metrics by
	// the route pattern rather than the raw URL path.
	labelHandler = "handler"

	// unmatchedHandler labels requests that matched no route.
	unmatchedHandler = "unmatched"
)

// serverMetrics holds all Prometheus metrics owned by the HTTP server.
// A single instance is created in New and stored on Server so that tests can
// inject a fresh prometheus.Registry without polluting the default one.
type serverMetrics struct {
	// chatRequestsTotal counts chat requests, partitioned by outcome:
	// ok, invalid, too_large or rate_limited.
	chatRequestsTotal *prometheus.CounterVec

	// chatDurationSeconds records the handling time of each chat request.
	chatDurationSeconds *prometheus.HistogramVec

	// replyTotal counts answered messages by detected language and domain.
	replyTotal *prometheus.CounterVec

	// httpRequestsTotal counts all HTTP requests handled by the mux,
	// partitioned by method, route pattern, and status code.
	httpRequestsTotal *prometheus.CounterVec

	// httpDurationSeconds records the latency of all HTTP requests.
	httpDurationSeconds *prometheus.HistogramVec

	// indexChunks is the chunk count of each language index.
	indexChunks *prometheus.GaugeVec

	// indexVocabulary is the IDF vocabulary size of each language index.
	indexVocabulary *prometheus.GaugeVec
}

// newServerMetrics registers all server metrics against reg and returns the
// populated serverMetrics. promauto.With(reg) registers into the provided
// registry rather than the global default, keeping unit tests hermetic.
func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	factory := promauto.With(reg)

	return &serverMetrics{
		chatRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "chat",
			Name:      "requests_total",
			Help:      "Total number of chat requests, partitioned by outcome.",
		}, []string{"outcome"}),

		chatDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "chat",
			Name:      "duration_seconds",
			Help:      "Time spent handling chat requests.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, 1},
		}, []string{"outcome"}),

		replyTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "reply",
			Name:      "total",
			Help:      "Total number of replies, partitioned by detected language and domain.",
		}, []string{"lang", "domain"}),

		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled by the server, partitioned by method, handler, and status code.",
		}, []string{"method", labelHandler, "code"}),

		httpDurationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "duration_seconds",
			Help:      "Latency of HTTP requests handled by the server.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", labelHandler}),

		indexChunks: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "index",
			Name:      "chunks",
			Help:      "Number of chunks in each language index.",
		}, []string{"lang"}),

		indexVocabulary: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "index",
			Name:      "vocabulary",
			Help:      "Number of distinct tokens in each language index.",
		}, []string{"lang"}),
	}
}

// publishIndexStats sets the index gauges. Indexes never change after start-up
// so this runs once.
func (m *serverMetrics) publishIndexStats(stats []engine.IndexStats) {
	for _, st := range stats {
		m.indexChunks.WithLabelValues(st.Lang).Set(float64(st.Chunks))
		m.indexVocabulary.WithLabelValues(st.Lang).Set(float64(st.Vocabulary))
	}
}
