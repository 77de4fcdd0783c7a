// Package telemetry tracks query traffic twice: once in a private
// Prometheus registry for scraping, once in a mutex-guarded mirror that
// the stats and analytics endpoints serialize as JSON.
package telemetry

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Shivang1109/GRAMSEVAK-AI-VERTEX/models"
)

// QuerySample is everything the server knows about one answered query.
type QuerySample struct {
	Category models.Category
	Source   models.Source
	Network  models.NetworkClass
	UserType string
	Bytes    int
	CacheHit bool
	LLMCall  bool
	Duration time.Duration
}

// Stats is the JSON mirror of the counters. Maps are keyed by the raw
// label values seen in traffic.
type Stats struct {
	TotalQueries       int64            `json:"total_queries"`
	CacheHits          int64            `json:"cache_hits"`
	LLMCalls           int64            `json:"llm_calls"`
	EmergencyAnswers   int64            `json:"emergency_answers"`
	FallbackAnswers    int64            `json:"fallback_answers"`
	OfflineQueries     int64            `json:"offline_queries"`
	OnlineQueries      int64            `json:"online_queries"`
	TotalResponseBytes int64            `json:"total_response_bytes"`
	QueriesByCategory  map[string]int64 `json:"queries_by_category"`
	QueriesByNetwork   map[string]int64 `json:"queries_by_network"`
	QueriesByUserType  map[string]int64 `json:"queries_by_user_type"`
	RateLimited        int64            `json:"rate_limited"`
	CompletionFailures int64            `json:"completion_failures"`
	FeedbackHelpful    int64            `json:"feedback_helpful"`
	FeedbackUnhelpful  int64            `json:"feedback_unhelpful"`
}

// Metrics owns the registry and the mirror. Safe for concurrent use.
type Metrics struct {
	registry *prometheus.Registry

	queriesTotal  prometheus.Counter
	querySources  *prometheus.CounterVec
	queryCategory *prometheus.CounterVec
	queryNetwork  *prometheus.CounterVec
	llmCalls      prometheus.Counter
	cacheHits     prometheus.Counter
	responseBytes prometheus.Counter
	queryLatency  prometheus.Histogram
	rateLimited   prometheus.Counter
	llmFailures   prometheus.Counter
	feedback      *prometheus.CounterVec

	mu    sync.Mutex
	stats Stats
}

// New builds a Metrics with all collectors registered on a fresh
// registry, so tests never collide on the global one.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		queriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gramsevak_queries_total",
			Help: "Queries answered, any source.",
		}),
		querySources: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gramsevak_queries_by_source_total",
			Help: "Queries answered, partitioned by answer source.",
		}, []string{"source"}),
		queryCategory: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gramsevak_queries_by_category_total",
			Help: "Queries answered, partitioned by classified category.",
		}, []string{"category"}),
		queryNetwork: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gramsevak_queries_by_network_total",
			Help: "Queries answered, partitioned by declared network class.",
		}, []string{"network"}),
		llmCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gramsevak_llm_calls_total",
			Help: "Completion-service invocations.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gramsevak_category_cache_hits_total",
			Help: "Queries served from a memoized category partition.",
		}),
		responseBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gramsevak_response_bytes_total",
			Help: "Response payload bytes sent to clients.",
		}),
		queryLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gramsevak_query_duration_seconds",
			Help:    "End to end query handling latency.",
			Buckets: prometheus.DefBuckets,
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gramsevak_rate_limited_total",
			Help: "Requests rejected by the per-IP rate limiter.",
		}),
		llmFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gramsevak_completion_failures_total",
			Help: "Completion-service calls that returned an error.",
		}),
		feedback: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gramsevak_feedback_total",
			Help: "User feedback votes.",
		}, []string{"helpful"}),
	}
	m.stats.QueriesByCategory = make(map[string]int64)
	m.stats.QueriesByNetwork = make(map[string]int64)
	m.stats.QueriesByUserType = make(map[string]int64)

	m.registry.MustRegister(
		m.queriesTotal, m.querySources, m.queryCategory, m.queryNetwork,
		m.llmCalls, m.cacheHits, m.responseBytes, m.queryLatency,
		m.rateLimited, m.llmFailures, m.feedback,
	)
	return m
}

// Handler exposes the private registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordQuery folds one answered query into both sinks.
func (m *Metrics) RecordQuery(sample QuerySample) {
	m.queriesTotal.Inc()
	m.querySources.WithLabelValues(string(sample.Source)).Inc()
	m.queryCategory.WithLabelValues(string(sample.Category)).Inc()
	m.queryNetwork.WithLabelValues(string(sample.Network)).Inc()
	m.responseBytes.Add(float64(sample.Bytes))
	m.queryLatency.Observe(sample.Duration.Seconds())
	if sample.LLMCall {
		m.llmCalls.Inc()
	}
	if sample.CacheHit {
		m.cacheHits.Inc()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.TotalQueries++
	m.stats.TotalResponseBytes += int64(sample.Bytes)
	if sample.LLMCall {
		m.stats.LLMCalls++
	}
	if sample.CacheHit {
		m.stats.CacheHits++
	}
	switch sample.Source {
	case models.SourceSafetyFilter:
		m.stats.EmergencyAnswers++
	case models.SourceFallback:
		m.stats.FallbackAnswers++
	}
	// An offline query is one answered from the local knowledge base.
	if sample.Source == models.SourceKeywordMatch {
		m.stats.OfflineQueries++
	} else {
		m.stats.OnlineQueries++
	}
	m.stats.QueriesByCategory[string(sample.Category)]++
	m.stats.QueriesByNetwork[string(sample.Network)]++
	if sample.UserType != "" {
		m.stats.QueriesByUserType[sample.UserType]++
	}
}

// RecordRateLimited counts one request rejected by the limiter.
func (m *Metrics) RecordRateLimited() {
	m.rateLimited.Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.RateLimited++
}

// RecordCompletionFailure counts one failed completion-service call.
func (m *Metrics) RecordCompletionFailure() {
	m.llmFailures.Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.CompletionFailures++
}

// RecordFeedback counts one feedback vote.
func (m *Metrics) RecordFeedback(helpful bool) {
	label := "no"
	if helpful {
		label = "yes"
	}
	m.feedback.WithLabelValues(label).Inc()

	m.mu.Lock()
	defer m.mu.Unlock()
	if helpful {
		m.stats.FeedbackHelpful++
	} else {
		m.stats.FeedbackUnhelpful++
	}
}

// Snapshot returns a copy of the mirror safe to serialize.
func (m *Metrics) Snapshot() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.stats
	out.QueriesByCategory = copyCounts(m.stats.QueriesByCategory)
	out.QueriesByNetwork = copyCounts(m.stats.QueriesByNetwork)
	out.QueriesByUserType = copyCounts(m.stats.QueriesByUserType)
	return out
}

func copyCounts(in map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
