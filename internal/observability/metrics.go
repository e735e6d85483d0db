package observability

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/yungbote/suplementor-backend/internal/platform/logger"
)

type MetricsConfig struct {
	Enabled        bool          `koanf:"enabled"`
	Namespace      string        `koanf:"namespace"`
	ScrapeInterval time.Duration `koanf:"scrape_interval"`
}

// Metrics owns a private registry. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry
	interval time.Duration

	apiRequests      *prometheus.CounterVec
	apiLatency       *prometheus.HistogramVec
	apiInflight      prometheus.Gauge
	recommendations  *prometheus.CounterVec
	recommendScore   prometheus.Histogram
	stackSize        prometheus.Histogram
	interactionRisk  *prometheus.CounterVec
	cacheEvents      *prometheus.CounterVec
	graphNodes       prometheus.Gauge
	graphEdges       prometheus.Gauge
	graphDropped     prometheus.Counter
	graphFuzzy       prometheus.Counter
	graphSyncs       *prometheus.CounterVec
	redisUp          prometheus.Gauge
	redisPingSeconds prometheus.Gauge
}

func NewMetrics(cfg MetricsConfig) *Metrics {
	if !cfg.Enabled {
		return nil
	}
	ns := strings.TrimSpace(cfg.Namespace)
	if ns == "" {
		ns = "suplementor"
	}
	interval := cfg.ScrapeInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		interval: interval,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "api_requests_total", Help: "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns, Name: "api_request_duration_seconds", Help: "API request latency in seconds by method/route/status.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "route", "status"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Name: "api_inflight_requests", Help: "In-flight API requests.",
		}),
		recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "recommendations_total", Help: "Recommendation runs by kind (list/stack) and language.",
		}, []string{"kind", "language"}),
		recommendScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns, Name: "recommendation_score", Help: "Scores of returned recommendations.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		stackSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns, Name: "stack_size", Help: "Number of supplements in built stacks.",
			Buckets:   prometheus.LinearBuckets(0, 1, 11),
		}),
		interactionRisk: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "interaction_analyses_total", Help: "Interaction analyses by overall risk.",
		}, []string{"risk"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "cache_events_total", Help: "Cache lookups by cache name and result.",
		}, []string{"cache", "result"}),
		graphNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Name: "knowledge_graph_nodes", Help: "Node count of the last projected graph.",
		}),
		graphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Name: "knowledge_graph_relationships", Help: "Relationship count of the last projected graph.",
		}),
		graphDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Name: "knowledge_graph_dropped_relationships_total", Help: "Relationships dropped for missing endpoints.",
		}),
		graphFuzzy: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Name: "knowledge_graph_fuzzy_matches_total", Help: "Edges resolved by name matching instead of explicit ids.",
		}),
		graphSyncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "knowledge_graph_syncs_total", Help: "Neo4j graph syncs by status.",
		}, []string{"status"}),
		redisUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Name: "redis_up", Help: "1 when the last redis ping succeeded.",
		}),
		redisPingSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Name: "redis_ping_seconds", Help: "Latency of the last redis ping.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.recommendations, m.recommendScore, m.stackSize, m.interactionRisk,
		m.cacheEvents,
		m.graphNodes, m.graphEdges, m.graphDropped, m.graphFuzzy, m.graphSyncs,
		m.redisUp, m.redisPingSeconds,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	code := strconv.Itoa(status)
	m.apiRequests.WithLabelValues(method, route, code).Inc()
	m.apiLatency.WithLabelValues(method, route, code).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveRecommendations(kind, language string, scores []int) {
	if m == nil {
		return
	}
	m.recommendations.WithLabelValues(kind, language).Inc()
	for _, s := range scores {
		m.recommendScore.Observe(float64(s))
	}
}

func (m *Metrics) ObserveStack(size int) {
	if m == nil {
		return
	}
	m.stackSize.Observe(float64(size))
}

func (m *Metrics) IncInteractionAnalysis(risk string) {
	if m == nil {
		return
	}
	m.interactionRisk.WithLabelValues(risk).Inc()
}

// CacheHit and CacheMiss satisfy cache.Recorder.
func (m *Metrics) CacheHit(name string) {
	if m == nil {
		return
	}
	m.cacheEvents.WithLabelValues(name, "hit").Inc()
}

func (m *Metrics) CacheMiss(name string) {
	if m == nil {
		return
	}
	m.cacheEvents.WithLabelValues(name, "miss").Inc()
}

func (m *Metrics) ObserveGraph(nodes, relationships, dropped, fuzzy int) {
	if m == nil {
		return
	}
	m.graphNodes.Set(float64(nodes))
	m.graphEdges.Set(float64(relationships))
	m.graphDropped.Add(float64(dropped))
	m.graphFuzzy.Add(float64(fuzzy))
}

func (m *Metrics) IncGraphSync(status string) {
	if m == nil {
		return
	}
	m.graphSyncs.WithLabelValues(status).Inc()
}

// RegisterDBStats exposes database/sql pool stats under the given db name.
func (m *Metrics) RegisterDBStats(sqlDB *sql.DB, name string) {
	if m == nil || sqlDB == nil {
		return
	}
	m.registry.MustRegister(collectors.NewDBStatsCollector(sqlDB, name))
}

func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb redis.UniversalClient) {
	if m == nil || rdb == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPingSeconds.Set(time.Since(start).Seconds())
			}
		}
	}()
}
