package metrics

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every collector name.
const Namespace = "armmock"

// Route label values.
const (
	RouteARM   = "arm"
	RouteAdmin = "admin"
)

// Search outcomes.
const (
	SearchMatched   = "matched"
	SearchFallback  = "fallback"
	SearchAmbiguous = "ambiguous"
	SearchSpecial   = "special"
	SearchUnmatched = "unmatched"
)

// Polling URL lookup outcomes.
const (
	LROResolved = "resolved"
	LRODegraded = "degraded"
	LROFailed   = "failed"
)

// DefaultBuckets are the request latency buckets in seconds.
var DefaultBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Metrics holds the server's collectors. A nil *Metrics records nothing.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	searches        *prometheus.CounterVec
	lroResolutions  *prometheus.CounterVec
	resourceCount   atomic.Pointer[func() int]
}

// New registers the request, search, LRO and resource collectors on reg.
// The resource gauge reads zero until TrackResources gives it a source.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "requests_total",
			Help:      "Total number of served requests",
		}, []string{"method", "route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "request_duration_seconds",
			Help:      "Duration of served requests in seconds",
			Buckets:   DefaultBuckets,
		}, []string{"method", "route"}),
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "searches_total",
			Help:      "Total number of operation searches by outcome",
		}, []string{"outcome"}),
		lroResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "lro_resolutions_total",
			Help:      "Total number of long-running operation polling URL lookups by outcome",
		}, []string{"outcome"}),
	}
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "resources",
		Help:      "Number of live simulated resources",
	}, m.resources)
	return m
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveSearch records the outcome of one operation search.
func (m *Metrics) ObserveSearch(outcome string) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(outcome).Inc()
}

// ObserveLRO records the outcome of one polling URL lookup.
func (m *Metrics) ObserveLRO(outcome string) {
	if m == nil {
		return
	}
	m.lroResolutions.WithLabelValues(outcome).Inc()
}

// TrackResources makes count the source of the live resource gauge,
// replacing any earlier source.
func (m *Metrics) TrackResources(count func() int) {
	if m == nil || count == nil {
		return
	}
	m.resourceCount.Store(&count)
}

func (m *Metrics) resources() float64 {
	count := m.resourceCount.Load()
	if count == nil {
		return 0
	}
	return float64((*count)())
}

// Handler serves the metrics gathered from g in the Prometheus exposition
// format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
