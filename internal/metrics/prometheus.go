package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder publishes parser activity as Prometheus metrics and keeps a
// rolling latency window for the JSON stats endpoint.
type Recorder struct {
	reg *prom.Registry

	parseDuration *prom.HistogramVec
	parseResults  *prom.CounterVec
	cacheLookups  *prom.CounterVec

	Stats *ParseStats
}

// NewRecorder registers the metrics on reg, or on a fresh registry when reg is nil.
func NewRecorder(reg *prom.Registry, window time.Duration) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	r := &Recorder{
		reg: reg,
		parseDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "mdchunk",
			Name:      "parse_duration_seconds",
			Help:      "Duration of parser calls by operation",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"op"}),
		parseResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdchunk",
			Name:      "parse_total",
			Help:      "Analyzed documents by resulting mode",
		}, []string{"mode"}),
		cacheLookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdchunk",
			Name:      "cache_total",
			Help:      "Parse cache lookups by result",
		}, []string{"result"}),
		Stats: NewParseStats(window),
	}
	reg.MustRegister(r.parseDuration, r.parseResults, r.cacheLookups)
	return r
}

// ObserveParse records one parser call.
func (r *Recorder) ObserveParse(op string, d time.Duration) {
	r.parseDuration.WithLabelValues(op).Observe(d.Seconds())
	r.Stats.Record(d)
}

// CountMode records which extraction mode a document resolved to.
func (r *Recorder) CountMode(mode string) {
	r.parseResults.WithLabelValues(mode).Inc()
}

// CountCache records a cache hit or miss.
func (r *Recorder) CountCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
