// Package metrics exports Prometheus metrics for the pipeline, cache, and
// HTTP API. A Registry implements the observability hook interfaces, so
// registering it is all a binary needs to do:
//
//	reg := metrics.NewRegistry()
//	reg.Install()
//	mux.Handle("/metrics", reg.Handler())
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/mieza/pkg/observability"
)

const namespace = "mieza"

// Registry holds every metric the application exports.
type Registry struct {
	// Pipeline
	StageDuration     *prometheus.HistogramVec
	StageErrors       *prometheus.CounterVec
	CircuitComponents prometheus.Histogram
	CircuitNets       prometheus.Histogram
	RendersTotal      *prometheus.CounterVec

	// Cache
	CacheRequests *prometheus.CounterVec
	CacheSetBytes *prometheus.HistogramVec

	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all metrics plus the Go runtime and
// process collectors.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	r.initPipelineMetrics()
	r.initCacheMetrics()
	r.initHTTPMetrics()
	return r
}

// Prometheus returns the underlying registry.
func (r *Registry) Prometheus() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Install registers r as the pipeline, cache, and HTTP hooks.
func (r *Registry) Install() {
	observability.SetPipelineHooks(pipelineHooks{r})
	observability.SetCacheHooks(cacheHooks{r})
	observability.SetHTTPHooks(httpHooks{r})
}
