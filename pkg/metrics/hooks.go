package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/matzehuels/mieza/pkg/observability"
)

type pipelineHooks struct{ r *Registry }

func (h pipelineHooks) OnParseStart(context.Context, string) {}

func (h pipelineHooks) OnParseComplete(_ context.Context, _ string, components int, d time.Duration, err error) {
	h.r.observeStage("parse", d, err)
	if err == nil {
		h.r.CircuitComponents.Observe(float64(components))
	}
}

func (h pipelineHooks) OnLayoutStart(context.Context, int) {}

func (h pipelineHooks) OnLayoutComplete(_ context.Context, _, _ int, d time.Duration, err error) {
	h.r.observeStage("layout", d, err)
}

func (h pipelineHooks) OnNetsComplete(_ context.Context, nets int, d time.Duration, err error) {
	h.r.observeStage("nets", d, err)
	if err == nil {
		h.r.CircuitNets.Observe(float64(nets))
	}
}

func (h pipelineHooks) OnRenderStart(context.Context, []string) {}

func (h pipelineHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.r.observeStage("render", d, err)
	if err != nil {
		return
	}
	for _, f := range formats {
		h.r.RendersTotal.WithLabelValues(f).Inc()
	}
}

func (r *Registry) observeStage(stage string, d time.Duration, err error) {
	r.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		r.StageErrors.WithLabelValues(stage).Inc()
	}
}

type cacheHooks struct{ r *Registry }

func (h cacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.r.CacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (h cacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.r.CacheRequests.WithLabelValues(keyType, "miss").Inc()
}

func (h cacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.r.CacheSetBytes.WithLabelValues(keyType).Observe(float64(size))
}

type httpHooks struct{ r *Registry }

func (h httpHooks) OnRequest(context.Context, string, string) {
	h.r.HTTPRequestsInFlight.Inc()
}

func (h httpHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.r.HTTPRequestsInFlight.Dec()
	h.r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.r.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.PipelineHooks = pipelineHooks{}
	_ observability.CacheHooks    = cacheHooks{}
	_ observability.HTTPHooks     = httpHooks{}
)
