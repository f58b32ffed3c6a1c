package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/mieza/pkg/observability"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.StageDuration == nil || r.CacheRequests == nil || r.HTTPRequestsTotal == nil {
		t.Fatal("metrics not initialized")
	}
	if r.Prometheus() == nil {
		t.Fatal("prometheus registry not initialized")
	}
}

func TestPipelineHooks(t *testing.T) {
	r := NewRegistry()
	h := pipelineHooks{r}
	ctx := context.Background()

	h.OnParseComplete(ctx, "cdl", 4, time.Millisecond, nil)
	h.OnLayoutComplete(ctx, 4, 3, time.Millisecond, errors.New("boom"))
	h.OnNetsComplete(ctx, 2, time.Millisecond, nil)
	h.OnRenderComplete(ctx, []string{"svg", "png"}, time.Millisecond, nil)
	h.OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)

	if got := testutil.ToFloat64(r.StageErrors.WithLabelValues("layout")); got != 1 {
		t.Errorf("layout errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.StageErrors.WithLabelValues("parse")); got != 0 {
		t.Errorf("parse errors = %v, want 0", got)
	}
	if got := testutil.ToFloat64(r.RendersTotal.WithLabelValues("svg")); got != 2 {
		t.Errorf("svg renders = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(r.StageDuration); got != 4 {
		t.Errorf("stage duration series = %d, want 4", got)
	}
}

func TestCacheHooks(t *testing.T) {
	r := NewRegistry()
	h := cacheHooks{r}
	ctx := context.Background()

	h.OnCacheHit(ctx, "layout")
	h.OnCacheHit(ctx, "layout")
	h.OnCacheMiss(ctx, "artifact")
	h.OnCacheSet(ctx, "artifact", 2048)

	if got := testutil.ToFloat64(r.CacheRequests.WithLabelValues("layout", "hit")); got != 2 {
		t.Errorf("layout hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.CacheRequests.WithLabelValues("artifact", "miss")); got != 1 {
		t.Errorf("artifact misses = %v, want 1", got)
	}
}

func TestHTTPHooks(t *testing.T) {
	r := NewRegistry()
	h := httpHooks{r}
	ctx := context.Background()

	h.OnRequest(ctx, "POST", "/v1/render")
	if got := testutil.ToFloat64(r.HTTPRequestsInFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
	h.OnResponse(ctx, "POST", "/v1/render", 200, 5*time.Millisecond)
	if got := testutil.ToFloat64(r.HTTPRequestsInFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
	if got := testutil.ToFloat64(r.HTTPRequestsTotal.WithLabelValues("POST", "/v1/render", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
}

func TestInstall(t *testing.T) {
	t.Cleanup(observability.Reset)
	r := NewRegistry()
	r.Install()

	observability.Cache().OnCacheMiss(context.Background(), "netlist")
	if got := testutil.ToFloat64(r.CacheRequests.WithLabelValues("netlist", "miss")); got != 1 {
		t.Errorf("installed hooks not receiving events: %v", got)
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.RendersTotal.WithLabelValues("svg").Inc()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `mieza_renders_total{format="svg"} 1`) {
		t.Errorf("exposition missing render counter:\n%s", body)
	}
}
