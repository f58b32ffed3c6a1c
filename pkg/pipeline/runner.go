package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/mieza/pkg/cache"
	"github.com/matzehuels/mieza/pkg/check"
	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/errors"
	"github.com/matzehuels/mieza/pkg/geometry"
	"github.com/matzehuels/mieza/pkg/layout"
	"github.com/matzehuels/mieza/pkg/netlist"
	"github.com/matzehuels/mieza/pkg/observability"
)

// StandardRegistry names geometry.Standard in cache keys.
const StandardRegistry = "standard"

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner can serve concurrent requests.
type Runner struct {
	Cache        cache.Cache
	Keyer        cache.Keyer
	Registry     geometry.Source
	RegistryName string // distinguishes cache entries built from different registries
	Logger       *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer means
// DefaultKeyer, and a nil registry means geometry.Standard.
func NewRunner(c cache.Cache, keyer cache.Keyer, src geometry.Source, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if src == nil {
		src = geometry.Standard()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:        c,
		Keyer:        keyer,
		Registry:     src,
		RegistryName: StandardRegistry,
		Logger:       logger,
	}
}

// Execute runs parse → analyze → render → export. It stops at the first
// failing stage and returns nothing partial.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	c, err := r.Parse(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Circuit = c
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.Components = len(c.Components)
	result.Stats.Connections = len(c.Connections)

	hash, err := HashCircuit(c)
	if err != nil {
		return nil, err
	}
	result.CircuitHash = hash

	logger.Info("parsed circuit",
		"components", len(c.Components),
		"connections", len(c.Connections),
		"duration", result.Stats.ParseTime)

	if opts.Check {
		report := r.Check(c)
		result.Report = report
		for _, d := range report.Warnings() {
			logger.Warn(d.Message, "rule", d.Rule)
		}
		if err := report.Err(); err != nil {
			return nil, err
		}
	}

	// Stage 2: Analyze
	analyzeStart := time.Now()
	l, nets, layoutHit, err := r.Analyze(ctx, c, hash, opts.Refresh)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Nets = nets
	result.Stats.Nets = nets.Len()
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	result.CacheInfo.LayoutHit = layoutHit

	logger.Info("analyzed circuit",
		"nets", nets.Len(),
		"cached", layoutHit,
		"duration", result.Stats.AnalyzeTime)

	// Stage 3: Render
	if len(opts.Formats) > 0 {
		renderStart := time.Now()
		artifacts, hit, err := r.RenderWithCacheInfo(ctx, c, hash, l, nets, opts)
		if err != nil {
			return nil, err
		}
		result.Artifacts = artifacts
		result.Stats.RenderTime = time.Since(renderStart)
		result.CacheInfo.RenderHit = hit

		logger.Info("rendered outputs",
			"formats", opts.Formats,
			"view", opts.View,
			"cached", hit,
			"duration", result.Stats.RenderTime)
	}

	// Stage 4: Export
	if opts.NetlistFormat != "" {
		exportStart := time.Now()
		data, hit, err := r.ExportWithCacheInfo(ctx, c, hash, nets, opts)
		if err != nil {
			return nil, err
		}
		result.Netlist = data
		result.Stats.ExportTime = time.Since(exportStart)
		result.CacheInfo.NetlistHit = hit

		logger.Info("exported netlist",
			"format", opts.NetlistFormat,
			"bytes", len(data),
			"cached", hit,
			"duration", result.Stats.ExportTime)
	}

	return result, nil
}

// Parse runs the parse stage with observability hooks.
func (r *Runner) Parse(ctx context.Context, opts Options) (*circuit.Circuit, error) {
	source := sourceLabel(opts)
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, source)

	start := time.Now()
	c, err := Parse(opts)
	n := 0
	if c != nil {
		n = len(c.Components)
	}
	hooks.OnParseComplete(ctx, source, n, time.Since(start), err)
	return c, err
}

// Check runs every checker rule against c.
func (r *Runner) Check(c *circuit.Circuit) *check.Report {
	return check.Run(r.Registry, c)
}

// Analyze computes the layout and the nets of c concurrently. Both stages are
// deterministic; if both fail, the layout error is returned.
func (r *Runner) Analyze(ctx context.Context, c *circuit.Circuit, hash string, refresh bool) (layout.Layout, *netlist.Nets, bool, error) {
	var (
		l         layout.Layout
		nets      *netlist.Nets
		hit       bool
		layoutErr error
		netsErr   error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l, hit, layoutErr = r.LayoutWithCacheInfo(gctx, c, hash, refresh)
		return layoutErr
	})
	g.Go(func() error {
		nets, netsErr = r.ResolveNets(gctx, c)
		return netsErr
	})
	_ = g.Wait()

	if layoutErr != nil {
		return layout.Layout{}, nil, false, layoutErr
	}
	if netsErr != nil {
		return layout.Layout{}, nil, false, netsErr
	}
	return l, nets, hit, nil
}

// LayoutWithCacheInfo computes the layout of c, consulting the cache first
// unless refresh is set.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, c *circuit.Circuit, hash string, refresh bool) (layout.Layout, bool, error) {
	key := r.Keyer.LayoutKey(hash, cache.LayoutKeyOpts{Registry: r.RegistryName})

	if !refresh {
		if data, ok := r.cacheGet(ctx, key, "layout"); ok {
			if l, err := layout.Unmarshal(data); err == nil {
				return l, true, nil
			}
		}
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(c.Components))
	start := time.Now()
	l, err := layout.Compute(r.Registry, c)
	hooks.OnLayoutComplete(ctx, len(l.Components), len(l.Connections), time.Since(start), err)
	if err != nil {
		return layout.Layout{}, false, err
	}

	if data, err := layout.Marshal(l); err == nil {
		r.cacheSet(ctx, key, "layout", data, cache.TTLLayout)
	}
	return l, false, nil
}

// ResolveNets partitions the pins of c into nets. Resolution is cheap and
// never cached.
func (r *Runner) ResolveNets(ctx context.Context, c *circuit.Circuit) (*netlist.Nets, error) {
	start := time.Now()
	nets, err := netlist.Resolve(r.Registry, c)
	n := 0
	if nets != nil {
		n = nets.Len()
	}
	observability.Pipeline().OnNetsComplete(ctx, n, time.Since(start), err)
	return nets, err
}

// RenderWithCacheInfo renders opts.Formats. The hit result is true only when
// every format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c *circuit.Circuit, hash string, l layout.Layout, nets *netlist.Nets, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	keys := make(map[string]string, len(opts.Formats))
	for _, f := range opts.Formats {
		k := opts.ArtifactKeyOpts(f)
		k.Registry = r.RegistryName
		keys[f] = r.Keyer.ArtifactKey(hash, k)
	}

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, f := range opts.Formats {
			data, ok := r.cacheGet(ctx, keys[f], "artifact")
			if !ok {
				break
			}
			artifacts[f] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := Render(ctx, c, l, nets, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for f, data := range artifacts {
		r.cacheSet(ctx, keys[f], "artifact", data, cache.TTLArtifact)
	}
	return artifacts, false, nil
}

// ExportWithCacheInfo exports the netlist in opts.NetlistFormat.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, c *circuit.Circuit, hash string, nets *netlist.Nets, opts Options) ([]byte, bool, error) {
	key := r.Keyer.NetlistKey(hash, opts.NetlistKeyOpts())
	if !opts.Refresh {
		if data, ok := r.cacheGet(ctx, key, "netlist"); ok {
			return data, true, nil
		}
	}

	data, err := Export(c, nets, opts)
	if err != nil {
		return nil, false, err
	}
	r.cacheSet(ctx, key, "netlist", data, cache.TTLNetlist)
	return data, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// HashCircuit returns the content hash used in cache keys: the SHA-256 of the
// circuit's canonical JSON encoding.
func HashCircuit(c *circuit.Circuit) (string, error) {
	data, err := circuit.Marshal(c, circuit.EncodingJSON)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash circuit")
	}
	return cache.Hash(data), nil
}

// cacheGet reads key, treating backend errors as misses.
func (r *Runner) cacheGet(ctx context.Context, key, keyType string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "type", keyType, "err", err)
		hit = false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
		return data, true
	}
	observability.Cache().OnCacheMiss(ctx, keyType)
	return nil, false
}

// cacheSet writes key, logging rather than failing on backend errors.
func (r *Runner) cacheSet(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// applyLogger sets the runner's logger on opts if none is set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
