// Package pipeline runs the circuit → schematic pipeline shared by the CLI and
// the HTTP API.
//
// # Stages
//
//  1. Parse: CDL, JSON, or YAML source into a validated circuit
//  2. Analyze: layout and net resolution, run concurrently
//  3. Render: schematic or node-link view in SVG, PNG, PDF, or layout JSON
//  4. Export: SPICE or JSON netlist
//
// Layouts, netlists, and artifacts are cached by content hash, so re-running
// an unchanged circuit costs a parse and a few cache reads.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  src,
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mieza/pkg/cache"
	"github.com/matzehuels/mieza/pkg/check"
	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/errors"
	"github.com/matzehuels/mieza/pkg/layout"
	"github.com/matzehuels/mieza/pkg/netlist"
	"github.com/matzehuels/mieza/pkg/render"
	"github.com/matzehuels/mieza/pkg/render/schematic"
)

// =============================================================================
// Default Values
// =============================================================================

// Source formats.
const (
	SourceCDL  = "cdl"
	SourceJSON = "json"
	SourceYAML = "yaml"
)

// Views.
const (
	ViewSchematic = "schematic"
	ViewNodelink  = "nodelink"
)

// Netlist formats.
const (
	NetlistSPICE = "spice"
	NetlistJSON  = "json"
)

const (
	DefaultSourceFormat = SourceCDL
	DefaultView         = ViewSchematic
	DefaultScale        = 1.0
)

var (
	validSources  = []string{SourceCDL, SourceJSON, SourceYAML}
	validViews    = []string{ViewSchematic, ViewNodelink}
	validNetlists = []string{NetlistSPICE, NetlistJSON}
)

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run. It doubles as the API request body.
type Options struct {
	// Input: either Source (raw text in SourceFormat) or Circuit.
	Source       string           `json:"source,omitempty"`
	SourceFormat string           `json:"source_format,omitempty"`
	Name         string           `json:"name,omitempty"` // file name used in parse errors
	Circuit      *circuit.Circuit `json:"circuit,omitempty"`

	// Render options. No formats means no rendering.
	Formats   []string `json:"formats,omitempty"`
	View      string   `json:"view,omitempty"`
	Theme     string   `json:"theme,omitempty"`
	Style     string   `json:"style,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	NoPinDots bool     `json:"no_pin_dots,omitempty"`
	NetLabels bool     `json:"net_labels,omitempty"`
	Title     string   `json:"title,omitempty"`

	// Netlist options. An empty format skips export.
	NetlistFormat string `json:"netlist_format,omitempty"`
	NetlistTitle  string `json:"netlist_title,omitempty"`
	Models        bool   `json:"models,omitempty"`

	// Check runs the checker and fails on any error diagnostic before layout.
	Check bool `json:"check,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// SetDefaults fills in unset fields.
func (o *Options) SetDefaults() {
	if o.SourceFormat == "" {
		o.SourceFormat = DefaultSourceFormat
	}
	if o.View == "" {
		o.View = DefaultView
	}
	if o.Theme == "" {
		o.Theme = string(schematic.ThemeLight)
	}
	if o.Style == "" {
		o.Style = string(schematic.StyleIEEE)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks every option. Failures carry the matching input code.
func (o *Options) Validate() error {
	if o.Circuit == nil && o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source or circuit is required")
	}
	if !slices.Contains(validSources, o.SourceFormat) {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown source format %q (want cdl, json, or yaml)", o.SourceFormat)
	}
	if !slices.Contains(validViews, o.View) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown view %q (want schematic or nodelink)", o.View)
	}
	for _, f := range o.Formats {
		if _, err := render.ParseFormat(f); err != nil {
			return err
		}
	}
	if _, err := schematic.ParseTheme(o.Theme); err != nil {
		return err
	}
	if _, err := schematic.ParseStyle(o.Style); err != nil {
		return err
	}
	if o.Scale < 0 || o.Scale > 10 {
		return errors.New(errors.ErrCodeInvalidInput, "scale %g out of range (0, 10]", o.Scale)
	}
	if o.NetlistFormat != "" && !slices.Contains(validNetlists, o.NetlistFormat) {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown netlist format %q (want spice or json)", o.NetlistFormat)
	}
	return nil
}

// ValidateAndSetDefaults applies defaults then validates. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns the cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, View: o.View}
	if o.View == ViewSchematic {
		k.Theme = o.Theme
		k.Style = o.Style
		k.PinDots = !o.NoPinDots
		k.NetLabels = o.NetLabels
	}
	if format == string(render.FormatPNG) {
		k.Scale = o.Scale
	}
	return k
}

// NetlistKeyOpts returns the cache key options for netlist export.
func (o *Options) NetlistKeyOpts() cache.NetlistKeyOpts {
	return cache.NetlistKeyOpts{Format: o.NetlistFormat, Title: o.NetlistTitle, Models: o.Models}
}

// =============================================================================
// Results
// =============================================================================

// Result holds everything a pipeline run produced.
type Result struct {
	Circuit     *circuit.Circuit
	CircuitHash string
	Layout      layout.Layout
	Nets        *netlist.Nets
	Report      *check.Report
	Artifacts   map[string][]byte
	Netlist     []byte
	Stats       Stats
	CacheInfo   CacheInfo
}

// Stats records sizes and stage timings.
type Stats struct {
	Components  int           `json:"components"`
	Connections int           `json:"connections"`
	Nets        int           `json:"nets"`
	ParseTime   time.Duration `json:"parse_ns"`
	AnalyzeTime time.Duration `json:"analyze_ns"`
	RenderTime  time.Duration `json:"render_ns"`
	ExportTime  time.Duration `json:"export_ns"`
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	LayoutHit  bool `json:"layout_hit"`
	RenderHit  bool `json:"render_hit"` // every requested artifact came from the cache
	NetlistHit bool `json:"netlist_hit"`
}
