package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/mieza/pkg/buildinfo"
	"github.com/matzehuels/mieza/pkg/check"
	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/errors"
	"github.com/matzehuels/mieza/pkg/geometry"
	"github.com/matzehuels/mieza/pkg/layout"
	"github.com/matzehuels/mieza/pkg/netlist"
	"github.com/matzehuels/mieza/pkg/pipeline"
	"github.com/matzehuels/mieza/pkg/render"
)

// Response headers set on raw artifact responses.
const (
	HeaderCircuitHash = "X-Circuit-Hash"
	HeaderCache       = "X-Cache"
)

// RenderResponse is returned by /v1/render when more than one format is
// requested. Artifacts are base64 encoded.
type RenderResponse struct {
	CircuitHash string             `json:"circuit_hash"`
	Artifacts   map[string][]byte  `json:"artifacts"`
	Stats       pipeline.Stats     `json:"stats"`
	Cache       pipeline.CacheInfo `json:"cache"`
}

// LayoutResponse is returned by /v1/layout.
type LayoutResponse struct {
	CircuitHash string        `json:"circuit_hash"`
	Layout      layout.Layout `json:"layout"`
	Nets        *netlist.Nets `json:"nets"`
	Cached      bool          `json:"cached"`
}

// CheckResponse is returned by /v1/check.
type CheckResponse struct {
	OK          bool               `json:"ok"`
	Diagnostics []check.Diagnostic `json:"diagnostics"`
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// ComponentsResponse is returned by /v1/components.
type ComponentsResponse struct {
	Components []geometry.Template `json:"components"`
}

func (s *Server) decode(r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		if errors.GetCode(err) != "" {
			return opts, err
		}
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	s.applyDefaults(&opts)
	return opts, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decode(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{s.render.Format}
	}
	opts.NetlistFormat = ""

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if len(opts.Formats) == 1 {
		f := opts.Formats[0]
		w.Header().Set(HeaderCircuitHash, result.CircuitHash)
		w.Header().Set(HeaderCache, cacheHeader(result.CacheInfo.RenderHit))
		writeRaw(w, contentType(render.Format(f)), result.Artifacts[f])
		return
	}
	writeJSON(w, http.StatusOK, RenderResponse{
		CircuitHash: result.CircuitHash,
		Artifacts:   result.Artifacts,
		Stats:       result.Stats,
		Cache:       result.CacheInfo,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decode(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = nil
	opts.NetlistFormat = ""

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LayoutResponse{
		CircuitHash: result.CircuitHash,
		Layout:      result.Layout,
		Nets:        result.Nets,
		Cached:      result.CacheInfo.LayoutHit,
	})
}

func (s *Server) handleNetlist(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decode(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if opts.NetlistFormat == "" {
		opts.NetlistFormat = pipeline.NetlistSPICE
	}
	opts.Formats = nil

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ctype := "text/plain; charset=utf-8"
	if opts.NetlistFormat == pipeline.NetlistJSON {
		ctype = "application/json"
	}
	w.Header().Set(HeaderCircuitHash, result.CircuitHash)
	w.Header().Set(HeaderCache, cacheHeader(result.CacheInfo.NetlistHit))
	writeRaw(w, ctype, result.Netlist)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decode(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}

	c, err := s.runner.Parse(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	report := s.runner.Check(c)
	diags := report.Diagnostics
	if diags == nil {
		diags = []check.Diagnostic{}
	}
	writeJSON(w, http.StatusOK, CheckResponse{OK: !report.HasErrors(), Diagnostics: diags})
}

func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	var out []geometry.Template
	for _, k := range circuit.Kinds() {
		if t, err := s.runner.Registry.Lookup(k); err == nil {
			out = append(out, t)
		}
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(len(out)))
	writeJSON(w, http.StatusOK, ComponentsResponse{Components: out})
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
