// Package api serves the pipeline over HTTP.
//
// # Routes
//
//	POST /v1/render      render a circuit; one format returns the raw artifact
//	POST /v1/layout      layout and nets as JSON
//	POST /v1/netlist     SPICE or JSON netlist
//	POST /v1/check       checker report
//	GET  /v1/components  geometry of every component kind
//	GET  /healthz        liveness
//	GET  /metrics        Prometheus metrics, when a handler is configured
//
// Request bodies are [pipeline.Options] in JSON. Failures respond with
// {"code": ..., "message": ...}; input errors map to 4xx and everything else
// to 500.
package api
