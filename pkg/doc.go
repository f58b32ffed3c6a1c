// Package pkg provides the core libraries for Mieza circuit schematics.
//
// # Overview
//
// Mieza turns an abstract circuit (component instances and the wires between
// their pins) into a drawn schematic. Layout is deterministic: the same
// circuit always produces the same positions, pins, and wire paths, which is
// what lets every stage be cached by content hash.
//
// # Architecture
//
// The typical data flow:
//
//	CDL / JSON / YAML source
//	         ↓
//	    [cdl] / [circuit] (parse into the circuit graph)
//	         ↓
//	    [layout] ∥ [netlist] (place, resolve pins, route ∥ resolve nets)
//	         ↓
//	    [render] (schematic SVG, connectivity diagram, PNG/PDF)
//	    [netlist] (SPICE or JSON netlist)
//
// [geometry] supplies every stage with the static footprint of each component
// kind. [check] reports problems before layout. [pipeline] ties the stages
// together with caching and is shared by the CLI and the HTTP [api].
//
// # Main Packages
//
// ## Domain
//
// [circuit] - Component instances, pin references, connections, and named
// nets, with JSON and YAML encodings.
//
// [cdl] - The circuit description language, a line-oriented text format.
//
// [geometry] - Component templates: size and pin offsets per kind.
//
// [layout] - Placement, absolute pin positions, and orthogonal wire routing.
//
// [netlist] - Net resolution with ground merging and SPICE export.
//
// [check] - Structural errors and electrical warnings.
//
// ## Output
//
// [render] - Format conversion (SVG to PNG/PDF) shared by all views.
//
// [render/schematic] - The schematic SVG with IEEE, IEC, and DIN symbols.
//
// [render/nodelink] - A connectivity diagram of components and nets via Graphviz.
//
// ## Infrastructure
//
// [pipeline] - parse → (layout ∥ nets) → render/export, used by CLI and API.
//
// [cache] - File, Redis, and MongoDB caches keyed by content hash.
//
// [config] - The TOML configuration file.
//
// [observability] and [metrics] - Lifecycle hooks and their Prometheus
// implementation.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                   # All tests
//	go test ./pkg/layout/...            # Specific package
//	go test -run Example ./pkg/...      # Examples only
//	MIEZA_TEST_REDIS_URL=redis://localhost:6379/0 go test ./pkg/cache/...
//
// [circuit]: https://pkg.go.dev/github.com/matzehuels/mieza/pkg/circuit
// [cdl]: https://pkg.go.dev/github.com/matzehuels/mieza/pkg/cdl
// [geometry]: https://pkg.go.dev/github.com/matzehuels/mieza/pkg/geometry
// [layout]: https://pkg.go.dev/github.com/matzehuels/mieza/pkg/layout
// [netlist]: https://pkg.go.dev/github.com/matzehuels/mieza/pkg/netlist
// [check]: https://pkg.go.dev/github.com/matzehuels/mieza/pkg/check
// [render]: https://pkg.go.dev/github.com/matzehuels/mieza/pkg/render
// [render/schematic]: https://pkg.go.dev/github.com/matzehuels/mieza/pkg/render/schematic
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/mieza/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/mieza/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/mieza/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/mieza/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/mieza/pkg/observability
// [metrics]: https://pkg.go.dev/github.com/matzehuels/mieza/pkg/metrics
// [errors]: https://pkg.go.dev/github.com/matzehuels/mieza/pkg/errors
// [api]: https://pkg.go.dev/github.com/matzehuels/mieza/pkg/api
package pkg
