// Package cli implements the mieza command-line interface.
//
// # Commands
//
//   - render: draw a circuit as SVG, PNG, PDF, or layout JSON
//   - layout: compute and save the layout of a circuit
//   - visualize: draw a saved layout without the source circuit
//   - netlist: export a SPICE or JSON netlist
//   - check: report structural errors and electrical warnings
//   - components: list component kinds and their pins
//   - serve: run the HTTP API
//   - cache: clear or locate the cache
//
// # Configuration
//
// Defaults come from config.toml (see [config.DefaultPath]); --config selects
// another file. Flags override the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The log level
// and format otherwise follow the [log] section of the config.
package cli
