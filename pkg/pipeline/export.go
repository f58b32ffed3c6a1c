package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/errors"
	"github.com/matzehuels/mieza/pkg/netlist"
)

// Export writes the netlist in opts.NetlistFormat.
func Export(c *circuit.Circuit, nets *netlist.Nets, opts Options) ([]byte, error) {
	switch opts.NetlistFormat {
	case NetlistSPICE:
		var spiceOpts []netlist.SPICEOption
		if opts.NetlistTitle != "" {
			spiceOpts = append(spiceOpts, netlist.WithTitle(opts.NetlistTitle))
		}
		if opts.Models {
			spiceOpts = append(spiceOpts, netlist.WithModels())
		}
		return netlist.ExportSPICE(c, nets, spiceOpts...)
	case NetlistJSON:
		data, err := json.MarshalIndent(nets, "", "  ")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode nets")
		}
		return append(data, '\n'), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown netlist format %q", opts.NetlistFormat)
}
