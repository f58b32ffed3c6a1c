package pipeline

import (
	"context"

	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/errors"
	"github.com/matzehuels/mieza/pkg/layout"
	"github.com/matzehuels/mieza/pkg/netlist"
	"github.com/matzehuels/mieza/pkg/render"
	"github.com/matzehuels/mieza/pkg/render/nodelink"
	"github.com/matzehuels/mieza/pkg/render/schematic"
)

// Render produces every requested format. JSON is the layout itself in
// either view; the other formats draw the selected view.
func Render(ctx context.Context, c *circuit.Circuit, l layout.Layout, nets *netlist.Nets, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, f := range opts.Formats {
		format, err := render.ParseFormat(f)
		if err != nil {
			return nil, err
		}

		var data []byte
		switch {
		case format == render.FormatJSON:
			data, err = layout.Marshal(l)
		case opts.View == ViewNodelink:
			data, err = renderNodelink(ctx, c, nets, format, opts)
		default:
			data, err = renderSchematic(ctx, l, nets, format, opts)
		}
		if err != nil {
			return nil, errors.Wrap(codeOf(err), err, "render %s", format)
		}
		artifacts[f] = data
	}
	return artifacts, nil
}

// RenderLayout draws a saved layout as a schematic. Without the circuit there
// are no nets, so net labels are never drawn and the node-link view is
// unavailable.
func RenderLayout(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	if opts.View == ViewNodelink {
		return nil, errors.New(errors.ErrCodeUnsupported, "a saved layout can only be drawn as a schematic")
	}
	opts.View = ViewSchematic
	opts.NetLabels = false
	return Render(ctx, nil, l, nil, opts)
}

// SchematicOptions maps pipeline options onto the schematic renderer.
func SchematicOptions(nets *netlist.Nets, opts Options) []schematic.Option {
	theme, _ := schematic.ParseTheme(opts.Theme)
	style, _ := schematic.ParseStyle(opts.Style)
	out := []schematic.Option{schematic.WithTheme(theme), schematic.WithStyle(style)}
	if opts.NoPinDots {
		out = append(out, schematic.WithoutPinDots())
	}
	if opts.NetLabels && nets != nil {
		out = append(out, schematic.WithNetLabels(nets))
	}
	if opts.Title != "" {
		out = append(out, schematic.WithTitle(opts.Title))
	}
	return out
}

func renderSchematic(ctx context.Context, l layout.Layout, nets *netlist.Nets, format render.Format, opts Options) ([]byte, error) {
	svg := schematic.RenderSVG(l, SchematicOptions(nets, opts)...)
	return render.Convert(ctx, svg, format, opts.Scale)
}

func renderNodelink(ctx context.Context, c *circuit.Circuit, nets *netlist.Nets, format render.Format, opts Options) ([]byte, error) {
	dotOpts := nodelink.Options{Detailed: true}
	if opts.NetLabels {
		dotOpts.Nets = nets
	}
	dot := nodelink.ToDOT(c, dotOpts)

	switch format {
	case render.FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case render.FormatPNG:
		return nodelink.RenderPNG(ctx, dot, opts.Scale)
	case render.FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "node-link view cannot produce %s", format)
}

// codeOf returns err's code, or INTERNAL_ERROR for uncoded errors.
func codeOf(err error) errors.Code {
	if code := errors.GetCode(err); code != "" {
		return code
	}
	return errors.ErrCodeInternal
}
