package pipeline

import (
	"strings"

	"github.com/matzehuels/mieza/pkg/cdl"
	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/errors"
)

// Parse turns the input described by opts into a validated circuit.
func Parse(opts Options) (*circuit.Circuit, error) {
	if opts.Circuit != nil {
		if err := opts.Circuit.Validate(); err != nil {
			return nil, err
		}
		return opts.Circuit, nil
	}

	switch opts.SourceFormat {
	case SourceJSON:
		return circuit.Unmarshal([]byte(opts.Source), circuit.EncodingJSON)
	case SourceYAML:
		return circuit.Unmarshal([]byte(opts.Source), circuit.EncodingYAML)
	case SourceCDL, "":
		name := opts.Name
		if name == "" {
			name = "<input>"
		}
		return cdl.Parse(name, strings.NewReader(opts.Source))
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown source format %q", opts.SourceFormat)
}

// SourceFormatFor infers the source format from a file name: .json and
// .yaml/.yml are structured, anything else is CDL.
func SourceFormatFor(path string) string {
	if enc, ok := circuit.EncodingForPath(path); ok {
		return string(enc)
	}
	return SourceCDL
}

// sourceLabel names the input for hooks and logs.
func sourceLabel(opts Options) string {
	if opts.Circuit != nil {
		return "circuit"
	}
	return opts.SourceFormat
}
