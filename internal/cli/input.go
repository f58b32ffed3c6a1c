package cli

import (
	"io"
	"os"

	"github.com/matzehuels/mieza/pkg/errors"
	"github.com/matzehuels/mieza/pkg/pipeline"
)

// readInput loads the circuit source named by path into opts. "-" reads
// standard input, whose format defaults to CDL unless --from says otherwise.
func (c *CLI) readInput(path, from string, opts *pipeline.Options) error {
	var (
		data []byte
		err  error
	)
	if path == stdinArg {
		data, err = io.ReadAll(c.stdin)
		opts.Name = "<stdin>"
	} else {
		data, err = os.ReadFile(path)
		opts.Name = path
	}
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s not found", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}

	opts.Source = string(data)
	switch {
	case from != "":
		opts.SourceFormat = from
	case path == stdinArg:
		opts.SourceFormat = pipeline.SourceCDL
	default:
		opts.SourceFormat = pipeline.SourceFormatFor(path)
	}
	return nil
}

// writeOutput writes data to path, or to standard output when path is "-".
func writeOutput(path string, data []byte) error {
	if path == stdinArg {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
