package circuit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mieza/pkg/errors"
)

// Encoding selects the structured serialization of a circuit.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingYAML Encoding = "yaml"
)

// EncodingForPath infers the encoding from a file extension.
// The second result is false for extensions that are not JSON or YAML.
func EncodingForPath(path string) (Encoding, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return EncodingJSON, true
	case ".yaml", ".yml":
		return EncodingYAML, true
	}
	return "", false
}

// =============================================================================
// Circuit Serialization API
// =============================================================================

// Marshal encodes a circuit. JSON output is indented for diffing.
func Marshal(c *Circuit, enc Encoding) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(c, &buf, enc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes and validates a circuit.
func Unmarshal(data []byte, enc Encoding) (*Circuit, error) {
	return Read(bytes.NewReader(data), enc)
}

// Write encodes a circuit to w.
func Write(c *Circuit, w io.Writer, enc Encoding) error {
	switch enc {
	case EncodingJSON:
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		if err := e.Encode(c); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case EncodingYAML:
		e := yaml.NewEncoder(w)
		e.SetIndent(2)
		if err := e.Encode(c); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return e.Close()
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported circuit encoding %q", enc)
	}
	return nil
}

// Read decodes a circuit from r and validates it.
func Read(r io.Reader, enc Encoding) (*Circuit, error) {
	var c Circuit
	switch enc {
	case EncodingJSON:
		if err := json.NewDecoder(r).Decode(&c); err != nil {
			return nil, wrapDecode(err)
		}
	case EncodingYAML:
		if err := yaml.NewDecoder(r).Decode(&c); err != nil && err != io.EOF {
			return nil, wrapDecode(err)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported circuit encoding %q", enc)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// WriteFile writes a circuit, picking the encoding from the extension.
func WriteFile(c *Circuit, path string) error {
	enc, ok := EncodingForPath(path)
	if !ok {
		return errors.New(errors.ErrCodeInvalidFormat, "cannot infer circuit encoding from %s", path)
	}
	data, err := Marshal(c, enc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a circuit, picking the encoding from the extension.
func ReadFile(path string) (*Circuit, error) {
	enc, ok := EncodingForPath(path)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "cannot infer circuit encoding from %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, enc)
}

// wrapDecode keeps structured errors raised by UnmarshalText (unknown kinds)
// and tags everything else as a parse failure.
func wrapDecode(err error) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeParse, err, "decode circuit")
}
