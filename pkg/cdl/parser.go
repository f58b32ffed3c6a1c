package cdl

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/errors"
)

// Property keys with dedicated meaning on component lines.
const (
	KeyRotation = "rotation"
	KeyLabel    = "label"
)

// Parser turns CDL source into a validated circuit.
type Parser struct {
	parser *participle.Parser[File]
}

// NewParser creates a CDL parser instance.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[File](
		participle.Lexer(Lexer),
		participle.Elide("Comment", "Whitespace"),
		participle.Unquote("String"),
		participle.UseLookahead(3),
	)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build CDL parser")
	}
	return &Parser{parser: parser}, nil
}

// Parse reads CDL from r. The name is used in error positions.
func (p *Parser) Parse(name string, r io.Reader) (*circuit.Circuit, error) {
	f, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, syntaxError(err)
	}
	return build(f)
}

// ParseString parses CDL held in memory.
func (p *Parser) ParseString(name, input string) (*circuit.Circuit, error) {
	f, err := p.parser.ParseString(name, input)
	if err != nil {
		return nil, syntaxError(err)
	}
	return build(f)
}

// ParseFile parses the CDL file at path.
func (p *Parser) ParseFile(path string) (*circuit.Circuit, error) {
	file, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer file.Close()

	return p.Parse(path, file)
}

// AST parses without converting, for tools that need source positions.
func (p *Parser) AST(name, input string) (*File, error) {
	f, err := p.parser.ParseString(name, input)
	if err != nil {
		return nil, syntaxError(err)
	}
	return f, nil
}

var defaultParser = sync.OnceValues(NewParser)

// Parse reads CDL from r using a shared parser.
func Parse(name string, r io.Reader) (*circuit.Circuit, error) {
	p, err := defaultParser()
	if err != nil {
		return nil, err
	}
	return p.Parse(name, r)
}

// ParseString parses CDL held in memory using a shared parser.
func ParseString(input string) (*circuit.Circuit, error) {
	p, err := defaultParser()
	if err != nil {
		return nil, err
	}
	return p.ParseString("", input)
}

// ParseFile parses the CDL file at path using a shared parser.
func ParseFile(path string) (*circuit.Circuit, error) {
	p, err := defaultParser()
	if err != nil {
		return nil, err
	}
	return p.ParseFile(path)
}

func syntaxError(err error) error {
	var perr participle.Error
	if stderrors.As(err, &perr) {
		return errors.Wrap(errors.ErrCodeParse, err, "%s: %s", position(perr.Position()), perr.Message())
	}
	return errors.Wrap(errors.ErrCodeParse, err, "parse CDL")
}

func position(pos lexer.Position) string {
	if pos.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.Line, pos.Column)
	}
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}

// at re-issues a coded error with the source position prefixed.
func at(pos lexer.Position, err error) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeParse
	}
	return errors.Wrap(code, err, "%s", position(pos))
}

// =============================================================================
// AST -> circuit
// =============================================================================

func build(f *File) (*circuit.Circuit, error) {
	c := &circuit.Circuit{}
	seen := make(map[string]bool)
	for _, st := range f.Statements {
		switch {
		case st.Component != nil:
			comp, err := buildComponent(st.Component)
			if err != nil {
				return nil, err
			}
			if seen[comp.ID] {
				return nil, errors.New(errors.ErrCodeDuplicateComponent,
					"%s: duplicate component id %q", position(st.Component.Pos), comp.ID)
			}
			seen[comp.ID] = true
			c.Components = append(c.Components, comp)
		case st.Connection != nil:
			c.Connections = append(c.Connections, buildConnection(st.Connection))
		case st.Net != nil:
			n := circuit.NetDeclaration{Name: st.Net.Name}
			for _, m := range st.Net.Members {
				n.Members = append(n.Members, m.ref())
			}
			c.Nets = append(c.Nets, n)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func buildComponent(s *ComponentStmt) (circuit.Component, error) {
	kind, err := circuit.ParseKind(s.Kind)
	if err != nil {
		return circuit.Component{}, at(s.Pos, err)
	}
	comp := circuit.Component{ID: s.ID, Kind: kind}

	bare := 0
	for _, it := range s.Items {
		switch {
		case it.Position != nil:
			if comp.Position != nil {
				return comp, errors.New(errors.ErrCodeParse, "%s: %s has two positions", position(it.Pos), s.ID)
			}
			comp.Position = &circuit.Point{X: it.Position.X, Y: it.Position.Y}
		case it.Property != nil:
			if err := applyProperty(&comp, it.Property); err != nil {
				return comp, err
			}
		case it.Bare != nil:
			// The first bare token is the value; a second one may only be a
			// label given without the label= key.
			switch bare {
			case 0:
				comp.Value = *it.Bare
			case 1:
				if comp.Label != "" {
					return comp, errors.New(errors.ErrCodeParse, "%s: unexpected %q", position(it.Pos), *it.Bare)
				}
				comp.Label = *it.Bare
			default:
				return comp, errors.New(errors.ErrCodeParse, "%s: unexpected %q", position(it.Pos), *it.Bare)
			}
			bare++
		}
	}
	return comp, nil
}

func applyProperty(comp *circuit.Component, p *Property) error {
	switch p.Key {
	case KeyRotation:
		r, err := circuit.ParseRotation(p.Value)
		if err != nil {
			return at(p.Pos, err)
		}
		comp.Rotation = r
	case KeyLabel:
		comp.Label = p.Value
	default:
		if comp.Properties == nil {
			comp.Properties = make(map[string]string)
		}
		comp.Properties[p.Key] = p.Value
	}
	return nil
}

func buildConnection(s *ConnectionStmt) circuit.Connection {
	conn := circuit.Connection{From: s.From.ref(), To: s.To.ref()}
	for _, p := range s.Properties {
		if conn.Properties == nil {
			conn.Properties = make(map[string]string, len(s.Properties))
		}
		conn.Properties[p.Key] = p.Value
	}
	return conn
}

func (r *PinRef) ref() circuit.PinRef {
	return circuit.PinRef{Component: r.Component, Pin: r.Pin}
}
