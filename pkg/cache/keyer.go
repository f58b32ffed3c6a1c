package cache

// Keyer derives cache keys for each pipeline stage. Keys depend only on
// content hashes and the options that change the stage's output.
type Keyer interface {
	LayoutKey(circuitHash string, opts LayoutKeyOpts) string
	NetlistKey(circuitHash string, opts NetlistKeyOpts) string
	ArtifactKey(circuitHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the inputs besides the circuit that affect a layout.
type LayoutKeyOpts struct {
	Registry string `json:"registry"`
}

// NetlistKeyOpts are the inputs besides the circuit that affect an exported
// netlist.
type NetlistKeyOpts struct {
	Format string `json:"format"`
	Title  string `json:"title,omitempty"`
	Models bool   `json:"models,omitempty"`
}

// ArtifactKeyOpts are the inputs besides the circuit that affect an
// artifact.
type ArtifactKeyOpts struct {
	Registry  string  `json:"registry"`
	Format    string  `json:"format"`
	View      string  `json:"view"`
	Theme     string  `json:"theme,omitempty"`
	Style     string  `json:"style,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
	PinDots   bool    `json:"pin_dots,omitempty"`
	NetLabels bool    `json:"net_labels,omitempty"`
}

// DefaultKeyer hashes stage options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(circuitHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", circuitHash, opts)
}

// NetlistKey returns "netlist:<hash>".
func (DefaultKeyer) NetlistKey(circuitHash string, opts NetlistKeyOpts) string {
	return hashKey("netlist", circuitHash, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(circuitHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", circuitHash, opts)
}
