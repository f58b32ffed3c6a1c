package netlist

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/errors"
	"github.com/matzehuels/mieza/pkg/geometry"
)

// Ground is the reserved net id of the ground reference.
const Ground = "0"

// autoPrefix starts generated net names: N1, N2, ...
const autoPrefix = "N"

// Net is one electrical node: a canonical id and its member pins in
// component-then-template order.
type Net struct {
	ID      string           `json:"id" bson:"id"`
	Members []circuit.PinRef `json:"members" bson:"members"`
}

// Nets is the result of net resolution. Every pin of every component belongs
// to exactly one net.
type Nets struct {
	byPin map[circuit.PinRef]string
	nets  []Net
}

// NetOf returns the net id of a pin.
func (n *Nets) NetOf(ref circuit.PinRef) (string, bool) {
	id, ok := n.byPin[ref]
	return id, ok
}

// List returns the nets with ground first, then in order of first member.
func (n *Nets) List() []Net {
	out := make([]Net, len(n.nets))
	for i, net := range n.nets {
		out[i] = Net{ID: net.ID, Members: append([]circuit.PinRef(nil), net.Members...)}
	}
	return out
}

// Map returns the pin → net id mapping keyed by "component.pin".
func (n *Nets) Map() map[string]string {
	out := make(map[string]string, len(n.byPin))
	for ref, id := range n.byPin {
		out[ref.String()] = id
	}
	return out
}

// Len returns the number of distinct nets.
func (n *Nets) Len() int { return len(n.nets) }

// MarshalJSON encodes the nets in List order along with the pin map.
func (n *Nets) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Nets []Net             `json:"nets"`
		Pins map[string]string `json:"pins"`
	}{n.List(), n.Map()})
}

// =============================================================================
// Resolution
// =============================================================================

// Resolve partitions every pin of every component into nets.
//
// Net declarations are applied first, each as a class named after the
// declaration; declarations sharing a pin or a name merge and the earliest
// name wins. Connections then union their endpoints; classes formed only by
// connections are named N1, N2, ... in the order they were first created,
// skipping declared names. Every pin of a ground-kind component forces its
// whole class onto Ground, regardless of when the ground wire was seen. Pins
// left untouched get singleton nets continuing the N sequence.
//
// Unknown component ids fail with DANGLING_CONNECTION and unknown pins with
// PIN_NOT_FOUND.
func Resolve(src geometry.Source, c *circuit.Circuit) (*Nets, error) {
	idx, err := indexPins(src, c)
	if err != nil {
		return nil, err
	}
	uf := newUnionFind(len(idx.refs))
	seq := 0

	declared := make(map[string]bool, len(c.Nets))
	byName := make(map[string]int, len(c.Nets))
	for _, d := range c.Nets {
		declared[d.Name] = true
		order := seq
		seq++
		anchor, named := byName[d.Name]
		for _, m := range d.Members {
			i, err := idx.lookup(m)
			if err != nil {
				return nil, errors.Wrap(errors.GetCode(err), err, "net %s", d.Name)
			}
			if r := uf.find(i); uf.order[r] < 0 {
				uf.order[r] = order
				uf.name[r] = d.Name
			}
			if !named {
				anchor, named = i, true
				byName[d.Name] = i
				continue
			}
			uf.union(anchor, i)
		}
	}

	for _, conn := range c.Connections {
		a, err := idx.lookup(conn.From)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "connection %s -> %s", conn.From, conn.To)
		}
		b, err := idx.lookup(conn.To)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "connection %s -> %s", conn.From, conn.To)
		}
		ra, rb := uf.find(a), uf.find(b)
		if uf.order[ra] < 0 && uf.order[rb] < 0 {
			uf.order[ra] = seq
			seq++
		}
		uf.union(ra, rb)
	}

	grounded := make(map[int]bool)
	for i := range idx.refs {
		if idx.kinds[i].IsGround() {
			grounded[uf.find(i)] = true
		}
	}

	return assemble(idx, uf, grounded, declared), nil
}

// assemble names every class and builds the public result.
func assemble(idx *pinIndex, uf *unionFind, grounded map[int]bool, declared map[string]bool) *Nets {
	names := make(map[int]string)
	auto := 0
	nextAuto := func() string {
		for {
			auto++
			name := fmt.Sprintf("%s%d", autoPrefix, auto)
			if !declared[name] {
				return name
			}
		}
	}

	// Connected classes are numbered in creation order.
	var connected []int
	for i := range idx.refs {
		r := uf.find(i)
		if r != i {
			continue
		}
		switch {
		case grounded[r]:
			names[r] = Ground
		case uf.name[r] != "":
			names[r] = uf.name[r]
		case uf.order[r] >= 0:
			connected = append(connected, r)
		}
	}
	sort.Slice(connected, func(a, b int) bool { return uf.order[connected[a]] < uf.order[connected[b]] })
	for _, r := range connected {
		names[r] = nextAuto()
	}

	// Untouched pins follow in component and template order.
	for i := range idx.refs {
		r := uf.find(i)
		if _, ok := names[r]; !ok {
			names[r] = nextAuto()
		}
	}

	out := &Nets{byPin: make(map[circuit.PinRef]string, len(idx.refs))}
	position := make(map[string]int)
	for i, ref := range idx.refs {
		id := names[uf.find(i)]
		out.byPin[ref] = id
		p, ok := position[id]
		if !ok {
			p = len(out.nets)
			position[id] = p
			out.nets = append(out.nets, Net{ID: id})
		}
		out.nets[p].Members = append(out.nets[p].Members, ref)
	}
	if p, ok := position[Ground]; ok && p != 0 {
		g := out.nets[p]
		copy(out.nets[1:p+1], out.nets[:p])
		out.nets[0] = g
	}
	return out
}

// =============================================================================
// Pin Index
// =============================================================================

// pinIndex numbers every (component, pin) in component order, then template
// pin order.
type pinIndex struct {
	refs  []circuit.PinRef
	kinds []circuit.Kind
	ids   map[circuit.PinRef]int
	comps map[string]geometry.Template
}

func indexPins(src geometry.Source, c *circuit.Circuit) (*pinIndex, error) {
	idx := &pinIndex{
		ids:   make(map[circuit.PinRef]int),
		comps: make(map[string]geometry.Template, len(c.Components)),
	}
	for _, comp := range c.Components {
		if _, dup := idx.comps[comp.ID]; dup {
			return nil, errors.New(errors.ErrCodeDuplicateComponent, "duplicate component id %q", comp.ID)
		}
		tmpl, err := src.Lookup(comp.Kind)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnknownComponentType, err, "component %s", comp.ID)
		}
		idx.comps[comp.ID] = tmpl
		for _, p := range tmpl.Pins {
			ref := circuit.PinRef{Component: comp.ID, Pin: p.Name}
			idx.ids[ref] = len(idx.refs)
			idx.refs = append(idx.refs, ref)
			idx.kinds = append(idx.kinds, comp.Kind)
		}
	}
	return idx, nil
}

func (idx *pinIndex) lookup(ref circuit.PinRef) (int, error) {
	tmpl, ok := idx.comps[ref.Component]
	if !ok {
		return 0, errors.New(errors.ErrCodeDanglingConnection, "unknown component %q", ref.Component)
	}
	i, ok := idx.ids[ref]
	if !ok {
		return 0, errors.New(errors.ErrCodePinNotFound, "pin %q not found on %s %s (has %v)", ref.Pin, tmpl.Kind, ref.Component, tmpl.PinNames())
	}
	return i, nil
}

// =============================================================================
// Union-Find
// =============================================================================

// unionFind is a disjoint-set forest with union by size and path halving.
// Each root carries the creation order of its class (-1 until the class is
// touched by a declaration or connection) and its declared name, if any.
type unionFind struct {
	parent []int
	size   []int
	order  []int
	name   []string
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int, n),
		size:   make([]int, n),
		order:  make([]int, n),
		name:   make([]string, n),
	}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
		uf.order[i] = -1
	}
	return uf
}

func (uf *unionFind) find(i int) int {
	for uf.parent[i] != i {
		uf.parent[i] = uf.parent[uf.parent[i]]
		i = uf.parent[i]
	}
	return i
}

// union merges the classes of a and b. The merged class keeps the order and
// name of the older of the two.
func (uf *unionFind) union(a, b int) int {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return ra
	}
	senior := ra
	if older(uf.order[rb], uf.order[ra]) {
		senior = rb
	}
	order, name := uf.order[senior], uf.name[senior]

	if uf.size[ra] < uf.size[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
	uf.order[ra] = order
	uf.name[ra] = name
	return ra
}

// older reports whether order a predates order b. Untouched classes (-1) are
// never older.
func older(a, b int) bool {
	if a < 0 {
		return false
	}
	return b < 0 || a < b
}
