package netlist

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/mieza/pkg/circuit"
	"github.com/matzehuels/mieza/pkg/geometry"
)

// groundedBus wires pin 1 of n resistors together, attaches a ground symbol
// to resistor k, and shuffles the connection order.
func groundedBus(n, k int, seed int64) *circuit.Circuit {
	c := &circuit.Circuit{Components: []circuit.Component{{ID: "GND", Kind: circuit.KindSignalGround}}}
	for i := 0; i < n; i++ {
		c.Components = append(c.Components, circuit.Component{ID: fmt.Sprintf("R%d", i), Kind: circuit.KindResistor})
		if i > 0 {
			c.Connections = append(c.Connections, wire(fmt.Sprintf("R%d.1", i-1), fmt.Sprintf("R%d.1", i)))
		}
	}
	c.Connections = append(c.Connections, wire("GND.GND", fmt.Sprintf("R%d.1", k%n)))
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(c.Connections), func(i, j int) {
		c.Connections[i], c.Connections[j] = c.Connections[j], c.Connections[i]
	})
	return c
}

// components labels each pin with a connected-component id by flooding the
// wire graph, independently of the union-find.
func components(c *circuit.Circuit, reg *geometry.Registry) map[circuit.PinRef]int {
	adj := make(map[circuit.PinRef][]circuit.PinRef)
	for _, w := range c.Connections {
		adj[w.From] = append(adj[w.From], w.To)
		adj[w.To] = append(adj[w.To], w.From)
	}
	label := make(map[circuit.PinRef]int)
	next := 0
	for _, comp := range c.Components {
		tmpl, _ := reg.Lookup(comp.Kind)
		for _, p := range tmpl.Pins {
			start := circuit.PinRef{Component: comp.ID, Pin: p.Name}
			if _, seen := label[start]; seen {
				continue
			}
			stack := []circuit.PinRef{start}
			label[start] = next
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for _, nb := range adj[cur] {
					if _, seen := label[nb]; !seen {
						label[nb] = next
						stack = append(stack, nb)
					}
				}
			}
			next++
		}
	}
	return label
}

func TestNetProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)
	reg := geometry.Standard()

	properties.Property("ground propagates regardless of wire order", prop.ForAll(
		func(n, k int, seed int64) bool {
			c := groundedBus(n, k, seed)
			nets, err := Resolve(reg, c)
			if err != nil {
				return false
			}
			for i := 0; i < n; i++ {
				if id, _ := nets.NetOf(circuit.PinRef{Component: fmt.Sprintf("R%d", i), Pin: "1"}); id != Ground {
					return false
				}
				if id, _ := nets.NetOf(circuit.PinRef{Component: fmt.Sprintf("R%d", i), Pin: "2"}); id == Ground {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 20),
		gen.IntRange(0, 19),
		gen.Int64(),
	))

	properties.Property("nets match connected components", prop.ForAll(
		func(n int, pairs []int) bool {
			c := &circuit.Circuit{Components: resistors()}
			for i := 0; i < n; i++ {
				c.Components = append(c.Components, comp(fmt.Sprintf("R%d", i), circuit.KindResistor))
			}
			pin := func(v int) string {
				v = (v%(2*n) + 2*n) % (2 * n)
				return fmt.Sprintf("R%d.%d", v/2, v%2+1)
			}
			for i := 0; i+1 < len(pairs); i += 2 {
				c.Connections = append(c.Connections, wire(pin(pairs[i]), pin(pairs[i+1])))
			}

			nets, err := Resolve(reg, c)
			if err != nil {
				return false
			}
			label := components(c, reg)
			ids := nets.Map()
			if len(ids) != 2*n {
				return false
			}
			for a, la := range label {
				for b, lb := range label {
					if (la == lb) != (ids[a.String()] == ids[b.String()]) {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.SliceOf(gen.IntRange(0, 15)),
	))

	properties.TestingRun(t)
}
