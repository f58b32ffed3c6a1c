package layout

import (
	"github.com/matzehuels/mieza/pkg/circuit"
)

const (
	// GridColumns is the number of cells per row in the fallback grid.
	GridColumns = 10
	// GridCell is the edge length of one fallback grid cell.
	GridCell = 100.0
	// NeighborOffset is added to the mean of resolved neighbors so that an
	// auto-placed component does not sit exactly on top of them.
	NeighborOffset = 50.0
)

// Place assigns an absolute position to every component.
//
// Explicitly positioned components keep their position. The rest are visited
// once, in declaration order: a component with already-resolved neighbors
// lands at the mean of their positions offset by (NeighborOffset,
// NeighborOffset); a component with none takes the next cell of a
// GridColumns-wide grid, indexed by how many components are resolved so far.
//
// Only neighbors resolved before a component is visited count, so the result
// depends on declaration order. Connections naming unknown components are
// ignored here; pin resolution reports them.
func Place(components []circuit.Component, connections []circuit.Connection) map[string]circuit.Point {
	positions := make(map[string]circuit.Point, len(components))
	known := make(map[string]bool, len(components))
	for _, c := range components {
		known[c.ID] = true
		if c.Position != nil {
			positions[c.ID] = *c.Position
		}
	}

	adj := adjacency(connections, known)

	for _, c := range components {
		if _, done := positions[c.ID]; done {
			continue
		}
		positions[c.ID] = autoPosition(adj[c.ID], positions)
	}
	return positions
}

// adjacency builds an undirected multigraph over component ids. Parallel
// connections appear once per connection so they weigh the mean accordingly.
func adjacency(connections []circuit.Connection, known map[string]bool) map[string][]string {
	adj := make(map[string][]string)
	for _, conn := range connections {
		a, b := conn.From.Component, conn.To.Component
		if !known[a] || !known[b] {
			continue
		}
		adj[a] = append(adj[a], b)
		adj[b] = append(adj[b], a)
	}
	return adj
}

func autoPosition(neighbors []string, resolved map[string]circuit.Point) circuit.Point {
	var sum circuit.Point
	n := 0
	for _, id := range neighbors {
		if p, ok := resolved[id]; ok {
			sum = sum.Add(p)
			n++
		}
	}
	if n > 0 {
		return circuit.Point{
			X: sum.X/float64(n) + NeighborOffset,
			Y: sum.Y/float64(n) + NeighborOffset,
		}
	}
	return gridCell(len(resolved))
}

func gridCell(index int) circuit.Point {
	return circuit.Point{
		X: float64(index%GridColumns) * GridCell,
		Y: float64(index/GridColumns) * GridCell,
	}
}
