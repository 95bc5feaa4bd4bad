package astar

import (
	"fmt"

	"github.com/Starath/pathfindr/pathfinding"
)

// MaxGridSize bounds the side length of a grid so size*size nodes stay
// allocatable.
const MaxGridSize = 4096

// Grid is a fixed size x size arena of nodes. Its shape and its forbidden
// cells never change after NewGrid returns.
type Grid struct {
	size  int
	nodes []Node
}

// NewGrid allocates size*size nodes in row-major order (outer loop over rows,
// inner over columns) and marks every node whose id is listed in forbiddenIDs
// as a permanent obstacle. Ids that do not name a cell are ignored.
func NewGrid(size int, forbiddenIDs []int) (*Grid, error) {
	if size <= 0 || size > MaxGridSize {
		return nil, fmt.Errorf("%w: grid size must be in 1..%d, got %d", ErrInvalidConfiguration, MaxGridSize, size)
	}

	forbidden := make(map[int]bool, len(forbiddenIDs))
	for _, id := range forbiddenIDs {
		forbidden[id] = true
	}

	g := &Grid{size: size, nodes: make([]Node, 0, size*size)}
	id := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			node := newNode(id, pathfinding.Coordinate{X: x, Y: y})
			if forbidden[id] {
				node.forbid()
			}
			g.nodes = append(g.nodes, node)
			id++
		}
	}
	return g, nil
}

// Size returns the side length of the grid.
func (g *Grid) Size() int { return g.size }

// InBounds reports whether c names a cell of the grid.
func (g *Grid) InBounds(c pathfinding.Coordinate) bool {
	return c.X >= 0 && c.X < g.size && c.Y >= 0 && c.Y < g.size
}

func (g *Grid) index(c pathfinding.Coordinate) int {
	return c.Y*g.size + c.X
}

// ID returns the sequential id of the cell at c.
func (g *Grid) ID(c pathfinding.Coordinate) (int, error) {
	if !g.InBounds(c) {
		return 0, fmt.Errorf("%w: %s outside %dx%d grid", ErrOutOfBounds, c, g.size, g.size)
	}
	return g.nodes[g.index(c)].ID, nil
}

// Coordinate returns the position of the cell with the given id.
func (g *Grid) Coordinate(id int) (pathfinding.Coordinate, bool) {
	if id < 0 || id >= len(g.nodes) {
		return pathfinding.Coordinate{}, false
	}
	return g.nodes[id].Position, true
}

// Forbidden reports whether c is a permanent obstacle. Out of bounds cells
// are reported as forbidden.
func (g *Grid) Forbidden(c pathfinding.Coordinate) bool {
	if !g.InBounds(c) {
		return true
	}
	return g.nodes[g.index(c)].Forbidden
}

// ForbiddenIDs lists the ids of all obstacle cells in ascending order.
func (g *Grid) ForbiddenIDs() []int {
	ids := []int{}
	for i := range g.nodes {
		if g.nodes[i].Forbidden {
			ids = append(ids, g.nodes[i].ID)
		}
	}
	return ids
}

// node returns a copy of the node at c. Callers outside a query must hold the
// owning engine's lock; see Engine.Node.
func (g *Grid) node(c pathfinding.Coordinate) (Node, error) {
	if !g.InBounds(c) {
		return Node{}, fmt.Errorf("%w: %s outside %dx%d grid", ErrOutOfBounds, c, g.size, g.size)
	}
	return g.nodes[g.index(c)], nil
}
