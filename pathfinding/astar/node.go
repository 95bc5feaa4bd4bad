package astar

import (
	"fmt"

	"github.com/Starath/pathfindr/pathfinding"
)

const noParent = -1

// Node is the search state of one grid cell. Nodes are created once when the
// grid is built and mutated by every query.
type Node struct {
	ID       int
	Position pathfinding.Coordinate

	// Open is true while the node can still be discovered in the current
	// query. Closed and forbidden nodes are not open.
	Open bool
	// Forbidden marks a permanent obstacle. It is never cleared.
	Forbidden bool
	// Target is set on the single destination node of the current query.
	Target bool
	// Visited is true once G holds a real cost for the current query. The
	// start node is visited with G == 0.
	Visited bool

	G, H, F float64

	// Parent is the arena index of the node this one was reached from.
	Parent int

	// order is the sequence number of the node's first frontier insertion in
	// the current query, -1 when it has not been discovered yet.
	order int
}

func newNode(id int, position pathfinding.Coordinate) Node {
	return Node{
		ID:       id,
		Position: position,
		Open:     true,
		Parent:   noParent,
		order:    -1,
	}
}

// reset clears the per-query state and recomputes the heuristic for target.
func (n *Node) reset(target pathfinding.Coordinate) {
	n.Open = true
	n.Target = false
	n.Visited = false
	n.G = 0
	n.H = float64(n.Position.ManhattanDistance(target))
	n.F = 0
	n.Parent = noParent
	n.order = -1
}

func (n *Node) forbid() {
	n.Forbidden = true
	n.Open = false
}

// close marks the node as expanded. Forbidden is left untouched.
func (n *Node) close() {
	n.Open = false
	n.Visited = true
}

// Closed reports whether the node was expanded in the current query.
func (n *Node) Closed() bool {
	return !n.Open && !n.Forbidden
}

func (n Node) String() string {
	return fmt.Sprintf("Node %d %s g=%.2f h=%.2f f=%.2f open=%t forbidden=%t",
		n.ID, n.Position, n.G, n.H, n.F, n.Open, n.Forbidden)
}
