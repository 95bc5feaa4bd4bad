package astar

import "github.com/Starath/pathfindr/pathfinding"

// reconstructPath follows parent indices from the target back to the start
// and returns the route in start-to-target order. ok is false when the chain
// does not lead back to the start.
func reconstructPath(nodes []Node, startIdx, targetIdx int) (path []pathfinding.Coordinate, ok bool) {
	for current := targetIdx; current != startIdx; current = nodes[current].Parent {
		if current == noParent || len(path) >= len(nodes) {
			return nil, false
		}
		path = append(path, nodes[current].Position)
	}
	path = append(path, nodes[startIdx].Position)

	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}
