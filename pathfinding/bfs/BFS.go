// Package bfs floods a grid breadth-first. It answers reachability questions
// without the cost model of the A* engine.
package bfs

import (
	"container/list"

	"github.com/Starath/pathfindr/pathfinding"
)

// Grid is the read-only view the flood fill needs.
type Grid interface {
	Size() int
	Forbidden(c pathfinding.Coordinate) bool
}

// Steps returns the minimum number of moves from start to target, or -1 when
// the target cannot be reached. Forbidden or out-of-bounds endpoints are
// never reachable.
func Steps(g Grid, start, target pathfinding.Coordinate, allowDiagonal bool) int {
	if g.Forbidden(start) || g.Forbidden(target) {
		return -1
	}
	size := g.Size()
	depth := make([]int, size*size)
	for i := range depth {
		depth[i] = -1
	}
	depth[start.Y*size+start.X] = 0

	queue := list.New()
	queue.PushBack(start)
	for queue.Len() > 0 {
		cur := queue.Remove(queue.Front()).(pathfinding.Coordinate)
		d := depth[cur.Y*size+cur.X]
		if cur == target {
			return d
		}
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if (dx == 0 && dy == 0) || (!allowDiagonal && dx != 0 && dy != 0) {
					continue
				}
				next := pathfinding.Coordinate{X: cur.X + dx, Y: cur.Y + dy}
				if g.Forbidden(next) || depth[next.Y*size+next.X] >= 0 {
					continue
				}
				depth[next.Y*size+next.X] = d + 1
				queue.PushBack(next)
			}
		}
	}
	return -1
}

// Reachable reports whether any route connects start and target.
func Reachable(g Grid, start, target pathfinding.Coordinate, allowDiagonal bool) bool {
	return Steps(g, start, target, allowDiagonal) >= 0
}
