package pathfinding

import "fmt"

// Coordinate is a cell position on the grid, X is the column and Y the row.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// ManhattanDistance returns |dx| + |dy| between c and other.
func (c Coordinate) ManhattanDistance(other Coordinate) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

// ChebyshevDistance returns max(|dx|, |dy|) between c and other.
func (c Coordinate) ChebyshevDistance(other Coordinate) int {
	dx, dy := abs(c.X-other.X), abs(c.Y-other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Outcome tells why a query ended.
type Outcome string

const (
	Solved         Outcome = "solved"
	Unreachable    Outcome = "unreachable"
	IterationLimit Outcome = "iteration_limit"
)

// Result is the answer to one path query. A Result with Found == false is the
// "no path" value: it is a normal outcome, not an error.
type Result struct {
	Path         []Coordinate `json:"path"`
	Found        bool         `json:"found"`
	Outcome      Outcome      `json:"outcome"`
	Cost         float64      `json:"cost"`
	NodesVisited int          `json:"nodesVisited"`
	Iterations   int          `json:"iterations"`
}

// NoPath builds a not-found result for the given outcome.
func NoPath(outcome Outcome, nodesVisited, iterations int) *Result {
	return &Result{
		Path:         nil,
		Found:        false,
		Outcome:      outcome,
		NodesVisited: nodesVisited,
		Iterations:   iterations,
	}
}
