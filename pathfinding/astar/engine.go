package astar

import (
	"fmt"
	"sync"

	"github.com/Starath/pathfindr/pathfinding"
)

// Engine runs A* queries against one Grid. The grid's node arena is reused by
// every query; mu serialises queries so they never interleave.
type Engine struct {
	mu       sync.Mutex
	grid     *Grid
	options  Options
	frontier frontier
	sequence int
}

// NewEngine builds the grid and an engine bound to it.
func NewEngine(gridSize int, forbiddenIDs []int, options ...Option) (*Engine, error) {
	engineOptions := defaultOptions()
	for _, option := range options {
		option(&engineOptions)
	}
	if engineOptions.Sink == nil {
		engineOptions.Sink = DiscardSink
	}
	if err := engineOptions.validate(); err != nil {
		return nil, err
	}

	grid, err := NewGrid(gridSize, forbiddenIDs)
	if err != nil {
		return nil, err
	}

	return &Engine{
		grid:     grid,
		options:  engineOptions,
		frontier: newFrontier(engineOptions.Frontier),
	}, nil
}

// Grid returns the engine's grid. Its exported accessors only read the
// grid's shape and obstacles, which no query changes.
func (e *Engine) Grid() *Grid { return e.grid }

// Node returns a copy of the node at c as left by the most recent query.
func (e *Engine) Node(c pathfinding.Coordinate) (Node, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.node(c)
}

// Options returns the options the engine was built with.
func (e *Engine) Options() Options { return e.options }

// FindPath searches a route from start to target. When allowDiagonal is
// false only steps along one axis are taken.
//
// A route that does not exist, a start equal to the target, or a search that
// exceeds the iteration cap all produce a Result with Found == false and a nil
// error. The error is non-nil only for out of bounds coordinates.
func (e *Engine) FindPath(start, target pathfinding.Coordinate, allowDiagonal bool) (*pathfinding.Result, error) {
	size := e.grid.size
	if !e.grid.InBounds(start) {
		return nil, fmt.Errorf("%w: start %s outside %dx%d grid", ErrOutOfBounds, start, size, size)
	}
	if !e.grid.InBounds(target) {
		return nil, fmt.Errorf("%w: target %s outside %dx%d grid", ErrOutOfBounds, target, size, size)
	}
	if start == target {
		return pathfinding.NoPath(pathfinding.Unreachable, 0, 0), nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	nodes := e.grid.nodes
	startIdx, targetIdx := e.grid.index(start), e.grid.index(target)

	if e.options.LoggingEnabled {
		e.emit(LevelInfo, EventQueryNodes, startIdx, targetIdx, 0)
	}

	if nodes[startIdx].Forbidden {
		return pathfinding.NoPath(pathfinding.Unreachable, 0, 0), nil
	}

	e.resetQuery(target)
	nodes[targetIdx].Target = true

	parent := startIdx
	nodes[parent].Visited = true
	solved := false
	iterations, closed := 0, 0

	for !solved {
		nodes[parent].close()
		closed++

		solved = e.expand(parent, allowDiagonal)

		if !solved {
			next, ok := e.frontier.next(nodes)
			if !ok {
				return pathfinding.NoPath(pathfinding.Unreachable, closed, iterations+1), nil
			}
			parent = next
		}

		iterations++

		if !solved && iterations > e.options.MaxIterations {
			e.emit(LevelWarn, EventIterationLimit, startIdx, targetIdx, iterations)
			return pathfinding.NoPath(pathfinding.IterationLimit, closed, iterations), nil
		}
	}

	path, ok := reconstructPath(nodes, startIdx, targetIdx)
	if !ok {
		return nil, fmt.Errorf("broken parent chain from %s back to %s", target, start)
	}

	if e.options.LoggingEnabled {
		e.emit(LevelInfo, EventSolved, startIdx, targetIdx, iterations)
	}

	return &pathfinding.Result{
		Path:         path,
		Found:        true,
		Outcome:      pathfinding.Solved,
		Cost:         nodes[targetIdx].G,
		NodesVisited: closed,
		Iterations:   iterations,
	}, nil
}

// resetQuery clears every non-forbidden node and points the heuristic at target.
func (e *Engine) resetQuery(target pathfinding.Coordinate) {
	nodes := e.grid.nodes
	for i := range nodes {
		if nodes[i].Forbidden {
			continue
		}
		nodes[i].reset(target)
	}
	e.frontier.reset()
	e.sequence = 0
}

// expand discovers the open neighbours of the node at parentIdx, relaxes
// them and adds them to the frontier. It reports whether the target was among
// them.
func (e *Engine) expand(parentIdx int, allowDiagonal bool) bool {
	nodes := e.grid.nodes
	size := e.grid.size
	parent := &nodes[parentIdx]
	solved := false

	for y := parent.Position.Y - 1; y <= parent.Position.Y+1; y++ {
		if y < 0 || y >= size {
			continue
		}
		for x := parent.Position.X - 1; x <= parent.Position.X+1; x++ {
			if x < 0 || x >= size {
				continue
			}

			diagonal := x != parent.Position.X && y != parent.Position.Y
			if !allowDiagonal && diagonal {
				continue
			}

			idx := y*size + x
			current := &nodes[idx]
			if !current.Open {
				continue
			}

			if current.Target {
				solved = true
			}

			moveCost := e.options.AdjacentMoveCost
			if diagonal {
				moveCost = e.options.DiagonalMoveCost
			}

			tentative := parent.G + moveCost
			if !current.Visited || tentative < current.G {
				current.Parent = parentIdx
				current.G = tentative
				current.F = current.G + current.H
				current.Visited = true
			}

			if current.order < 0 {
				current.order = e.sequence
				e.sequence++
			}
			e.frontier.push(nodes, idx)
		}
	}
	return solved
}

func (e *Engine) emit(level Level, kind EventKind, startIdx, targetIdx, iterations int) {
	nodes := e.grid.nodes
	e.options.Sink(Event{
		Level:      level,
		Kind:       kind,
		Start:      nodes[startIdx].Position,
		Target:     nodes[targetIdx].Position,
		StartID:    nodes[startIdx].ID,
		TargetID:   nodes[targetIdx].ID,
		Iterations: iterations,
	})
}
