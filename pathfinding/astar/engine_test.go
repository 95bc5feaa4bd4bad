package astar

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"sync"
	"testing"

	"github.com/Starath/pathfindr/pathfinding"
	"github.com/Starath/pathfindr/pathfinding/bfs"
)

func c(x, y int) pathfinding.Coordinate { return pathfinding.Coordinate{X: x, Y: y} }

func mustEngine(t *testing.T, size int, forbidden []int, options ...Option) *Engine {
	t.Helper()
	options = append([]Option{WithEventSink(DiscardSink)}, options...)
	e, err := NewEngine(size, forbidden, options...)
	if err != nil {
		t.Fatalf("NewEngine(%d): %v", size, err)
	}
	return e
}

func mustFind(t *testing.T, e *Engine, start, target pathfinding.Coordinate, allowDiagonal bool) *pathfinding.Result {
	t.Helper()
	result, err := e.FindPath(start, target, allowDiagonal)
	if err != nil {
		t.Fatalf("FindPath(%s, %s): %v", start, target, err)
	}
	return result
}

// checkRoute verifies the structural guarantees every found route must meet.
func checkRoute(t *testing.T, e *Engine, result *pathfinding.Result, start, target pathfinding.Coordinate, allowDiagonal bool) {
	t.Helper()
	path := result.Path
	if len(path) < 2 {
		t.Fatalf("Expected at least two coordinates, got %v", path)
	}
	if path[0] != start || path[len(path)-1] != target {
		t.Errorf("Expected route from %s to %s, got %v", start, target, path)
	}

	options := e.Options()
	cost := 0.0
	for i, p := range path {
		if e.Grid().Forbidden(p) {
			t.Errorf("Route passes through forbidden cell %s", p)
		}
		if i == 0 {
			continue
		}
		prev := path[i-1]
		if d := prev.ChebyshevDistance(p); d != 1 {
			t.Errorf("Step %s -> %s has chebyshev distance %d", prev, p, d)
		}
		diagonal := prev.X != p.X && prev.Y != p.Y
		if diagonal && !allowDiagonal {
			t.Errorf("Diagonal step %s -> %s with diagonal movement disabled", prev, p)
		}
		if diagonal {
			cost += options.DiagonalMoveCost
		} else {
			cost += options.AdjacentMoveCost
		}
	}
	if math.Abs(cost-result.Cost) > 1e-9 {
		t.Errorf("Expected cost %f from the steps, result says %f", cost, result.Cost)
	}
}

func TestFindPath_DiagonalOpenGrid(t *testing.T) {
	t.Log("Testing 3x3 open grid with diagonals...")
	e := mustEngine(t, 3, nil)
	result := mustFind(t, e, c(0, 0), c(2, 2), true)

	want := []pathfinding.Coordinate{c(0, 0), c(1, 1), c(2, 2)}
	if !result.Found || result.Outcome != pathfinding.Solved {
		t.Fatalf("Expected a solved query, got %+v", result)
	}
	if !reflect.DeepEqual(result.Path, want) {
		t.Errorf("Expected %v, got %v", want, result.Path)
	}
	checkRoute(t, e, result, c(0, 0), c(2, 2), true)
}

func TestFindPath_NoDiagonalOpenGrid(t *testing.T) {
	t.Log("Testing 3x3 open grid without diagonals...")
	e := mustEngine(t, 3, nil)
	result := mustFind(t, e, c(0, 0), c(2, 2), false)

	if !result.Found || len(result.Path) != 5 {
		t.Fatalf("Expected a 5 step route, got %+v", result)
	}
	want := []pathfinding.Coordinate{c(0, 0), c(1, 0), c(2, 0), c(2, 1), c(2, 2)}
	if !reflect.DeepEqual(result.Path, want) {
		t.Errorf("Expected %v, got %v", want, result.Path)
	}
	if result.Cost != 4 {
		t.Errorf("Expected cost 4, got %f", result.Cost)
	}
	checkRoute(t, e, result, c(0, 0), c(2, 2), false)
}

func TestFindPath_WallWithGap(t *testing.T) {
	t.Log("Testing 5x5 grid with a wall at x=2 and a gap at (2,4)...")
	// ids 2, 7, 12, 17 form column x=2 for y=0..3; (2,4) is id 22 and stays open
	e := mustEngine(t, 5, []int{2, 7, 12, 17})

	for _, allowDiagonal := range []bool{true, false} {
		result := mustFind(t, e, c(0, 0), c(4, 0), allowDiagonal)
		if !result.Found {
			t.Fatalf("Expected a route (diagonal=%t), got %+v", allowDiagonal, result)
		}
		checkRoute(t, e, result, c(0, 0), c(4, 0), allowDiagonal)

		gap := false
		for _, p := range result.Path {
			if p == c(2, 4) {
				gap = true
			}
		}
		if !gap {
			t.Errorf("Expected the route to pass the gap (2,4), got %v", result.Path)
		}
	}
}

func TestFindPath_EnclosedTarget(t *testing.T) {
	t.Log("Testing 5x5 grid with an enclosed target...")
	// the 8-neighbourhood of (2,2)
	e := mustEngine(t, 5, []int{6, 7, 8, 11, 13, 16, 17, 18})

	for _, allowDiagonal := range []bool{true, false} {
		result := mustFind(t, e, c(0, 0), c(2, 2), allowDiagonal)
		if result.Found || result.Path != nil {
			t.Errorf("Expected no path (diagonal=%t), got %v", allowDiagonal, result.Path)
		}
		if result.Outcome != pathfinding.Unreachable {
			t.Errorf("Expected outcome %q, got %q", pathfinding.Unreachable, result.Outcome)
		}
		if result.NodesVisited != 16 {
			t.Errorf("Expected every reachable cell to be closed (16), got %d", result.NodesVisited)
		}
	}
}

func TestFindPath_StartEqualsTarget(t *testing.T) {
	e := mustEngine(t, 4, nil)
	result := mustFind(t, e, c(1, 1), c(1, 1), true)
	if result.Found || result.Path != nil {
		t.Errorf("Expected no path for identical endpoints, got %+v", result)
	}
}

func TestFindPath_ForbiddenEndpoints(t *testing.T) {
	e := mustEngine(t, 4, []int{0, 15})
	if r := mustFind(t, e, c(0, 0), c(2, 2), true); r.Found {
		t.Errorf("Expected no path from a forbidden start, got %v", r.Path)
	}
	if r := mustFind(t, e, c(1, 1), c(3, 3), true); r.Found {
		t.Errorf("Expected no path to a forbidden target, got %v", r.Path)
	}
}

func TestFindPath_OutOfBounds(t *testing.T) {
	e := mustEngine(t, 3, nil)
	cases := [][2]pathfinding.Coordinate{
		{c(-1, 0), c(1, 1)},
		{c(0, 0), c(3, 0)},
		{c(0, 5), c(0, 0)},
		{c(0, 0), c(0, -2)},
	}
	for _, tc := range cases {
		result, err := e.FindPath(tc[0], tc[1], true)
		if !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("FindPath(%s, %s): expected ErrOutOfBounds, got %v", tc[0], tc[1], err)
		}
		if result != nil {
			t.Errorf("Expected a nil result with an error, got %+v", result)
		}
	}
}

func TestNewEngine_InvalidConfiguration(t *testing.T) {
	cases := map[string]struct {
		size    int
		options []Option
	}{
		"zero size":         {size: 0},
		"negative size":     {size: -3},
		"zero iterations":   {size: 3, options: []Option{WithMaxIterations(0)}},
		"negative diagonal": {size: 3, options: []Option{WithDiagonalMoveCost(-1)}},
		"zero adjacent":     {size: 3, options: []Option{WithAdjacentMoveCost(0)}},
		"unknown frontier":  {size: 3, options: []Option{WithFrontier("stack")}},
	}
	for name, tc := range cases {
		if _, err := NewEngine(tc.size, nil, tc.options...); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("%s: expected ErrInvalidConfiguration, got %v", name, err)
		}
	}
}

func TestFindPath_IterationLimit(t *testing.T) {
	t.Log("Testing iteration cap...")
	var events []Event
	e := mustEngine(t, 10, nil,
		WithMaxIterations(2),
		WithEventSink(func(ev Event) { events = append(events, ev) }))

	result := mustFind(t, e, c(0, 0), c(9, 9), true)
	if result.Found || result.Outcome != pathfinding.IterationLimit {
		t.Fatalf("Expected an iteration limit outcome, got %+v", result)
	}
	if len(events) != 1 {
		t.Fatalf("Expected exactly one event, got %v", events)
	}
	ev := events[0]
	if ev.Level != LevelWarn || ev.Kind != EventIterationLimit {
		t.Errorf("Expected a warning iteration limit event, got %+v", ev)
	}
	if ev.Start != c(0, 0) || ev.Target != c(9, 9) || ev.StartID != 0 || ev.TargetID != 99 {
		t.Errorf("Expected the event to name the aborted query, got %+v", ev)
	}

	// the engine is still usable afterwards
	small := mustFind(t, e, c(0, 0), c(1, 1), true)
	if !small.Found {
		t.Errorf("Expected a short query to succeed within the cap, got %+v", small)
	}
}

func TestFindPath_LoggingEvents(t *testing.T) {
	var kinds []EventKind
	sink := func(ev Event) { kinds = append(kinds, ev.Kind) }

	quiet := mustEngine(t, 3, nil, WithEventSink(sink))
	mustFind(t, quiet, c(0, 0), c(2, 2), true)
	if len(kinds) != 0 {
		t.Errorf("Expected no events with logging disabled, got %v", kinds)
	}

	verbose := mustEngine(t, 3, nil, WithEventSink(sink), WithLogging(true))
	mustFind(t, verbose, c(0, 0), c(2, 2), true)
	want := []EventKind{EventQueryNodes, EventSolved}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("Expected %v, got %v", want, kinds)
	}
}

func TestFindPath_CustomCosts(t *testing.T) {
	// with diagonals as expensive as two adjacent steps the route still
	// reaches the target, and the reported cost follows the configuration
	e := mustEngine(t, 4, nil, WithDiagonalMoveCost(2), WithAdjacentMoveCost(1))
	result := mustFind(t, e, c(0, 0), c(3, 3), true)
	if !result.Found {
		t.Fatalf("Expected a route, got %+v", result)
	}
	checkRoute(t, e, result, c(0, 0), c(3, 3), true)
}

func TestFindPath_Idempotent(t *testing.T) {
	t.Log("Testing repeated queries...")
	e := mustEngine(t, 8, []int{10, 11, 12, 13, 27, 35, 43, 44, 45})
	first := mustFind(t, e, c(0, 0), c(7, 7), true)

	// an unrelated query in between must not leak state
	mustFind(t, e, c(7, 0), c(0, 7), false)

	for i := 0; i < 5; i++ {
		again := mustFind(t, e, c(0, 0), c(7, 7), true)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Expected identical results, got %+v and %+v", first, again)
		}
	}

	fresh := mustEngine(t, 8, []int{10, 11, 12, 13, 27, 35, 43, 44, 45})
	if r := mustFind(t, fresh, c(0, 0), c(7, 7), true); !reflect.DeepEqual(first, r) {
		t.Errorf("Expected a reused engine to match a fresh one, got %v and %v", first.Path, r.Path)
	}
}

func TestFindPath_StartHasZeroCost(t *testing.T) {
	e := mustEngine(t, 3, nil)
	mustFind(t, e, c(1, 1), c(2, 2), true)
	start, _ := e.Node(c(1, 1))
	if !start.Visited || start.G != 0 || !start.Closed() {
		t.Errorf("Expected the start node closed and visited with G=0, got %s", start)
	}
	target, _ := e.Node(c(2, 2))
	if !target.Target || target.Parent != 4 {
		t.Errorf("Expected the target node marked and reached from id 4, got %s parent %d", target, target.Parent)
	}
}

func TestFindPath_RelaxesToCheaperParent(t *testing.T) {
	t.Log("Testing a node reached again through a cheaper parent...")
	// . . . . .
	// . S # # #
	// # . . . .
	// . . # . .
	// . . T . .
	// Expanding (2,2) first reaches (1,3) diagonally at 2.82; expanding (1,2)
	// afterwards must lower it to 2.0 and take over as its parent.
	e := mustEngine(t, 5, []int{7, 8, 9, 10, 17})
	result := mustFind(t, e, c(1, 1), c(2, 4), true)

	expected := []pathfinding.Coordinate{c(1, 1), c(1, 2), c(1, 3), c(2, 4)}
	if !reflect.DeepEqual(result.Path, expected) {
		t.Fatalf("Expected path %v, got %v", expected, result.Path)
	}
	if math.Abs(result.Cost-3.41) > 1e-9 {
		t.Errorf("Expected cost 3.41, got %v", result.Cost)
	}

	relaxed, err := e.Node(c(1, 3))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if relaxed.Parent != 11 || math.Abs(relaxed.G-2.0) > 1e-9 {
		t.Errorf("Expected (1,3) reached from id 11 with G=2, got parent %d G=%v", relaxed.Parent, relaxed.G)
	}
}

// randomGrid returns forbidden ids with the given density, never blocking
// start or target.
func randomGrid(r *rand.Rand, size int, density float64, keep ...pathfinding.Coordinate) []int {
	var forbidden []int
	for id := 0; id < size*size; id++ {
		cell := c(id%size, id/size)
		kept := false
		for _, k := range keep {
			if k == cell {
				kept = true
			}
		}
		if !kept && r.Float64() < density {
			forbidden = append(forbidden, id)
		}
	}
	return forbidden
}

func TestFindPath_RandomGrids(t *testing.T) {
	t.Log("Testing random grids against a flood fill...")
	r := rand.New(rand.NewSource(42))
	const size = 12

	for i := 0; i < 60; i++ {
		start := c(r.Intn(size), r.Intn(size))
		target := c(r.Intn(size), r.Intn(size))
		if start == target {
			continue
		}
		allowDiagonal := i%2 == 0
		forbidden := randomGrid(r, size, 0.3, start, target)

		heapEngine := mustEngine(t, size, forbidden)
		scanEngine := mustEngine(t, size, forbidden, WithFrontier(FrontierScan))

		got := mustFind(t, heapEngine, start, target, allowDiagonal)
		want := bfs.Reachable(heapEngine.Grid(), start, target, allowDiagonal)
		if got.Found != want {
			t.Fatalf("case %d: %s -> %s diagonal=%t: found=%t, flood fill says %t",
				i, start, target, allowDiagonal, got.Found, want)
		}
		if got.Found {
			checkRoute(t, heapEngine, got, start, target, allowDiagonal)
		}

		scanned := mustFind(t, scanEngine, start, target, allowDiagonal)
		if !reflect.DeepEqual(got, scanned) {
			t.Errorf("case %d: heap and scan frontiers disagree:\n%+v\n%+v", i, got, scanned)
		}
	}
}

func TestFindPath_SharedEngine(t *testing.T) {
	t.Log("Testing queries from several goroutines...")
	e := mustEngine(t, 16, randomGrid(rand.New(rand.NewSource(7)), 16, 0.2, c(0, 0), c(15, 15), c(15, 0), c(0, 15)))
	queries := [][2]pathfinding.Coordinate{
		{c(0, 0), c(15, 15)},
		{c(15, 0), c(0, 15)},
		{c(0, 15), c(15, 0)},
	}
	want := make([]*pathfinding.Result, len(queries))
	for i, q := range queries {
		want[i] = mustFind(t, e, q[0], q[1], true)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				q := (w + i) % len(queries)
				got, err := e.FindPath(queries[q][0], queries[q][1], true)
				if err != nil || !reflect.DeepEqual(got, want[q]) {
					errs <- "concurrent query diverged"
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}
}
