package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Starath/pathfindr/api"
	"github.com/Starath/pathfindr/config"
	"github.com/Starath/pathfindr/pathfinding"
	"github.com/Starath/pathfindr/pathfinding/astar"
	"github.com/Starath/pathfindr/pathfinding/bfs"
	"github.com/Starath/pathfindr/render"
)

// query is one line of input: "x1 y1 x2 y2" optionally followed by "nodiag".
type query struct {
	start, target pathfinding.Coordinate
	allowDiagonal bool
}

func parseQuery(line string) (query, error) {
	fields := strings.Fields(line)
	q := query{allowDiagonal: true}
	if len(fields) == 5 && strings.EqualFold(fields[4], "nodiag") {
		q.allowDiagonal = false
		fields = fields[:4]
	}
	if len(fields) != 4 {
		return q, fmt.Errorf("expected \"x1 y1 x2 y2 [nodiag]\", got %q", line)
	}
	_, err := fmt.Sscanf(strings.Join(fields, " "), "%d %d %d %d",
		&q.start.X, &q.start.Y, &q.target.X, &q.target.Y)
	return q, err
}

func printResult(label string, q query, result *pathfinding.Result, duration time.Duration, err error) {
	fmt.Printf("\n--- %s: %s -> %s (diagonal: %t) ---\n", label, q.start, q.target, q.allowDiagonal)
	fmt.Printf("Execution time: %s\n", duration)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		fmt.Println(strings.Repeat("-", 40))
		return
	}
	fmt.Printf("Outcome: %s, nodes visited: %d, iterations: %d\n", result.Outcome, result.NodesVisited, result.Iterations)
	if result.Found {
		fmt.Printf("Route (%d cells, cost %.2f):", len(result.Path), result.Cost)
		for _, p := range result.Path {
			fmt.Printf(" %s", p)
		}
		fmt.Println()
	} else {
		fmt.Println("- No route.")
	}
	fmt.Println(strings.Repeat("-", 40))
}

// explainNoRoute says why a query returned no route.
func explainNoRoute(grid bfs.Grid, q query, outcome pathfinding.Outcome) string {
	if q.start == q.target {
		return "Start and target are the same cell; there is no route to take."
	}
	if steps := bfs.Steps(grid, q.start, q.target, q.allowDiagonal); steps >= 0 {
		return fmt.Sprintf("Target is %d moves away; the search stopped early (%s).", steps, outcome)
	}
	return "Target is walled off from the start."
}

func show(grid render.Grid, scene render.Scene) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	scene.Status = scene.Status + "  (press any key)"
	render.Draw(screen, grid, scene)
	for {
		switch screen.PollEvent().(type) {
		case *tcell.EventKey:
			return nil
		case *tcell.EventResize:
			screen.Sync()
			render.Draw(screen, grid, scene)
		}
	}
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	tui := flag.Bool("tui", false, "draw every solved query on the terminal")
	dump := flag.Bool("dump", false, "print every query as text")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load config: %v", err)
	}
	ctx := context.Background()
	def, err := api.ResolveGrid(ctx, cfg.Grid)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load grid: %v", err)
	}

	heapEngine, err := astar.NewEngine(def.Size, def.Forbidden, append(cfg.EngineOptions(), astar.WithFrontier(astar.FrontierHeap))...)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	scanEngine, err := astar.NewEngine(def.Size, def.Forbidden, append(cfg.EngineOptions(), astar.WithFrontier(astar.FrontierScan))...)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	fmt.Printf("Grid %dx%d loaded with %d forbidden cells.\n", def.Size, def.Size, len(def.Forbidden))
	fmt.Print(render.Dump(heapEngine.Grid(), render.Scene{Start: pathfinding.Coordinate{X: -1}, Target: pathfinding.Coordinate{X: -1}}))
	fmt.Println(strings.Repeat("=", 50))

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("\nEnter \"x1 y1 x2 y2 [nodiag]\" (or 'exit'): ")
		line, readErr := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if strings.EqualFold(line, "exit") || (line == "" && readErr != nil) {
			break
		}
		if line == "" {
			continue
		}
		q, err := parseQuery(line)
		if err != nil {
			fmt.Println(err)
			continue
		}

		startHeap := time.Now()
		heapResult, heapErr := heapEngine.FindPath(q.start, q.target, q.allowDiagonal)
		durationHeap := time.Since(startHeap)
		printResult("A* (heap frontier)", q, heapResult, durationHeap, heapErr)

		startScan := time.Now()
		scanResult, scanErr := scanEngine.FindPath(q.start, q.target, q.allowDiagonal)
		durationScan := time.Since(startScan)
		printResult("A* (scan frontier)", q, scanResult, durationScan, scanErr)

		if heapErr != nil {
			continue
		}
		if !heapResult.Found {
			fmt.Println(explainNoRoute(heapEngine.Grid(), q, heapResult.Outcome))
		}

		fmt.Printf("\nExecution time comparison for %s -> %s:\n", q.start, q.target)
		fmt.Printf("  - Heap frontier: %s\n", durationHeap)
		fmt.Printf("  - Scan frontier: %s\n", durationScan)

		scene := render.Scene{
			Start:  q.start,
			Target: q.target,
			Path:   heapResult.Path,
			Status: fmt.Sprintf("%s, %d cells", heapResult.Outcome, len(heapResult.Path)),
		}
		if *dump {
			fmt.Print(render.Dump(heapEngine.Grid(), scene))
		}
		if *tui && heapResult.Found {
			if err := show(heapEngine.Grid(), scene); err != nil {
				log.Printf("[WARN] Terminal view unavailable: %v", err)
			}
		}
		fmt.Println(strings.Repeat("#", 60))
	}
	fmt.Println("\n===== Done =====")
}
